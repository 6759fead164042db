package pass1

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Suggestion is one proposed tool name with the links attached to it.
type Suggestion struct {
	Score     float64 `json:"score"`
	Extracted string  `json:"extracted"`
	Processed string  `json:"processed"`
	// Original is the surface text when Extracted had to be rewritten to
	// fit the name schema.
	Original      string   `json:"original,omitempty"`
	LinksAbstract []string `json:"links_abstract"`
	LinksFulltext []string `json:"links_fulltext"`
	// FromAbstractLink marks names that only exist because an abstract link
	// was named after them.
	FromAbstractLink bool `json:"from_abstract_link"`
}

// NameChange describes what SchemaName did to a name.
type NameChange struct {
	Rewritten bool
	Filled    bool
	Pruned    bool
}

// SchemaName rewrites name into the registry's name character set and length
// bounds. ok is false when no letter survives.
func SchemaName(name string) (out string, change NameChange, ok bool) {
	out = name
	if out != "" && !schemaNamePattern.MatchString(out) {
		for _, r := range schemaNameReplacements {
			out = strings.ReplaceAll(out, r[0], r[1])
		}
		out = schemaNameQuotes.ReplaceAllString(out, "$1 $2")
		out = norm.NFKD.String(out)
		out = strings.TrimSpace(whitespace.ReplaceAllString(out, " "))
		out = schemaNameInvalidChar.ReplaceAllString(out, "")
		out = strings.TrimSpace(internalTrim.ReplaceAllString(out, " "))
		change.Rewritten = true
	}
	if runeLen(out) < schemaNameMin {
		out = fillToMin(out, schemaNameMin)
		change.Filled = true
	}
	if runeLen(out) > schemaNameMax {
		out = pruneToMax(out, schemaNameMax)
		change.Pruned = true
	}
	return out, change, schemaNameLetter.MatchString(out)
}

// makeSuggestion turns a scored term into a suggestion, or nil when its
// surface text cannot be made into a valid name.
func (d *document) makeSuggestion(processed string, score float64, pub string) *Suggestion {
	original := d.surface[processed]
	name, change, ok := SchemaName(original)
	if change.Rewritten {
		d.log.Info("Name changed", "from", original, "to", name, "pub", pub)
	}
	if change.Filled {
		d.log.Info("Name filled to min", "from", original, "to", name, "pub", pub)
	}
	if change.Pruned {
		d.log.Info("Name pruned to max", "from", original, "to", name, "pub", pub)
	}
	if !ok {
		return nil
	}

	s := &Suggestion{
		Score:         score,
		Extracted:     name,
		LinksAbstract: append([]string{}, d.linksAbstract.get(processed)...),
		LinksFulltext: append([]string{}, d.linksFulltext.get(processed)...),
	}
	if name == original {
		s.Processed = processed
	} else {
		s.Processed = joinProcessed(d.tp.Tokens(name), " ")
		s.Original = original
	}
	s.FromAbstractLink = containsString(d.fromAbstractLinks, processed)
	return s
}

// selectSuggestions walks the sorted candidates and keeps at most
// SuggestionLimit of them, stopping early once a candidate falls more than
// topScoreLimit times below the best one. Sibling title segments are skipped.
// A caller-supplied name is always added.
func (d *document) selectSuggestions(r *Result, sorted []ScoredTerm, processedOthers []string) {
	pub := r.PubIDs.String()

	topScore := 0.0
	next := 0
	for i := 0; i < SuggestionLimit && next < len(sorted); i++ {
		entry := sorted[next]
		next++
		if containsString(processedOthers, entry.Term) {
			i--
			continue
		}
		if i == 0 {
			topScore = entry.Score
		} else if entry.Score*topScoreLimit < topScore {
			break
		}
		s := d.makeSuggestion(entry.Term, entry.Score, pub)
		if s == nil {
			i--
			continue
		}
		r.Suggestions = append(r.Suggestions, s)
	}

	if d.req.Name == "" {
		return
	}
	nameProcessed := joinProcessed(d.tp.Tokens(d.req.Name), " ")
	for _, s := range r.Suggestions {
		if s.Processed == nameProcessed {
			return
		}
	}
	for _, entry := range sorted {
		if entry.Term == nameProcessed {
			if s := d.makeSuggestion(entry.Term, entry.Score, pub); s != nil {
				r.Suggestions = append(r.Suggestions, s)
			}
			return
		}
	}
	if s := d.makeSuggestion(nameProcessed, 0, pub); s != nil {
		r.Suggestions = append(r.Suggestions, s)
	}
}
