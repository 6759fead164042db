package pass1

import (
	"strings"
)

// Segment is one candidate name region of a title.
type Segment struct {
	// ExtractedOriginal is the segment text before an embedded acronym is
	// taken out.
	ExtractedOriginal string `json:"extracted_original"`
	Extracted         string `json:"extracted"`
	Pruned            string `json:"pruned"`
}

// Segmentation is the outcome of splitting a title into name candidates.
type Segmentation struct {
	Segments []Segment `json:"segments"`
	Acronym  string    `json:"acronym,omitempty"`
	// Rest is the title text outside the chosen segments.
	Rest string `json:"rest"`
}

// PruneTitle strips generic and version words from both ends of tokens and
// returns the remaining surface text together with the kept tokens.
func PruneTitle(tokens []Token) (string, []Token) {
	for len(tokens) > 0 && toolTitlePrune.MatchString(tokens[0].Surface) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && toolTitlePrune.MatchString(tokens[len(tokens)-1].Surface) {
		tokens = tokens[:len(tokens)-1]
	}
	return joinSurface(tokens, " "), tokens
}

// SegmentTitle carves name candidates out of a publication title. Every
// separator match closes a raw segment; the raw segment (or the list of names
// it enumerates) with the fewest words wins, the earliest one on ties. Without
// any separator the whole title is a candidate only if it is short once
// pruned.
func SegmentTitle(tp TextProcessor, title string) Segmentation {
	var (
		best       []Segment
		bestWords  int
		bestAcr    string
		rest       = title
		from       = 0
		haveResult = false
	)

	for from < len(title) {
		loc := titleSeparator.FindStringIndex(title[from:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := from+loc[0], from+loc[1]

		current := strings.TrimSpace(title[from:matchStart])
		if toolTitleInvalid.MatchString(current) {
			from = matchEnd
			continue
		}

		var (
			segments []Segment
			acronym  string
			words    int
		)

		acronymIndex, hasAcronym := firstAcronymIndex(tp, current)
		if !toolTitleSeparator.MatchString(current) || hasAcronym || wordCount(current) > titleSeparatorMaxWords {
			original := strings.Join(tp.Extract(current), " ")
			tokens := tp.Tokens(current)
			if hasAcronym && acronymIndex < len(tokens) {
				acronym = tokens[acronymIndex].Surface
				tokens = append(append([]Token{}, tokens[:acronymIndex]...), tokens[acronymIndex+1:]...)
			}
			pruned, kept := PruneTitle(tokens)
			segments = append(segments, Segment{
				ExtractedOriginal: original,
				Extracted:         joinSurface(tokens, " "),
				Pruned:            pruned,
			})
			words += len(kept)
		} else {
			for _, part := range splitDropTrailing(toolTitleSplit, current) {
				tokens := tp.Tokens(part)
				pruned, kept := PruneTitle(tokens)
				segments = append(segments, Segment{
					ExtractedOriginal: strings.Join(tp.Extract(part), " "),
					Extracted:         joinSurface(tokens, " "),
					Pruned:            pruned,
				})
				words += len(kept)
			}
		}

		if words < bestWords || !haveResult {
			best = segments
			bestWords = words
			bestAcr = acronym
			rest = strings.TrimSpace(title[:from]) + " " + strings.TrimSpace(title[matchStart:])
			haveResult = len(segments) > 0
		}

		from = matchEnd
	}

	if from == 0 {
		original := strings.Join(tp.Extract(title), " ")
		tokens := tp.Tokens(title)
		pruned, _ := PruneTitle(tokens)
		if runeLen(pruned) <= titleStandaloneMaxChars {
			best = append(best, Segment{
				ExtractedOriginal: original,
				Extracted:         pruned,
				Pruned:            pruned,
			})
			rest = ""
		}
	}

	return Segmentation{Segments: best, Acronym: bestAcr, Rest: rest}
}
