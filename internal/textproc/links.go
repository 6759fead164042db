package textproc

import (
	"regexp"
	"sort"
	"strings"
)

// LinkPattern finds link candidates in prose.
type LinkPattern struct {
	Name  string
	Regex *regexp.Regexp
}

const tlds = `com|org|net|edu|gov|int|info|io|bio|eu|uk|de|fr|it|es|nl|be|ch|at|dk|se|no|fi|ee|cz|pl|pt|ru|cn|jp|kr|in|au|ca|us|br|sg|tw|il|ie|hu|gr|si|sk|lt|lv|hr`

// getLinkPatterns returns the link candidate patterns, most specific first.
func getLinkPatterns() []LinkPattern {
	return []LinkPattern{
		{
			Name:  "Scheme URLs",
			Regex: regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s<>"]+`),
		},
		{
			Name:  "DOI Pattern",
			Regex: regexp.MustCompile(`(?i)\bdoi:\s*10\.\d{4,}/[^\s<>"]+`),
		},
		{
			Name:  "WWW URLs",
			Regex: regexp.MustCompile(`(?i)\bwww\d{0,3}\.[^\s<>"]+`),
		},
		{
			Name:  "Schemeless hosts",
			Regex: regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9-]*(?:\.[a-zA-Z0-9-]+)*\.(?:` + tlds + `)\b(?:/[^\s<>"]*)?`),
		},
	}
}

type span struct {
	start, end int
}

// linkSpans returns the non-overlapping link spans of text in text order.
func (p *Processor) linkSpans(text string) []span {
	var all []span
	for _, pattern := range p.patterns {
		for _, loc := range pattern.Regex.FindAllStringIndex(text, -1) {
			s := span{loc[0], loc[0] + len(cleanLink(text[loc[0]:loc[1]]))}
			if s.end > s.start {
				all = append(all, s)
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})

	var spans []span
	end := -1
	for _, s := range all {
		if s.start < end {
			continue
		}
		spans = append(spans, s)
		end = s.end
	}
	return spans
}

// Links returns the link candidates of text in order of appearance. DOIs
// written as "doi:10..." come back as doi.org links.
func (p *Processor) Links(text string) []string {
	var links []string
	for _, s := range p.linkSpans(text) {
		link := text[s.start:s.end]
		if strings.HasPrefix(strings.ToLower(link), "doi:") {
			link = "https://doi.org/" + strings.TrimSpace(link[4:])
		}
		links = append(links, link)
	}
	return links
}

// RemoveLinks returns text with every link candidate cut out.
func (p *Processor) RemoveLinks(text string) string {
	spans := p.linkSpans(text)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	from := 0
	for _, s := range spans {
		b.WriteString(text[from:s.start])
		from = s.end
	}
	b.WriteString(text[from:])
	return b.String()
}

// stopPatterns are running heads and section titles that PDF conversion
// glues onto the end of links.
var stopPatterns = []string{
	"Correspondence", "Peerreview", "Naturecommunications", "Publishersnote",
	"Springernature", "Reprintsandpermission", "Acknowledgments", "Authorcontributions",
	"Competinginterests", "Supplementaryinformation", "Extendeddata",
}

// cleanLink removes text conversion artifacts and trailing sentence
// punctuation from a raw link candidate. Link-shaped prose glued to the end
// is left for the pass1 link repair.
func cleanLink(raw string) string {
	lower := strings.ToLower(raw)
	cut := len(raw)
	for _, pattern := range stopPatterns {
		if index := strings.Index(lower, strings.ToLower(pattern)); index > 0 && index < cut && strings.Contains(raw[:index], "://") {
			cut = index
		}
	}
	raw = raw[:cut]

	for {
		trimmed := strings.TrimRight(raw, ".,:;!?'\"")
		if strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if strings.HasSuffix(trimmed, "]") && strings.Count(trimmed, "]") > strings.Count(trimmed, "[") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == raw {
			return raw
		}
		raw = trimmed
	}
}
