package pass1

import (
	"net/url"
	"regexp"
	"strings"
)

// attachLeftovers records the links no suggestion holds and then hands some
// of them back: first to suggestions whose name is spelled out in the link,
// then to suggestions when the abstract says the link's host is "available"
// nearby.
func (d *document) attachLeftovers(r *Result) {
	r.setLeftovers(d.titleAbstractLinks, d.fulltextLinks)

	leftoverCompare := make([]string, len(r.LeftoverLinksAbstract))
	for i, link := range r.LeftoverLinksAbstract {
		leftoverCompare[i] = joinProcessed(d.tp.Tokens(link), "")
	}
	linksCompare := make([]string, len(d.titleAbstractLinks))
	for i, link := range d.titleAbstractLinks {
		linksCompare[i] = joinProcessed(d.tp.Tokens(link), "")
	}

	remove := make(map[int]bool)
	for _, s := range r.Suggestions {
		compare := strings.ReplaceAll(replaceFirst(processedVersion, s.Processed, ""), " ", "")
		if runeLen(compare) < 2 {
			continue
		}
		for i, link := range r.LeftoverLinksAbstract {
			if strings.Contains(leftoverCompare[i], compare) {
				s.LinksAbstract = append(s.LinksAbstract, link)
				remove[i] = true
			}
		}
		for i, link := range d.titleAbstractLinks {
			if containsString(s.LinksAbstract, link) || containsString(r.LeftoverLinksAbstract, link) {
				continue
			}
			if strings.Contains(linksCompare[i], compare) {
				s.LinksAbstract = append(s.LinksAbstract, link)
			}
		}
	}
	r.LeftoverLinksAbstract = dropIndices(r.LeftoverLinksAbstract, remove)

	remove = make(map[int]bool)
	for _, s := range r.Suggestions {
		abstract := d.abstract
		for _, link := range s.LinksAbstract {
			trimmed := replaceFirst(linkCompareEnd, replaceFirst(linkCompareStart, link, "."), "")
			re, err := regexp.Compile(`(?i)` + literalPattern(trimmed))
			if err != nil {
				continue
			}
			abstract = re.ReplaceAllString(abstract, "")
		}

		for i, link := range r.LeftoverLinksAbstract {
			if leftoverExclude.MatchString(link) {
				continue
			}
			u, err := url.Parse(prependHTTP(link))
			if err != nil || u.Hostname() == "" {
				continue
			}
			host := literalPattern(u.Hostname())
			before := regexp.MustCompile(`(?i)` + leftoverAvailable + `[^.?]*[^ ]*` + host)
			after := regexp.MustCompile(`(?i)` + host + `[^ ]*[^.?]*` + leftoverAvailable)
			if before.MatchString(abstract) || after.MatchString(abstract) {
				s.LinksAbstract = append(s.LinksAbstract, link)
				remove[i] = true
			}
		}
	}
	r.LeftoverLinksAbstract = dropIndices(r.LeftoverLinksAbstract, remove)
}

// attachProvided gives the suggestion named like the caller-supplied name
// every supplied URL it does not carry yet.
func (d *document) attachProvided(r *Result) {
	if d.req.Name == "" || len(d.req.URLs) == 0 {
		return
	}
	nameProcessed := joinProcessed(d.tp.Tokens(d.req.Name), " ")
	for _, s := range r.Suggestions {
		if s.Processed != nameProcessed {
			continue
		}
		var missing []string
		for _, provided := range d.req.URLs {
			found := false
			for _, link := range s.LinksAbstract {
				if TrimURL(link) == TrimURL(provided) {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, provided)
			}
		}
		s.LinksAbstract = append(s.LinksAbstract, missing...)
		return
	}
}

func dropIndices(list []string, remove map[int]bool) []string {
	if len(remove) == 0 {
		return list
	}
	out := make([]string, 0, len(list)-len(remove))
	for i, s := range list {
		if !remove[i] {
			out = append(out, s)
		}
	}
	return out
}
