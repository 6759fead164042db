package pass1

import "strings"

// FixLinks repairs links that swallowed surrounding prose. Variants cut before
// trailing junk or an email address are inserted right after the link they
// come from, links with an unknown scheme get an http copy, and every link is
// finally cut to its longest URL-shaped prefix and before an unmatched
// closing parenthesis.
func (e *Engine) FixLinks(links []string) []string {
	for i := 0; i < len(links); i++ {
		link := links[i]
		if loc := fixLink.FindStringIndex(link); loc != nil {
			i++
			links = insertAt(links, i, link[:loc[0]])
			continue
		}
		if m := fixLinkKeep1.FindStringSubmatchIndex(link); m != nil {
			i++
			links = insertAt(links, i, link[:m[0]]+link[m[2]:m[3]])
			continue
		}
		if m := fixLinkKeep2.FindStringSubmatchIndex(link); m != nil {
			i++
			links = insertAt(links, i, link[:m[0]]+link[m[2]:m[3]])
			continue
		}
		email1 := fixLinkEmail1.FindStringIndex(link)
		email2 := fixLinkEmail2.FindStringIndex(link)
		email3 := fixLinkEmail3.FindStringIndex(link)
		if email1 != nil {
			i++
			links = insertAt(links, i, link[:email1[0]])
		}
		if email2 != nil {
			i++
			links = insertAt(links, i, link[:email2[0]])
		}
		if email3 != nil {
			i++
			links = insertAt(links, i, link[:email3[0]])
		}
	}

	for i := 0; i < len(links); i++ {
		link := links[i]
		if loc := schemaStart.FindStringIndex(link); loc != nil && !knownSchemaStart.MatchString(link) {
			i++
			links = insertAt(links, i, "http://"+link[loc[1]:])
		}
	}

	for i, link := range links {
		loc := urlFix.FindStringIndex(link)
		if loc == nil {
			e.log.Error("URL not matched", "url", link)
			continue
		}
		if fixed := link[loc[0]:loc[1]]; fixed != link {
			links[i] = fixed
			e.log.Info("URL fixed", "from", link, "to", fixed)
		}
	}

	for i, link := range links {
		open := strings.IndexByte(link, '(')
		closing := strings.IndexByte(link, ')')
		if closing >= 0 && (open < 0 || closing < open) {
			links[i] = link[:closing]
			e.log.Info("URL fixed", "from", link, "to", links[i])
		}
	}
	return links
}
