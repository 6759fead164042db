package pass1

import (
	"strings"
	"unicode/utf8"
)

// BreakLinks splits links that swallowed a following link. When a link
// (without scheme and www) starts with another known link and the remainder
// holds a scheme, it is cut at that scheme and the tail is inserted right
// after it. A link with an embedded scheme and no known prefix is cut at the
// scheme as well. links is modified in place and returned.
func BreakLinks(links, allLinks []string) []string {
	for i := 0; i < len(links); i++ {
		link := links[i]
		linkStart := ""
		if loc := linkCompareStart.FindStringIndex(link); loc != nil {
			linkStart = link[:loc[1]]
			link = link[loc[1]:]
		}

		linkMax, schemaBegin, schemaEnd := 0, 0, 0
		for _, other := range allLinks {
			if link != other && strings.HasPrefix(link, other) && len(other) > linkMax {
				rest := link[len(other):]
				if loc := linkCompareSchema.FindStringIndex(rest); loc != nil {
					linkMax = len(other)
					schemaBegin, schemaEnd = loc[0], loc[1]
				}
			}
		}

		if linkMax > 0 {
			links[i] = linkStart + link[:linkMax]
			if linkMax+schemaEnd < len(link) {
				links = insertAt(links, i+1, link[linkMax+schemaBegin:])
			}
			continue
		}
		if loc := linkCompareSchema.FindStringIndex(link); loc != nil {
			links[i] = linkStart + link[:loc[0]]
			if loc[1] < len(link) {
				links = insertAt(links, i+1, link[loc[0]:])
			}
		}
	}
	return links
}

func insertAt(list []string, i int, s string) []string {
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}

func removeAt(list []string, i int) []string {
	return append(list[:i], list[i+1:]...)
}

var ignoredLinkHosts = []string{
	"dx.doi.org",
	"doi.org",
	"goo.gl",
	"youtube.com",
	"proteomecentral.proteomexchange.org",
}

// FromLink derives a name fragment from a link: the most telling path
// segment, else the first host label. It returns "" when the link does not
// carry a usable name.
func FromLink(tp TextProcessor, idf IDF, hostIgnore []string, link string) string {
	if schema := strings.Index(link, "://"); schema > -1 {
		link = link[schema+3:]
	}
	link = replaceFirst(linkWWW, link, "")
	link = replaceFirst(linkEndRemove, link, "")

	firstSlash := strings.IndexByte(link, '/')

	if loc := linkEmailEnd.FindStringIndex(link); loc != nil {
		if firstSlash > -1 {
			remove := linkEmailRemove.FindStringIndex(link)
			if remove == nil {
				return ""
			}
			link = link[:remove[0]]
		} else {
			link = link[:loc[0]]
		}
	}

	host := link
	if firstSlash > -1 && firstSlash <= len(link) {
		host = link[:firstSlash]
	}
	if containsString(ignoredLinkHosts, host) {
		return ""
	}

	pathCount := 0
	bestPath := ""
	bestPathScore := 0.0

	for slash := strings.LastIndexByte(link, '/'); slash > -1; slash = strings.LastIndexByte(link, '/') {
		path := link[slash+1:]
		link = link[:slash]

		if path == "" {
			continue
		}
		pathCount++

		if strings.HasPrefix(path, "~") || strings.HasPrefix(path, "∼") || strings.HasPrefix(path, "%") {
			continue
		}

		if pathCount == 1 {
			if equals := strings.LastIndexByte(path, '='); equals > -1 {
				if query := strings.IndexByte(path, '?'); query > -1 {
					link += "/" + path[:query]
				}
				path = path[equals+1:]
				if fragment := strings.IndexByte(path, '#'); fragment > -1 {
					path = path[fragment+1:]
				}
			} else if fragment := strings.IndexByte(path, '#'); fragment > -1 {
				link += "/" + path[:fragment]
				path = path[fragment+1:]
			}
		} else {
			if pathQuery.MatchString(path) {
				continue
			}
			if strings.HasPrefix(path, "#") {
				continue
			}
		}

		path = replaceFirst(pathPeriod, path, "")
		path = strings.TrimSuffix(path, ".tar")

		if len(pathSplit.FindAllStringIndex(path, 2)) == 2 {
			path = strings.TrimSpace(pathSplit.ReplaceAllString(path, " "))
		}

		if path == "" || pathNumber.MatchString(path) {
			continue
		}

		score := idf.Get(joinProcessed(tp.Tokens(path), ""))
		if score > bestPathScore {
			bestPath = path
			bestPathScore = score
		}

		if pathOneUppercase.MatchString(path) || score > pathIDFMin {
			return path
		}
	}

	if pathCount < 3 {
		if period := strings.IndexByte(link, '.'); period > -1 {
			rest := link[period+1:]
			label := link[:period]
			if runeLen(label) > 1 &&
				!strings.HasPrefix(label, "bioinf") && !strings.HasSuffix(label, "lab") &&
				!pathUni.MatchString(label) && !pathNumber.MatchString(label) &&
				rest != "edu" && !strings.HasPrefix(rest, "edu.") && !strings.HasPrefix(rest, "ac.") &&
				!containsString(hostIgnore, label) {
				return label
			}
		}
	}

	if bestPath != "" && bestPathScore > pathIDFMin2 {
		return bestPath
	}
	return ""
}

// reconcileLinks removes from fulltextLinks the copies of title and abstract
// links, so that a link found in both places is only counted for the
// abstract. A full-text link that is a clean prefix of an abstract link (the
// abstract copy having trailing prose glued on) replaces the abstract link.
// Each provided URL shields one equal abstract link from reconciliation.
func reconcileLinks(titleAbstractLinks, fulltextLinks, provided []string) ([]string, []string) {
	provided = append([]string(nil), provided...)

	for i := 0; i < len(titleAbstractLinks); i++ {
		link := titleAbstractLinks[i]

		shielded := false
		for j, p := range provided {
			if p == link {
				provided = removeAt(provided, j)
				shielded = true
				break
			}
		}
		if shielded {
			continue
		}

		linkStart := ""
		if loc := linkCompareStart.FindStringIndex(link); loc != nil {
			linkStart = link[:loc[1]]
		}
		linkRest := link[len(linkStart):]

		for j := 0; j < len(fulltextLinks); j++ {
			fulltextLink := fulltextLinks[j]
			if fulltextLink == link {
				fulltextLinks = removeAt(fulltextLinks, j)
				break
			}

			start := linkStart
			fulltextRest := fulltextLink
			if loc := linkCompareStart.FindStringIndex(fulltextLink); loc != nil {
				if loc[1] > len(start) {
					start = fulltextLink[:loc[1]]
				}
				fulltextRest = fulltextLink[loc[1]:]
			}

			if fulltextRest == linkRest {
				titleAbstractLinks[i] = start + linkRest
				fulltextLinks = removeAt(fulltextLinks, j)
				break
			}

			if fulltextRest != "" && strings.HasPrefix(linkRest, fulltextRest) {
				_, size := utf8.DecodeLastRuneInString(fulltextRest)
				if linkCompareRest.MatchString(linkRest[len(fulltextRest)-size:]) {
					titleAbstractLinks[i] = start + fulltextRest
					fulltextLinks = removeAt(fulltextLinks, j)
					break
				}
			}
		}
	}
	return titleAbstractLinks, fulltextLinks
}
