package pass1

import (
	"regexp"
	"strings"
	"unicode"
)

// linkCandidate is one (link fragment, scored term) pair under test.
type linkCandidate struct {
	fragment     string
	key          string
	keyCompare   string
	keyExtracted string
}

// matchRule reports whether a link fragment names a candidate term.
type matchRule func(d *document, c *linkCandidate) bool

// Rules are tried in order and the first success wins. The longest
// prefix/suffix fallbacks are tracked between the two lists.
var (
	primaryMatchRules  = []matchRule{matchExact, matchSingleStart, matchSingleEnd, matchMultiStart}
	fallbackMatchRules = []matchRule{matchAcronym}
)

func matchExact(_ *document, c *linkCandidate) bool {
	return c.key == c.fragment || c.keyCompare == c.fragment
}

// matchSingleStart accepts a one-word term whose surface form starts with the
// fragment, provided the cut falls on a plausible word boundary.
func matchSingleStart(d *document, c *linkCandidate) bool {
	if hasSpace(c.key) || !strings.HasPrefix(c.keyCompare, c.fragment) {
		return false
	}
	frag := []rune(c.fragment)
	ext := []rune(c.keyExtracted)
	lower := lowerRunes(ext)

	idx := 0
	for _, r := range frag {
		for idx < len(lower) && r != lower[idx] {
			idx++
		}
		if idx < len(lower) {
			idx++
		} else {
			break
		}
	}
	if idx > 0 {
		idx--
	}

	start := ext[idx:]
	if goodStart.MatchString(string(start)) && !(len(start) == 2 && start[1] == 's') {
		return true
	}
	if len(start) >= 2 && start[1] == '-' {
		count := 0
		for _, sentence := range d.tokens {
			for _, t := range sentence {
				if t.Processed == c.key {
					count++
				}
			}
		}
		return count > 1
	}
	return false
}

// matchSingleEnd accepts a one-word term whose surface form ends with the
// fragment, provided the remaining head looks like a separate word.
func matchSingleEnd(_ *document, c *linkCandidate) bool {
	if hasSpace(c.key) || !strings.HasSuffix(c.keyCompare, c.fragment) || linkTwoPart.MatchString(c.keyExtracted) {
		return false
	}
	frag := []rune(c.fragment)
	ext := []rune(c.keyExtracted)
	lower := lowerRunes(ext)

	idx := len(lower) - 1
	for i := len(frag) - 1; i >= 0; i-- {
		for idx >= 0 && frag[i] != lower[idx] {
			idx--
		}
		if idx >= 0 {
			idx--
		} else {
			break
		}
	}
	if idx < len(lower) {
		idx++
	}
	if idx < len(lower) {
		idx++
	}
	return goodEnd.MatchString(string(ext[:idx]))
}

// matchMultiStart accepts a multi-word term starting with the fragment when
// the term is capitalised like a name and actually occurs, give or take
// punctuation between words, in the title or abstract.
func matchMultiStart(d *document, c *linkCandidate) bool {
	if !hasSpace(c.key) || !strings.HasPrefix(c.keyCompare, c.fragment) {
		return false
	}
	if !goodStartMulti.MatchString(c.keyExtracted) {
		return false
	}
	words := strings.Split(c.keyExtracted, " ")
	parts := make([]string, 0, len(words))
	for _, w := range words {
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		p := literalPattern(string(r[0]))
		if len(r) > 1 {
			p += `[^ ]*` + literalPattern(string(r[len(r)-1]))
		}
		parts = append(parts, p)
	}
	re, err := regexp.Compile(strings.Join(parts, `([ ./]+)`))
	if err != nil {
		return false
	}
	return re.MatchString(d.titleWithoutLinks) || re.MatchString(d.abstractWithoutLinks)
}

func matchAcronym(_ *document, c *linkCandidate) bool {
	return IsAcronym(c.fragment, c.key, true)
}

func lowerRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[i] = unicode.ToLower(c)
	}
	return out
}

// associate matches every link against every candidate term and returns the
// links found for each term.
func (d *document) associate(partLinks []string, keys []string) *linkTable {
	table := newLinkTable()

	for _, link := range partLinks {
		fromLink := FromLink(d.tp, d.idf, d.lex.hostIgnore, link)
		if fromLink == "" {
			continue
		}
		fragment := joinProcessed(d.tp.Tokens(fromLink), "")
		if fragment == "" {
			continue
		}

		var matched []string
		twoPart := linkTwoPart.MatchString(link)
		linkProcessed := joinProcessed(d.tp.Tokens(link), "")

		longestStart, longestEnd := "", ""

		for _, key := range keys {
			if twoPart && linkProcessed == key {
				continue
			}
			if fragment+fragment == key {
				continue
			}

			extracted, ok := d.surface[key]
			if !ok {
				extracted = key
			}
			c := &linkCandidate{
				fragment:     fragment,
				key:          key,
				keyCompare:   strings.ReplaceAll(key, " ", ""),
				keyExtracted: extracted,
			}

			found := false
			for _, rule := range primaryMatchRules {
				if rule(d, c) {
					found = true
					break
				}
			}

			if !found && toLink.MatchString(c.keyExtracted) && !notToLink.MatchString(c.keyExtracted) {
				if strings.HasPrefix(fragment, c.keyCompare) && runeLen(key) > runeLen(longestStart) {
					longestStart = key
				}
				if strings.HasSuffix(fragment, c.keyCompare) && runeLen(key) > runeLen(longestEnd) {
					longestEnd = key
				}
			}

			if !found {
				for _, rule := range fallbackMatchRules {
					if rule(d, c) {
						found = true
						break
					}
				}
			}

			if found {
				table.add(key, link)
				matched = append(matched, key)
			}
		}

		if d.seg.Extracted != "" && d.seg.Pruned != "" {
			d.titleMatch(d.seg.Extracted, &matched, twoPart, linkProcessed, fromLink, link, table)
		}
		if d.acronym != "" {
			d.titleMatch(d.acronym, &matched, twoPart, linkProcessed, fromLink, link, table)
		}

		// Only a matched term starting with the fallback blocks it, not the
		// other way round.
		if runeLen(longestStart) > 2 && !anyHasPrefix(matched, longestStart) {
			table.add(longestStart, link)
			matched = append(matched, longestStart)
		}
		if runeLen(longestEnd) > 2 && !anyHasSuffix(matched, longestEnd) {
			table.add(longestEnd, link)
			matched = append(matched, longestEnd)
		}
	}

	return table
}

func anyHasPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func anyHasSuffix(list []string, suffix string) bool {
	for _, s := range list {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// titleMatch tests the title segment (or its acronym) directly against the
// link fragment: prefix or suffix either way, then initials either way.
func (d *document) titleMatch(title string, matched *[]string, twoPart bool, linkProcessed, fromLink, link string, table *linkTable) bool {
	if title == "" {
		return false
	}
	titleTokens := d.tp.Tokens(title)
	titleKey := joinProcessed(titleTokens, " ")

	if len(titleTokens) > compoundWords || containsString(*matched, titleKey) || (twoPart && linkProcessed == titleKey) {
		return false
	}

	titleHyphen := joinProcessed(d.tp.Tokens(strings.ReplaceAll(title, "-", " ")), " ")
	fromLinkHyphen := joinProcessed(d.tp.Tokens(strings.ReplaceAll(fromLink, "-", " ")), " ")

	titleTrimmed := replaceFirst(toolTitleTrim, titleHyphen, "")
	fromLinkTrimmed := replaceFirst(toolTitleTrim, fromLinkHyphen, "")
	titleCompare := strings.ReplaceAll(titleTrimmed, " ", "")
	fromLinkCompare := strings.ReplaceAll(fromLinkTrimmed, " ", "")
	if runeLen(titleCompare) < 2 || runeLen(fromLinkCompare) < 2 {
		return false
	}

	matches := strings.HasPrefix(titleCompare, fromLinkCompare) || strings.HasSuffix(titleCompare, fromLinkCompare) ||
		strings.HasPrefix(fromLinkCompare, titleCompare) || strings.HasSuffix(fromLinkCompare, titleCompare)

	if !matches {
		matches = initialsPattern(fromLinkCompare, `(^| )`, `(.* )?`, "").MatchString(titleTrimmed)
	}
	if !matches {
		matches = initialsPattern(titleCompare, `(^| )`, `(.* )?`, "").MatchString(fromLinkTrimmed)
	}
	if !matches {
		matches = initialsPattern(fromLinkCompare, `^`, `([^ ]*|.* )`, `[^ ]*$`).MatchString(titleTrimmed)
	}
	if !matches {
		matches = initialsPattern(titleCompare, `^`, `([^ ]*|.* )`, `[^ ]*$`).MatchString(fromLinkTrimmed)
	}

	if matches {
		table.add(titleKey, link)
		*matched = append(*matched, titleKey)
	}
	return matches
}

// initialsPattern spells s out one character at a time with gap between the
// characters.
func initialsPattern(s, prefix, gap, suffix string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(prefix)
	for i, r := range []rune(s) {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(literalPattern(string(r)))
	}
	b.WriteString(suffix)
	return regexp.MustCompile(b.String())
}
