package pass1

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// replaceFirst replaces the leftmost match of re in s, expanding $n in repl.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	dst := re.ExpandString(nil, repl, s, loc)
	return s[:loc[0]] + string(dst) + s[loc[1]:]
}

// splitDropTrailing splits s around re and drops trailing empty parts.
func splitDropTrailing(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	if len(parts) == 1 {
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func wordCount(s string) int {
	return len(splitDropTrailing(spaceRe, s))
}

var spaceRe = regexp.MustCompile(" ")

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return i + from
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// literalPattern turns s into a regexp that keeps letters and digits and lets
// every other character match anything.
func literalPattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func prependHTTP(url string) string {
	if !schemaStart.MatchString(url) {
		return "http://" + url
	}
	return url
}

func stripLinkStart(link string) string {
	return replaceFirst(linkCompareStart, link, "")
}

// TrimURL reduces a URL to a comparable form: scheme, www prefix, trailing
// slashes and index pages are removed and the host is upper-cased.
func TrimURL(url string) string {
	url = stripLinkStart(url)
	url = replaceFirst(linkCompareEnd, url, "")
	url = replaceFirst(linkCompareIndex, url, "")
	slash := strings.IndexByte(url, '/')
	if slash < 0 {
		return strings.ToUpper(url)
	}
	return strings.ToUpper(url[:slash]) + url[slash:]
}

func pruneToMax(s string, max int) string {
	r := []rune(s)
	switch {
	case len(r) <= max:
		return s
	case max < 1:
		return ""
	case max-4 < 1:
		return string(r[:max])
	default:
		return string(r[:max-4]) + " ..."
	}
}

func fillToMin(s string, min int) string {
	n := runeLen(s)
	switch {
	case n >= min:
		return s
	case n+1 == min:
		return s + "+"
	default:
		return s + " " + strings.Repeat("+", min-n-1)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
