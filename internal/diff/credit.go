package diff

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/btraven00/pub2agents/internal/pass1"
)

var (
	creditWhitespace  = regexp.MustCompile(`[\p{Z}\p{Cc}\p{Cf}]+`)
	creditNameSplit   = regexp.MustCompile(`[ \x{002D}\x{2010}]+`)
	creditPunctuation = regexp.MustCompile(`[\p{P}\p{S}\p{N}]+`)
	creditUppercase   = regexp.MustCompile(`^\p{Lu}+$`)
)

// creditNameParts lower-cases and splits a person name, dropping titles,
// single letters and upper-case initials other than the last part.
func creditNameParts(name string) []string {
	name = strings.ReplaceAll(name, ".", ". ")
	name = strings.TrimSpace(creditWhitespace.ReplaceAllString(name, " "))

	var parts []string
	split := creditNameSplit.Split(name, -1)
	for i, part := range split {
		part = creditPunctuation.ReplaceAllString(part, "")
		if len([]rune(part)) <= 1 ||
			creditUppercase.MatchString(part) && i < len(split)-1 ||
			strings.EqualFold(part, "dr") || strings.EqualFold(part, "prof") {
			continue
		}
		parts = append(parts, norm.NFKD.String(strings.ToLower(part)))
	}
	return parts
}

// creditNameEqual compares first and last names. A one-part name is
// compared with the last name of the other.
func creditNameEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	pa, pb := creditNameParts(a), creditNameParts(b)
	if len(pa) == 0 || len(pb) == 0 {
		return false
	}
	switch {
	case len(pa) >= 2 && len(pb) >= 2:
		return pa[0] == pb[0] && pa[len(pa)-1] == pb[len(pb)-1]
	case len(pa) < 2:
		return pa[0] == pb[len(pb)-1]
	default:
		return pb[0] == pa[len(pa)-1]
	}
}

func creditOrcidEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return pass1.TrimURL(a) == pass1.TrimURL(b)
}

// creditEmailEqual ignores case and periods in the user part.
func creditEmailEqual(a, b string) bool {
	userA, domainA, okA := strings.Cut(a, "@")
	userB, domainB, okB := strings.Cut(b, "@")
	if !okA || !okB || userA == "" || domainA == "" || userB == "" || domainB == "" {
		return false
	}
	return strings.EqualFold(strings.ReplaceAll(userA, ".", ""), strings.ReplaceAll(userB, ".", "")) &&
		strings.EqualFold(domainA, domainB)
}
