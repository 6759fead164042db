package pass1

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsAcronym reports whether the letters and digits of acronym start
// consecutive words of phrase, in order. A letter may also start a camel-case
// hump inside a word. With allWords set the acronym must account for every
// word of phrase.
//
// A match confined to a single word is retried with one character of the match
// deleted, so that concatenated titles still get a chance at a multi-word
// match.
func IsAcronym(acronym, phrase string, allWords bool) bool {
	acronym = strings.TrimSpace(acronym)
	phrase = strings.ReplaceAll(strings.TrimSpace(phrase), "-", " ")
	if !strings.Contains(phrase, " ") || strings.Contains(acronym, " ") {
		return false
	}
	re := acronymRegexp(acronym, allWords)
	if re == nil {
		return false
	}
	loc := re.FindStringIndex(phrase)
	if loc == nil {
		return false
	}
	start, end := loc[0], loc[1]
	if strings.Contains(strings.TrimSpace(phrase[start:end]), " ") {
		return true
	}
	last, size := utf8.DecodeLastRuneInString(phrase[:end])
	if last == ' ' {
		if end-size <= 0 {
			return false
		}
		_, prev := utf8.DecodeLastRuneInString(phrase[:end-size])
		return IsAcronym(acronym, phrase[:end-size-prev]+phrase[end-size:], allWords)
	}
	return IsAcronym(acronym, phrase[:end-size]+phrase[end:], allWords)
}

// acronymRegexp builds the matcher for IsAcronym, or nil when acronym has no
// letters or digits. A camel-case hump is a run of letters followed by the
// upper-case form of the acronym letter.
func acronymRegexp(acronym string, allWords bool) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	if allWords {
		b.WriteString("^")
	} else {
		b.WriteString("(^| )")
	}
	valid := false
	for _, c := range acronym {
		if !isWordRune(c) {
			continue
		}
		if valid {
			if allWords {
				b.WriteString(`[^ ]* *`)
			} else {
				b.WriteString(`([^ ]*|.* )`)
			}
		}
		valid = true
		b.WriteString(`[^ \p{L}\p{N}]*`)
		if unicode.IsLetter(c) {
			b.WriteString(`(?:\p{L}+(?-i:`)
			b.WriteString(regexp.QuoteMeta(string(unicode.ToUpper(c))))
			b.WriteString(`)|`)
			b.WriteString(regexp.QuoteMeta(string(c)))
			b.WriteString(`)`)
		} else {
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if !valid {
		return nil
	}
	if allWords {
		b.WriteString(`[^ ]*$`)
	}
	return regexp.MustCompile(b.String())
}

// Acronyms finds "phrase (ACR)" and "ACR (phrase)" constructs in sentence and
// returns token indices relative to the tokens of the scanned parts. A
// non-negative index marks a word that abbreviates the parenthesised phrase
// following it. A negative index marks a parenthesised acronym of the phrase
// before it.
func Acronyms(tp TextProcessor, sentence string) []int {
	var acronyms []int
	previousEnd, index := 0, 0
	for {
		begin := indexFrom(sentence, " (", previousEnd)
		if begin < 0 {
			break
		}
		end := indexFrom(sentence, ")", begin+2)
		if end < 0 {
			break
		}

		before := strings.TrimSpace(sentence[previousEnd:begin])
		beforeTokens := tp.Tokens(before)

		inside := strings.TrimSpace(sentence[begin : end+1])
		insideTokens := tp.Tokens(inside)

		if loc := acronymStop.FindStringIndex(inside); loc != nil {
			inside = strings.TrimSpace(inside[:loc[0]])
		}

		if strings.Contains(inside, " ") && len(beforeTokens) > 0 && len(insideTokens) > 0 {
			if IsAcronym(beforeTokens[len(beforeTokens)-1].Surface, inside, false) {
				acronyms = append(acronyms, index+len(beforeTokens)-1)
			}
		} else if !strings.Contains(inside, " ") && len(beforeTokens) > 1 && len(insideTokens) > 0 {
			if IsAcronym(inside, before, false) {
				acronyms = append(acronyms, -(index + len(beforeTokens)))
			}
		}

		index += len(beforeTokens) + len(insideTokens)
		previousEnd = indexFrom(sentence, " ", end+1)
		if previousEnd < 0 {
			break
		}
	}
	return acronyms
}

func firstAcronymIndex(tp TextProcessor, sentence string) (int, bool) {
	acronyms := Acronyms(tp, sentence)
	if len(acronyms) == 0 {
		return 0, false
	}
	if acronyms[0] < 0 {
		return -acronyms[0], true
	}
	return acronyms[0], true
}

func containsIndex(list []int, i int) bool {
	for _, v := range list {
		if v == i {
			return true
		}
	}
	return false
}
