package pass1

import (
	"strings"
)

// Token is one word of text in its two renderings. Surface is the word as it
// appeared, Processed is the normalized form used as a score key.
type Token struct {
	Surface   string `json:"surface"`
	Processed string `json:"processed"`
}

// TextProcessor splits and normalizes publication text. Tokens must only
// return words whose processed form is non-empty so that both renderings stay
// index-aligned.
type TextProcessor interface {
	Sentences(text string) []string
	Extract(text string) []string
	Tokens(text string) []Token
	Links(text string) []string
	RemoveLinks(text string) string
}

// IDF looks up the inverse document frequency of a processed token. Unknown
// tokens are expected to be maximally rare.
type IDF interface {
	Get(token string) float64
}

// Lexicon holds the word lists consulted while scoring. Trigger words are
// compared against processed tokens.
type Lexicon struct {
	HostIgnore  []string
	BeforeTier1 []string
	BeforeTier2 []string
	BeforeTier3 []string
	AfterTier1  []string
	AfterTier2  []string
	AfterTier3  []string
}

// Request carries the optional caller-supplied hints for one publication.
type Request struct {
	Name string
	URLs []string
	// Batch enables the size limits on abstract and full text.
	Batch bool
}

func surfaces(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Surface
	}
	return out
}

func processedForms(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Processed
	}
	return out
}

func joinSurface(tokens []Token, sep string) string {
	return strings.Join(surfaces(tokens), sep)
}

func joinProcessed(tokens []Token, sep string) string {
	return strings.Join(processedForms(tokens), sep)
}

type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}
