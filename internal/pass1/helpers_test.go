package pass1

import (
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// wordProcessor is a minimal TextProcessor: words are split on whitespace,
// trimmed of punctuation and lower-cased to their letters and digits.
type wordProcessor struct{}

var (
	testSentenceEnd = regexp.MustCompile(`\.\s+`)
	testTrim        = ".,;:!?\"'()[]{}"
)

func (wordProcessor) Sentences(text string) []string {
	var out []string
	for _, s := range testSentenceEnd.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (wordProcessor) Extract(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		if f = strings.Trim(f, testTrim); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (p wordProcessor) Tokens(text string) []Token {
	var out []Token
	for _, w := range p.Extract(text) {
		var b strings.Builder
		for _, r := range strings.ToLower(w) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, Token{Surface: w, Processed: b.String()})
		}
	}
	return out
}

func (wordProcessor) Links(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		if strings.Contains(f, "://") || strings.HasPrefix(f, "www.") {
			out = append(out, strings.TrimRight(f, ".,;:)"))
		}
	}
	return out
}

func (p wordProcessor) RemoveLinks(text string) string {
	var out []string
	for _, f := range strings.Fields(text) {
		if !strings.Contains(f, "://") && !strings.HasPrefix(f, "www.") {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

type flatIDF map[string]float64

func (f flatIDF) Get(token string) float64 {
	if v, ok := f[token]; ok {
		return v
	}
	return 1
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewEngine(wordProcessor{}, flatIDF{}, Lexicon{}, opts...)
}

func newTestDocument() *document {
	return &document{
		tp:            wordProcessor{},
		idf:           flatIDF{},
		lex:           &compiledLexicon{},
		log:           quietLogger(),
		scores:        newTermTable(),
		surface:       make(map[string]string),
		linksAbstract: newLinkTable(),
		linksFulltext: newLinkTable(),
	}
}
