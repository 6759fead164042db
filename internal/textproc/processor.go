// Package textproc is the default text processor of pass1: sentence
// splitting, tokenisation with normalised forms, and link detection.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	snowball "github.com/kljensen/snowball/english"

	"github.com/btraven00/pub2agents/internal/pass1"
)

// Processor splits and normalises text. It is safe for concurrent use once
// built.
type Processor struct {
	stopWords map[string]struct{}
	stem      bool
	patterns  []LinkPattern
}

// Option configures a Processor.
type Option func(*Processor)

// WithStopWords drops the given words (compared after lower-casing) from the
// processed token stream.
func WithStopWords(words []string) Option {
	return func(p *Processor) {
		for _, w := range words {
			if w = normalise(w); w != "" {
				p.stopWords[w] = struct{}{}
			}
		}
	}
}

// WithStemming enables English snowball stemming of processed tokens.
func WithStemming(stem bool) Option {
	return func(p *Processor) {
		p.stem = stem
	}
}

// New creates a processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		stopWords: make(map[string]struct{}),
		patterns:  getLinkPatterns(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ pass1.TextProcessor = (*Processor)(nil)

var (
	sentenceEnd   = regexp.MustCompile(`[.!?]+["')\]]*\s+`)
	lineBreak     = regexp.MustCompile(`\s*[\r\n]+\s*`)
	tokenBoundary = ".,;:!?\"'()[]{}<>«»“”‘’"
)

// Sentences splits text at terminal punctuation followed by whitespace and an
// upper-case letter, a digit or an opening bracket, and at line breaks.
func (p *Processor) Sentences(text string) []string {
	var sentences []string
	for _, line := range lineBreak.Split(text, -1) {
		from := 0
		for _, loc := range sentenceEnd.FindAllStringIndex(line, -1) {
			if loc[1] >= len(line) {
				break
			}
			next := []rune(line[loc[1]:])[0]
			if !unicode.IsUpper(next) && !unicode.IsDigit(next) && next != '(' && next != '[' {
				continue
			}
			if s := strings.TrimSpace(line[from:loc[1]]); s != "" {
				sentences = append(sentences, s)
			}
			from = loc[1]
		}
		if s := strings.TrimSpace(line[from:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Extract returns the surface words of text, trimmed of boundary
// punctuation.
func (p *Processor) Extract(text string) []string {
	var words []string
	for _, field := range strings.Fields(text) {
		if w := strings.Trim(field, tokenBoundary); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Tokens returns the words of text paired with their processed forms. Words
// whose processed form is empty are left out.
func (p *Processor) Tokens(text string) []pass1.Token {
	var tokens []pass1.Token
	for _, w := range p.Extract(text) {
		if processed := p.Process(w); processed != "" {
			tokens = append(tokens, pass1.Token{Surface: w, Processed: processed})
		}
	}
	return tokens
}

// Process normalises one word: lower case, letters and digits only, stop
// words removed, optionally stemmed.
func (p *Processor) Process(word string) string {
	w := normalise(word)
	if w == "" {
		return ""
	}
	if _, stop := p.stopWords[w]; stop {
		return ""
	}
	if p.stem {
		if stemmed := snowball.Stem(w, false); stemmed != "" {
			w = stemmed
		}
	}
	return w
}

func normalise(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
