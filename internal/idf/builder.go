package idf

import (
	"math"

	"github.com/btraven00/pub2agents/internal/pass1"
)

// Tokenizer yields the processed tokens of a text.
type Tokenizer interface {
	Tokens(text string) []pass1.Token
}

// Builder counts document frequencies over a corpus.
type Builder struct {
	tokenizer Tokenizer
	df        map[string]int
	documents int
}

// NewBuilder creates a builder that tokenises with tk.
func NewBuilder(tk Tokenizer) *Builder {
	return &Builder{tokenizer: tk, df: make(map[string]int)}
}

// Add counts one document made of the given texts. Each token counts once
// per document however often it occurs.
func (b *Builder) Add(texts ...string) {
	seen := make(map[string]bool)
	for _, text := range texts {
		for _, tok := range b.tokenizer.Tokens(text) {
			if !seen[tok.Processed] {
				seen[tok.Processed] = true
				b.df[tok.Processed]++
			}
		}
	}
	b.documents++
}

// Documents is the number of documents added so far.
func (b *Builder) Documents() int {
	return b.documents
}

// Table computes ln(N/df)/ln(N) for every token, clamped to [0,1]. With
// fewer than two documents every token gets 1.
func (b *Builder) Table() *Table {
	t := New()
	t.documents = b.documents
	n := float64(b.documents)
	for token, df := range b.df {
		t.Set(token, Value(n, float64(df)))
	}
	return t
}

// Value is the normalised IDF of a token found in df of n documents.
func Value(n, df float64) float64 {
	if n < 2 || df <= 0 {
		return 1
	}
	v := math.Log(n/df) / math.Log(n)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
