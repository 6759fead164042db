// Package idf stores inverse document frequencies of processed tokens. The
// table lives in a patricia trie and is persisted as msgpack or as plain
// token<TAB>idf text.
package idf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
	"github.com/vmihailenco/msgpack/v5"
)

const formatVersion = 1

// Entry is one token with its IDF.
type Entry struct {
	Token string  `msgpack:"t" json:"token"`
	IDF   float64 `msgpack:"i" json:"idf"`
}

type file struct {
	Version   int     `msgpack:"version"`
	Documents int     `msgpack:"documents"`
	Entries   []Entry `msgpack:"entries"`
}

// Table maps processed tokens to IDF values in [0,1]. Tokens never seen are
// treated as maximally rare. A Table is read-only once loaded and safe for
// concurrent Get.
type Table struct {
	trie      *patricia.Trie
	size      int
	documents int
}

// New creates an empty table.
func New() *Table {
	return &Table{trie: patricia.NewTrie()}
}

// Set stores the IDF of token.
func (t *Table) Set(token string, idf float64) {
	if token == "" {
		return
	}
	if t.trie.Set(patricia.Prefix(token), idf) {
		return
	}
	t.size++
}

// Get returns the IDF of token, or 1 when the token is unknown.
func (t *Table) Get(token string) float64 {
	if item := t.trie.Get(patricia.Prefix(token)); item != nil {
		if v, ok := item.(float64); ok {
			return v
		}
	}
	return 1
}

// Has reports whether token is in the table.
func (t *Table) Has(token string) bool {
	return t.trie.Get(patricia.Prefix(token)) != nil
}

// Len is the number of tokens.
func (t *Table) Len() int {
	return t.size
}

// Documents is the corpus size the table was built from, if known.
func (t *Table) Documents() int {
	return t.documents
}

// Prefix lists up to limit tokens starting with prefix in lexical order. A
// non-positive limit lists all of them.
func (t *Table) Prefix(prefix string, limit int) []Entry {
	var entries []Entry
	_ = t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if v, ok := item.(float64); ok {
			entries = append(entries, Entry{Token: string(p), IDF: v})
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Token < entries[j].Token
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Entries lists the whole table in lexical order.
func (t *Table) Entries() []Entry {
	return t.Prefix("", 0)
}

// Write encodes the table as msgpack.
func (t *Table) Write(w io.Writer) error {
	f := file{
		Version:   formatVersion,
		Documents: t.documents,
		Entries:   t.Entries(),
	}
	if err := msgpack.NewEncoder(w).Encode(&f); err != nil {
		return fmt.Errorf("failed to encode idf table: %w", err)
	}
	return nil
}

// Read decodes a msgpack table.
func Read(r io.Reader) (*Table, error) {
	var f file
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode idf table: %w", err)
	}
	if f.Version != formatVersion {
		return nil, fmt.Errorf("unsupported idf table version %d", f.Version)
	}
	t := New()
	t.documents = f.Documents
	for _, e := range f.Entries {
		t.Set(e.Token, e.IDF)
	}
	return t, nil
}

// WriteTSV writes one token<TAB>idf line per token.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range t.Entries() {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", e.Token, strconv.FormatFloat(e.IDF, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTSV reads token<TAB>idf lines. Blank lines and # comments are skipped.
func ReadTSV(r io.Reader) (*Table, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: expected token and idf separated by a tab", lineNum)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid idf %q: %w", lineNum, parts[1], err)
		}
		t.Set(strings.TrimSpace(parts[0]), v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading idf file: %w", err)
	}
	return t, nil
}

func isText(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt", ".idf":
		return true
	}
	return false
}

// Load reads a table from path. Files ending in .tsv, .txt or .idf are read
// as text, anything else as msgpack.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open idf table: %w", err)
	}
	defer f.Close()

	if isText(path) {
		return ReadTSV(bufio.NewReader(f))
	}
	return Read(bufio.NewReader(f))
}

// Save writes the table to path in the format its extension selects.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create idf table: %w", err)
	}
	if isText(path) {
		err = t.WriteTSV(f)
	} else {
		err = t.Write(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
