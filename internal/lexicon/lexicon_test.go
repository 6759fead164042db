package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	for name, size := range tables.Sizes() {
		if size == 0 {
			t.Errorf("default list %s is empty", name)
		}
	}
}

func TestTriggerWordsAreNotStopWords(t *testing.T) {
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	stop := make(map[string]bool)
	for _, w := range tables.StopWords {
		stop[w] = true
	}
	lists := [][]string{
		tables.BeforeTier1, tables.BeforeTier2, tables.BeforeTier3,
		tables.AfterTier1, tables.AfterTier2, tables.AfterTier3,
	}
	for _, list := range lists {
		for _, w := range list {
			if stop[w] {
				t.Errorf("trigger word %q is also a stop word", w)
			}
		}
	}
}

func TestLoadOverridesOnlyGivenLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.toml")
	if err := os.WriteFile(path, []byte(`before_tier1 = ["baptised"]`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tables.BeforeTier1) != 1 || tables.BeforeTier1[0] != "baptised" {
		t.Errorf("BeforeTier1 = %v, want [baptised]", tables.BeforeTier1)
	}

	defaults, _ := Default()
	if len(tables.AfterTier1) != len(defaults.AfterTier1) {
		t.Errorf("AfterTier1 changed: got %d entries, want %d", len(tables.AfterTier1), len(defaults.AfterTier1))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLexiconConversion(t *testing.T) {
	tables := &Tables{HostIgnore: []string{"github"}, AfterTier1: []string{"tool"}}
	lex := tables.Lexicon()
	if len(lex.HostIgnore) != 1 || lex.AfterTier1[0] != "tool" {
		t.Errorf("unexpected lexicon %+v", lex)
	}
}
