// Package lexicon loads the word lists used by pass1 from TOML.
package lexicon

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/btraven00/pub2agents/internal/pass1"
)

//go:embed default.toml
var defaultTables string

// Tables holds every word list. Lists missing from an override file keep
// their default contents.
type Tables struct {
	HostIgnore  []string `toml:"host_ignore"`
	BeforeTier1 []string `toml:"before_tier1"`
	BeforeTier2 []string `toml:"before_tier2"`
	BeforeTier3 []string `toml:"before_tier3"`
	AfterTier1  []string `toml:"after_tier1"`
	AfterTier2  []string `toml:"after_tier2"`
	AfterTier3  []string `toml:"after_tier3"`
	StopWords   []string `toml:"stop_words"`
}

// Default returns the embedded tables.
func Default() (*Tables, error) {
	var t Tables
	if _, err := toml.Decode(defaultTables, &t); err != nil {
		return nil, fmt.Errorf("failed to decode embedded lexicon: %w", err)
	}
	return &t, nil
}

// Load returns the embedded tables overlaid with the lists found in path.
// An empty path yields the defaults.
func Load(path string) (*Tables, error) {
	t, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, t); err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", path, err)
	}
	return t, nil
}

// Lexicon converts the tables into the form the engine consumes.
func (t *Tables) Lexicon() pass1.Lexicon {
	return pass1.Lexicon{
		HostIgnore:  t.HostIgnore,
		BeforeTier1: t.BeforeTier1,
		BeforeTier2: t.BeforeTier2,
		BeforeTier3: t.BeforeTier3,
		AfterTier1:  t.AfterTier1,
		AfterTier2:  t.AfterTier2,
		AfterTier3:  t.AfterTier3,
	}
}

// Sizes reports the number of entries per list, keyed by TOML name.
func (t *Tables) Sizes() map[string]int {
	return map[string]int{
		"host_ignore":  len(t.HostIgnore),
		"before_tier1": len(t.BeforeTier1),
		"before_tier2": len(t.BeforeTier2),
		"before_tier3": len(t.BeforeTier3),
		"after_tier1":  len(t.AfterTier1),
		"after_tier2":  len(t.AfterTier2),
		"after_tier3":  len(t.AfterTier3),
		"stop_words":   len(t.StopWords),
	}
}
