package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DB != "pub2agents.db" || cfg.IDF != "tf.idf" || cfg.OutputDir != "." {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if cfg.Workers != 1 || cfg.Stemming {
		t.Errorf("unexpected worker settings: %+v", cfg)
	}
	if cfg.AbstractMax != 5000 || cfg.FulltextMax != 200000 {
		t.Errorf("unexpected limits: %d %d", cfg.AbstractMax, cfg.FulltextMax)
	}
	if cfg.Addr != ":8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server settings: %+v", cfg)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PUB2AGENTS_DB", "other.db")
	t.Setenv("PUB2AGENTS_WORKERS", "4")
	t.Setenv("PUB2AGENTS_LOG_LEVEL", "debug")
	t.Setenv("PUB2AGENTS_LIMITS_ABSTRACT", "100")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DB != "other.db" || cfg.Workers != 4 || cfg.LogLevel != "debug" || cfg.AbstractMax != 100 {
		t.Errorf("environment not applied: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "idf: corpus.idf\nserver:\n  addr: \":9000\"\nlimits:\n  fulltext: 1000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.IDF != "corpus.idf" || cfg.Addr != ":9000" || cfg.FulltextMax != 1000 {
		t.Errorf("file not applied: %+v", cfg)
	}
	if cfg.AbstractMax != 5000 {
		t.Errorf("default lost: AbstractMax = %d", cfg.AbstractMax)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Workers: 1, AbstractMax: 1, FulltextMax: 1, Addr: ":8080", LogLevel: "info"}

	testCases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative abstract limit", func(c *Config) { c.AbstractMax = -1 }},
		{"zero fulltext limit", func(c *Config) { c.FulltextMax = 0 }},
		{"empty address", func(c *Config) { c.Addr = " " }},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}
