// Package config resolves runtime settings from flags, the config file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/btraven00/pub2agents/internal/logger"
)

// EnvPrefix prefixes every environment variable, e.g. PUB2AGENTS_DB.
const EnvPrefix = "PUB2AGENTS"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings of a run.
type Config struct {
	DB        string
	IDF       string
	Lexicon   string
	OutputDir string
	Workers   int
	Stemming  bool
	LogLevel  string
	Addr      string

	AbstractMax int
	FulltextMax int
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", "pub2agents.db")
	v.SetDefault("idf", "tf.idf")
	v.SetDefault("lexicon", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("workers", 1)
	v.SetDefault("stemming", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("limits.abstract", 5000)
	v.SetDefault("limits.fulltext", 200000)
}

// Bind enables environment lookup on v. Nested keys map dots to
// underscores, so log.level is read from PUB2AGENTS_LOG_LEVEL.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		DB:          v.GetString("db"),
		IDF:         v.GetString("idf"),
		Lexicon:     v.GetString("lexicon"),
		OutputDir:   v.GetString("output_dir"),
		Workers:     v.GetInt("workers"),
		Stemming:    v.GetBool("stemming"),
		LogLevel:    v.GetString("log.level"),
		Addr:        v.GetString("server.addr"),
		AbstractMax: v.GetInt("limits.abstract"),
		FulltextMax: v.GetInt("limits.fulltext"),
	}
}

// Load builds a Config from defaults, environment and the optional config
// file at path.
func Load(path string) (*Config, error) {
	LoadDotenv()

	v := viper.New()
	SetDefaults(v)
	Bind(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotenv loads .env from the working directory or the closest parent
// that has one. Variables already set win over the file.
func LoadDotenv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.AbstractMax <= 0 {
		return fmt.Errorf("%w: limits.abstract must be positive, got %d", ErrInvalid, c.AbstractMax)
	}
	if c.FulltextMax <= 0 {
		return fmt.Errorf("%w: limits.fulltext must be positive, got %d", ErrInvalid, c.FulltextMax)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
