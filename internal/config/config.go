package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

// Config represents the top-level application configuration.
type Config struct {
	Repair  RepairConfig  `toml:"repair"`
	Output  OutputConfig  `toml:"output"`
	Journal JournalConfig `toml:"journal"`
	Batch   BatchConfig   `toml:"batch"`
	Watch   WatchConfig   `toml:"watch"`
	Log     LogConfig     `toml:"log"`
}

// RepairConfig holds the heuristics handed to the repair engine.
type RepairConfig struct {
	SplitOrder     []string `toml:"split_order"`
	QuoteKeywords  []string `toml:"quote_keywords"`
	MinBlockLength int      `toml:"min_block_length"`
	HeaderLookback int      `toml:"header_lookback"`
	LineBreakToken string   `toml:"line_break_token"`
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format string `toml:"format"`
	Pretty bool   `toml:"pretty"`
}

// JournalConfig controls the SQLite repair journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// BatchConfig holds settings for multi-file repair.
type BatchConfig struct {
	Concurrency int `toml:"concurrency"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Extensions []string `toml:"extensions"`
}

// LogConfig selects the logger flavour and level.
type LogConfig struct {
	Mode  string `toml:"mode"`
	Level string `toml:"level"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	opts := mermaid.DefaultOptions()
	order := make([]string, len(opts.SplitOrder))
	for i, f := range opts.SplitOrder {
		order[i] = f.String()
	}
	return &Config{
		Repair: RepairConfig{
			SplitOrder:     order,
			QuoteKeywords:  opts.QuoteKeywords,
			MinBlockLength: opts.MinBlockLength,
			HeaderLookback: opts.HeaderLookback,
			LineBreakToken: opts.LineBreakToken,
		},
		Output: OutputConfig{
			Format: "markdown",
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Watch: WatchConfig{
			Extensions: []string{".md", ".mmd"},
		},
		Log: LogConfig{
			Mode:  "dev",
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/mermaidfix/config.toml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Dir returns the directory holding the config file and the journal.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "mermaidfix")
}

// Load reads the config at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if _, err := cfg.Repair.Options(); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Options converts the table into repair options. Unknown family names in
// split_order are an error.
func (c RepairConfig) Options() (mermaid.Options, error) {
	opts := mermaid.Options{
		QuoteKeywords:  c.QuoteKeywords,
		MinBlockLength: c.MinBlockLength,
		HeaderLookback: c.HeaderLookback,
		LineBreakToken: c.LineBreakToken,
	}
	for _, name := range c.SplitOrder {
		f, err := mermaid.ParseFamily(name)
		if err != nil {
			return mermaid.Options{}, fmt.Errorf("repair.split_order: %w", err)
		}
		opts.SplitOrder = append(opts.SplitOrder, f)
	}
	return opts, nil
}

// JournalPath returns the configured journal path or the default one.
func (c JournalConfig) JournalPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(Dir(), "journal.db")
}
