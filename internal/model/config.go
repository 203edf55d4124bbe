package model

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Concordance rule names
const (
	ConcordanceStrict  = "strict"  // mismatch if either side has an unexplained extra value
	ConcordanceLenient = "lenient" // mismatch only if both sides do
)

// Config is the complete corefsieve configuration
type Config struct {
	Dictionary   DictionaryConfig   `yaml:"dictionary" mapstructure:"dictionary"`
	Sieves       SievesConfig       `yaml:"sieves" mapstructure:"sieves"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// DictionaryConfig selects the word lists
type DictionaryConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // YAML or TOML file; empty uses the built-in English lists
}

// SievesConfig controls the matching passes
type SievesConfig struct {
	Enabled     []string `yaml:"enabled" mapstructure:"enabled"`         // Subset of sieves to run; execution order is fixed
	Concordance string   `yaml:"concordance" mapstructure:"concordance"` // strict or lenient
}

// CacheConfig controls the report cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles batch throughput per input directory
type RateLimitingConfig struct {
	DocumentsPerSecond float64 `yaml:"documents_per_second" mapstructure:"documents_per_second"` // 0 disables
	BurstSize          int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose        bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter  bool `yaml:"include_footer" mapstructure:"include_footer"`
	ShowSingletons bool `yaml:"show_singletons" mapstructure:"show_singletons"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	enabled := make([]string, len(SievePriority))
	for i, k := range SievePriority {
		enabled[i] = string(k)
	}

	return &Config{
		Sieves: SievesConfig{
			Enabled:     enabled,
			Concordance: ConcordanceStrict,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		RateLimiting: RateLimitingConfig{
			DocumentsPerSecond: 0,
			BurstSize:          10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks option values that cannot be caught by decoding
func (c *Config) Validate() error {
	if len(c.Sieves.Enabled) == 0 {
		return fmt.Errorf("sieves.enabled: at least one sieve is required")
	}
	for _, name := range c.Sieves.Enabled {
		if _, err := ParseSieveKind(name); err != nil {
			return fmt.Errorf("sieves.enabled: %w", err)
		}
	}
	switch c.Sieves.Concordance {
	case ConcordanceStrict, ConcordanceLenient:
	default:
		return fmt.Errorf("sieves.concordance: must be %q or %q, got %q",
			ConcordanceStrict, ConcordanceLenient, c.Sieves.Concordance)
	}
	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("concurrency.workers: must not be negative")
	}
	if c.RateLimiting.DocumentsPerSecond < 0 {
		return fmt.Errorf("rate_limiting.documents_per_second: must not be negative")
	}
	return nil
}

// Fingerprint identifies the options that change resolution output.
// Enabled sieves are listed in priority order, since that is the order
// they run in. The dictionary is identified by dictDigest, the hash of
// its contents, so edits to a dictionary file invalidate cached reports.
func (c *Config) Fingerprint(dictDigest string) string {
	var enabled []string
	for _, k := range SievePriority {
		for _, name := range c.Sieves.Enabled {
			if name == string(k) {
				enabled = append(enabled, name)
				break
			}
		}
	}
	return fmt.Sprintf("dict_sha256=%s;sieves=%v;concordance=%s",
		dictDigest, enabled, c.Sieves.Concordance)
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".corefsieve-cache"
	}
	return filepath.Join(dir, "corefsieve")
}
