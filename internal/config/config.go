// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// SimilarityBaseURL points at the external word-similarity service.
	SimilarityBaseURL string `koanf:"similarity_base_url"`

	// LookupTimeoutMS bounds each similarity service request.
	LookupTimeoutMS int `koanf:"lookup_timeout_ms"`

	// WordListPath locates the JSON file of secret words.
	WordListPath string `koanf:"word_list_path"`

	// DBPath locates the SQLite session database. Empty selects the
	// in-memory store (sessions do not survive restarts).
	DBPath string `koanf:"db_path"`

	// DefaultTopN is the leaderboard size when `top` gives no count.
	DefaultTopN int `koanf:"default_top_n"`

	// RevealTopN is the leaderboard size shown when a round ends.
	RevealTopN int `koanf:"reveal_top_n"`

	// MaxTopN caps any requested leaderboard size.
	MaxTopN int `koanf:"max_top_n"`

	// RateLimitRPS and RateLimitBurst bound commands per channel.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// RandomSeed fixes the word draw for reproducible runs. Zero seeds
	// from the clock.
	RandomSeed int64 `koanf:"random_seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		SimilarityBaseURL: "http://semantle.com",
		LookupTimeoutMS:   5_000,
		WordListPath:      "secretwords.json",
		DBPath:            "data/sema.db",
		DefaultTopN:       10,
		RevealTopN:        20,
		MaxTopN:           100,
		RateLimitRPS:      5,
		RateLimitBurst:    10,
		RandomSeed:        0,
	}
}
