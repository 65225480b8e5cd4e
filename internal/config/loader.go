package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SEMA_CONFIG is set
//  3. env (prefix SEMA_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SEMA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SEMA_ADDR, SEMA_WORD_LIST_PATH, ...
	// Keys map like SEMA_LOOKUP_TIMEOUT_MS -> lookup_timeout_ms, matching
	// the koanf tags on the struct.
	envProvider := env.Provider("SEMA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "sema_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SimilarityBaseURL == "":
		return fmt.Errorf("%w: similarity_base_url must not be empty", ErrInvalidConfig)
	case c.LookupTimeoutMS <= 0:
		return fmt.Errorf("%w: lookup_timeout_ms must be positive", ErrInvalidConfig)
	case c.DefaultTopN <= 0 || c.RevealTopN <= 0:
		return fmt.Errorf("%w: leaderboard sizes must be positive", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must not be below default_top_n", ErrInvalidConfig)
	}
	return nil
}
