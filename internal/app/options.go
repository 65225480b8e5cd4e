package app

import (
	"math/rand"

	"github.com/okian/sema/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRandomSeed pins the target word draw for reproducible runs.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game word draw, not security
		}
	}
}

// WithDefaultTopN sets the leaderboard size when `top` gives no count.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithRevealTopN sets the leaderboard size shown when a round ends.
func WithRevealTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.revealTopN = n
		}
	}
}

// WithMaxTopN caps any requested leaderboard size.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}
