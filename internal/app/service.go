// Package app wires the guess-session engine: command dispatch, session
// lifecycle, and the per-channel concurrency discipline.
package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/sema/internal/adapters/similarity"
	"github.com/okian/sema/internal/adapters/store"
	"github.com/okian/sema/internal/domain/session"
	"github.com/okian/sema/internal/domain/words"
	"github.com/okian/sema/pkg/logger"
	"github.com/okian/sema/pkg/metrics"
)

// Actor credited with guesses produced by the hint command.
const hintActor = "hint"

// Service is the guess-session engine. One instance serves every
// channel; per-channel exclusion lives in the embedded coordinator.
type Service struct {
	store store.Store
	sim   similarity.Client
	words words.List

	locks channelLocks

	rngMu sync.Mutex
	rng   *rand.Rand

	defaultTopN int
	revealTopN  int
	maxTopN     int

	logger logger.Logger
}

// New constructs the engine around its three collaborators: the durable
// session store, the similarity service client, and the secret word list.
func New(st store.Store, sim similarity.Client, list words.List, opts ...Option) *Service {
	s := &Service{
		store:       st,
		sim:         sim,
		words:       list,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game word draw, not security
		defaultTopN: 10,
		revealTopN:  20,
		maxTopN:     100,
		logger:      nil, // resolved on first use
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("engine")
	}

	return s
}

// loadOrCreate returns the channel's session, creating and persisting a
// fresh one when none is stored. Callers must hold the channel's lock.
func (s *Service) loadOrCreate(ctx context.Context, channelID string) (*session.Session, error) {
	data, err := s.store.Get(ctx, channelID)
	if err == nil {
		return session.Unmarshal(data)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.createSession(ctx, channelID)
}

// createSession draws a target word, fetches its self-similarity record
// and story stats, and durably stores the new session.
func (s *Service) createSession(ctx context.Context, channelID string) (*session.Session, error) {
	target, err := s.chooseWord()
	if err != nil {
		return nil, err
	}

	result, err := s.sim.FetchResult(ctx, target, target)
	if err != nil {
		return nil, err
	}
	story, err := s.sim.FetchStory(ctx, target)
	if err != nil {
		return nil, err
	}

	sess := session.New(target, result.Vector, result.Percentile, session.StoryStats{
		Top:  story.Top,
		Rest: story.Rest,
	})
	if err := s.persist(ctx, channelID, sess); err != nil {
		return nil, err
	}

	metrics.RecordSessionCreated()
	metrics.UpdateSessionsActive(s.store.Count(ctx))
	s.logger.Debug(ctx, "session created",
		logger.String("channel", channelID),
		logger.String("target", target),
	)
	return sess, nil
}

// persist durably records the session. The caller's command is not done
// until this returns.
func (s *Service) persist(ctx context.Context, channelID string, sess *session.Session) error {
	data, err := session.Marshal(sess)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, channelID, data)
}

func (s *Service) chooseWord() (string, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return words.Choose(s.words, s.rng)
}

// Reset deletes the channel's session so the next inbound activity
// starts a fresh round.
func (s *Service) Reset(ctx context.Context, channelID string) error {
	unlock := s.locks.acquire(channelID)
	defer unlock()

	if err := s.store.Delete(ctx, channelID); err != nil {
		return err
	}
	metrics.UpdateSessionsActive(s.store.Count(ctx))
	return nil
}

// WithSession runs fn against the channel's session under the channel's
// exclusive scope and persists the result when fn succeeds. The scope is
// held across fn's whole read-fetch-merge-write sequence; when fn fails,
// the stored session keeps its pre-call value.
func (s *Service) WithSession(ctx context.Context, channelID string, fn func(*session.Session) error) error {
	unlock := s.locks.acquire(channelID)
	defer unlock()

	sess, err := s.loadOrCreate(ctx, channelID)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	return s.persist(ctx, channelID, sess)
}

// SessionCount reports the number of live sessions, for stats.
func (s *Service) SessionCount(ctx context.Context) int {
	return s.store.Count(ctx)
}
