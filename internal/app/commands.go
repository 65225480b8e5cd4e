package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/sema/internal/adapters/similarity"
	"github.com/okian/sema/internal/domain/render"
	"github.com/okian/sema/internal/domain/session"
	"github.com/okian/sema/internal/domain/vectormath"
	"github.com/okian/sema/pkg/logger"
	"github.com/okian/sema/pkg/metrics"
)

// command names, also used as metric labels.
const (
	cmdNone  = "none"
	cmdNew   = "new-game"
	cmdGuess = "guess"
	cmdHint  = "hint"
	cmdTop   = "top"
)

// Guesses are reduced to letters before scoring, as the similarity
// service only knows plain words.
var nonAlpha = regexp.MustCompile("[^a-zA-Z]")

// Handle dispatches one inbound chat message for a channel and returns
// the outbound text blocks. Every error is translated here, at the
// command boundary, into a single user-visible line; the session and the
// store stay consistent regardless.
func (s *Service) Handle(ctx context.Context, channelID, author, text string) []string {
	cmd, arg := parse(text)

	var (
		replies []string
		err     error
	)
	switch cmd {
	case cmdNew:
		replies, err = s.newGame(ctx, channelID)
	case cmdGuess:
		if arg == "" {
			cmd = cmdNone
			err = s.ensureSession(ctx, channelID)
			break
		}
		replies, err = s.guess(ctx, channelID, author, arg)
	case cmdHint:
		replies, err = s.hint(ctx, channelID)
	case cmdTop:
		replies, err = s.top(ctx, channelID, arg)
	default:
		// Any activity in a game channel starts a round.
		err = s.ensureSession(ctx, channelID)
	}

	if err != nil {
		return s.translate(ctx, cmd, arg, err)
	}
	metrics.RecordCommand(cmd, "ok")
	return replies
}

// ensureSession creates the channel's session if none exists yet.
func (s *Service) ensureSession(ctx context.Context, channelID string) error {
	unlock := s.locks.acquire(channelID)
	defer unlock()

	_, err := s.loadOrCreate(ctx, channelID)
	return err
}

// newGame reveals the finished round's leaderboard and target, then
// discards the session; the next inbound activity draws a fresh word.
func (s *Service) newGame(ctx context.Context, channelID string) ([]string, error) {
	unlock := s.locks.acquire(channelID)
	defer unlock()

	sess, err := s.loadOrCreate(ctx, channelID)
	if err != nil {
		return nil, err
	}

	replies := []string{
		render.Top(sess.Leaderboard(), sess.Story, s.revealTopN),
		fmt.Sprintf("old word was %s. choosing a new word", sess.Target),
	}

	if err := s.store.Delete(ctx, channelID); err != nil {
		return nil, err
	}
	metrics.UpdateSessionsActive(s.store.Count(ctx))
	return replies, nil
}

// guess scores one player guess. The channel scope is held across the
// whole read-fetch-merge-write sequence, so concurrent guesses for one
// channel cannot lose updates.
func (s *Service) guess(ctx context.Context, channelID, author, word string) ([]string, error) {
	var replies []string
	err := s.WithSession(ctx, channelID, func(sess *session.Session) error {
		rec, err := s.applyGuess(ctx, sess, word, author)
		if err != nil {
			return err
		}
		replies = append(replies, "```"+render.Guess(rec, sess.Story)+" ```")
		if sess.IsWin(word) {
			replies = append(replies, render.Win(rec, sess.Target))
			metrics.RecordWin()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// hint asks the service for the word at the session's next narrowing
// rank and plays it through the normal guess path as the hint actor.
func (s *Service) hint(ctx context.Context, channelID string) ([]string, error) {
	unlock := s.locks.acquire(channelID)
	defer unlock()

	sess, err := s.loadOrCreate(ctx, channelID)
	if err != nil {
		return nil, err
	}

	rank := sess.NextHintRank()
	word, err := s.sim.FetchNthNearby(ctx, sess.Target, rank)
	if err != nil {
		return nil, err
	}

	rec, err := s.applyGuess(ctx, sess, word, hintActor)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, channelID, sess); err != nil {
		return nil, err
	}

	metrics.RecordHintServed()
	s.logger.Debug(ctx, "hint served",
		logger.String("channel", channelID),
		logger.Int("rank", rank),
	)

	replies := []string{"```" + render.Guess(rec, sess.Story) + " ```"}
	if sess.IsWin(word) {
		replies = append(replies, render.Win(rec, sess.Target))
	}
	return replies, nil
}

// top renders the current leaderboard prefix.
func (s *Service) top(ctx context.Context, channelID, arg string) ([]string, error) {
	n := s.defaultTopN
	if v, err := strconv.Atoi(arg); err == nil && v > 0 {
		n = v
	}
	if n > s.maxTopN {
		n = s.maxTopN
	}

	unlock := s.locks.acquire(channelID)
	defer unlock()

	sess, err := s.loadOrCreate(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return []string{render.Top(sess.Leaderboard(), sess.Story, n)}, nil
}

// applyGuess is the session-model guess application: first guess of a
// word fetches and scores it once; duplicates reuse the cached record;
// attribution goes to the first claiming actor. Callers hold the
// channel's lock and persist afterwards.
func (s *Service) applyGuess(ctx context.Context, sess *session.Session, word, actor string) (*session.GuessRecord, error) {
	if sess.IsGuessed(word) {
		metrics.RecordGuessDuplicate()
	} else {
		result, err := s.sim.FetchResult(ctx, sess.Target, word)
		if err != nil {
			return nil, err
		}
		if _, err := sess.AddGuess(word, result.Vector, result.Percentile); err != nil {
			return nil, err
		}
		metrics.RecordGuessProcessed()
	}

	sess.MaybeAttribute(word, actor)
	return sess.Record(word), nil
}

// translate maps an engine error to the one line players see.
func (s *Service) translate(ctx context.Context, cmd, word string, err error) []string {
	switch {
	case errors.Is(err, similarity.ErrInvalidGuess):
		metrics.RecordCommand(cmd, "invalid")
		return []string{fmt.Sprintf("%s is invalid", word)}
	case errors.Is(err, similarity.ErrLookup):
		metrics.RecordCommand(cmd, "lookup_failed")
		s.logger.Warn(ctx, "similarity lookup failed", logger.Error(err))
		return []string{"the similarity service is not answering, try again"}
	case errors.Is(err, vectormath.ErrZeroVector), errors.Is(err, vectormath.ErrLengthMismatch):
		metrics.RecordCommand(cmd, "bad_data")
		s.logger.Error(ctx, "similarity service returned bad vector data", logger.Error(err))
		return []string{"the similarity service returned unusable data, try again"}
	default:
		metrics.RecordCommand(cmd, "error")
		s.logger.Error(ctx, "command failed", logger.String("command", cmd), logger.Error(err))
		return []string{"something went wrong, try again"}
	}
}

// parse resolves the platform-agnostic command surface. Both the plain
// spellings (new-game, guess w, hint, top n) and the historical chat
// spellings (!new, !guess w, $w, !hint, !top n) are accepted.
func parse(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return cmdNone, ""
	}

	switch fields[0] {
	case "new-game", "!new":
		return cmdNew, ""
	case "guess", "!guess":
		if len(fields) < 2 {
			return cmdGuess, ""
		}
		return cmdGuess, nonAlpha.ReplaceAllString(fields[1], "")
	case "hint", "!hint":
		return cmdHint, ""
	case "top", "!top":
		if len(fields) < 2 {
			return cmdTop, ""
		}
		return cmdTop, fields[1]
	}

	if strings.HasPrefix(text, "$") {
		return cmdGuess, nonAlpha.ReplaceAllString(text[1:], "")
	}

	return cmdNone, ""
}
