// Package session models the live game state for one chat channel: the
// secret target word, every distinct guess ever scored, attribution, the
// leaderboard ordering, and the hint narrowing strategy.
package session

import (
	"fmt"
	"sort"

	"github.com/okian/sema/internal/domain/vectormath"
)

// Percentile ranks run 1..1000. Rank 1000 is the target itself and rank
// 1 the farthest neighbor the service still bothers to rank; anything
// unranked is colder than rank 1.
const (
	maxRank     = 1000
	nearMaxRank = 999
	minRank     = 1
	selfSimilar = 1.0
)

// StoryStats holds the reference similarity bounds for a target word,
// used to rescale raw cosine similarity into a display score.
type StoryStats struct {
	Top  float64 `msgpack:"top" json:"top"`
	Rest float64 `msgpack:"rest" json:"rest"`
}

// GuessRecord is the cached result for one distinct guessed word.
// Vector, Similarity and Percentile are write-once: computed when the
// word is first scored and never recomputed for duplicate guesses.
type GuessRecord struct {
	Word       string    `msgpack:"word" json:"word"`
	Vector     []float64 `msgpack:"vector" json:"vector"`
	Similarity float64   `msgpack:"similarity" json:"similarity"`
	Percentile *int      `msgpack:"percentile,omitempty" json:"percentile,omitempty"`
	By         *string   `msgpack:"by,omitempty" json:"by,omitempty"`
}

// Attributed reports whether any actor has claimed this guess.
func (g *GuessRecord) Attributed() bool { return g.By != nil }

// Session is the game state for one channel. Target and Story are set at
// creation and immutable for the session's lifetime; Guesses is mutated
// only through AddGuess and MaybeAttribute.
type Session struct {
	Target  string                  `msgpack:"target" json:"target"`
	Story   StoryStats              `msgpack:"story" json:"story"`
	Guesses map[string]*GuessRecord `msgpack:"guesses" json:"guesses"`
}

// New creates a session for target. The target's own record is seeded
// with self-similarity rather than recomputed, so guessing the target
// always ranks first. Its percentile comes straight from the service's
// self-lookup.
func New(target string, targetVector []float64, percentile *int, story StoryStats) *Session {
	return &Session{
		Target: target,
		Story:  story,
		Guesses: map[string]*GuessRecord{
			target: {
				Word:       target,
				Vector:     targetVector,
				Similarity: selfSimilar,
				Percentile: percentile,
			},
		},
	}
}

// IsGuessed reports whether word already has a scored record.
func (s *Session) IsGuessed(word string) bool {
	_, ok := s.Guesses[word]
	return ok
}

// IsWin reports whether word is the session's target.
func (s *Session) IsWin(word string) bool { return s.Target == word }

// Record returns the cached record for word, or nil.
func (s *Session) Record(word string) *GuessRecord {
	return s.Guesses[word]
}

// AddGuess scores a brand-new word against the target vector and inserts
// its record. If word was already scored the cached record is returned
// untouched; the similarity is never recomputed and the vector never
// replaced.
func (s *Session) AddGuess(word string, vector []float64, percentile *int) (*GuessRecord, error) {
	if rec, ok := s.Guesses[word]; ok {
		return rec, nil
	}

	target := s.Guesses[s.Target]
	sim, err := vectormath.Cosine(target.Vector, vector)
	if err != nil {
		return nil, fmt.Errorf("score %q: %w", word, err)
	}

	rec := &GuessRecord{
		Word:       word,
		Vector:     vector,
		Similarity: sim,
		Percentile: percentile,
	}
	s.Guesses[word] = rec
	return rec, nil
}

// MaybeAttribute credits actor with word if nobody claimed it yet.
// First writer wins; later duplicate guesses never steal attribution.
func (s *Session) MaybeAttribute(word, actor string) {
	rec, ok := s.Guesses[word]
	if !ok || rec.By != nil {
		return
	}
	by := actor
	rec.By = &by
}

// Leaderboard returns every attributed record ordered by descending
// similarity. Ties are broken by ascending word so the ordering is
// deterministic.
func (s *Session) Leaderboard() []*GuessRecord {
	recs := make([]*GuessRecord, 0, len(s.Guesses))
	for _, rec := range s.Guesses {
		if rec.Attributed() {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Similarity != recs[j].Similarity {
			return recs[i].Similarity > recs[j].Similarity
		}
		return recs[i].Word < recs[j].Word
	})
	return recs
}

// NextHintRank decides which percentile rank to request for the next
// hint, narrowing toward the target:
//
//   - no ranked best guess yet: start at the far end of the ranked
//     neighborhood;
//   - best guess already at rank 999 or 1000: walk down the run of
//     revealed near-neighbors and return the first rank nobody holds,
//     so a hint never repeats a rank the players already have;
//   - otherwise: the midpoint between the best rank and 1000, halving
//     the remaining distance on every hint.
func (s *Session) NextHintRank() int {
	top := s.Leaderboard()

	if len(top) == 0 || top[0].Percentile == nil {
		return minRank
	}

	best := *top[0].Percentile
	if best >= nearMaxRank {
		n := best - 1
		for _, g := range top[1:] {
			if g.Percentile == nil {
				break
			}
			if n > *g.Percentile {
				break
			}
			n = *g.Percentile - 1
		}
		return n
	}

	return (maxRank + best) / 2
}
