package session_test

import (
	"testing"

	"github.com/okian/sema/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func intp(v int) *int { return &v }

func newKiteSession() *session.Session {
	return session.New("kite", []float64{1, 0, 0}, intp(1000), session.StoryStats{Top: 1.0, Rest: 0.3})
}

func TestSessionModel(t *testing.T) {
	Convey("Given a fresh session for target kite", t, func() {
		s := newKiteSession()

		Convey("Then the target's own record is seeded", func() {
			So(s.IsGuessed("kite"), ShouldBeTrue)
			rec := s.Record("kite")
			So(rec.Similarity, ShouldEqual, 1.0)
			So(*rec.Percentile, ShouldEqual, 1000)
			So(rec.Attributed(), ShouldBeFalse)
		})

		Convey("When a new word is guessed", func() {
			rec, err := s.AddGuess("string", []float64{1, 1, 0}, intp(920))
			So(err, ShouldBeNil)

			Convey("Then its similarity is the cosine against the target vector", func() {
				So(rec.Similarity, ShouldAlmostEqual, 0.7071067811865475, 1e-12)
				So(*rec.Percentile, ShouldEqual, 920)
			})

			Convey("And guessing it again never recomputes", func() {
				again, err := s.AddGuess("string", []float64{0, 0, 1}, intp(5))
				So(err, ShouldBeNil)
				So(again, ShouldEqual, rec)
				So(again.Similarity, ShouldAlmostEqual, 0.7071067811865475, 1e-12)
				So(*again.Percentile, ShouldEqual, 920)
			})
		})

		Convey("When a guess vector is unusable", func() {
			_, err := s.AddGuess("void", []float64{0, 0, 0}, nil)
			So(err, ShouldNotBeNil)
			So(s.IsGuessed("void"), ShouldBeFalse)
		})

		Convey("When attributing a guess", func() {
			_, err := s.AddGuess("string", []float64{1, 1, 0}, nil)
			So(err, ShouldBeNil)

			s.MaybeAttribute("string", "alice")
			So(*s.Record("string").By, ShouldEqual, "alice")

			Convey("Then the first writer wins", func() {
				s.MaybeAttribute("string", "bob")
				So(*s.Record("string").By, ShouldEqual, "alice")
			})
		})

		Convey("When checking for a win", func() {
			So(s.IsWin("kite"), ShouldBeTrue)
			So(s.IsWin("string"), ShouldBeFalse)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	Convey("Given a session with attributed and unattributed guesses", t, func() {
		s := newKiteSession()

		_, err := s.AddGuess("string", []float64{0.6, 0.8, 0}, intp(900))
		So(err, ShouldBeNil)
		_, err = s.AddGuess("banana", []float64{0.1, 0.99, 0}, nil)
		So(err, ShouldBeNil)
		_, err = s.AddGuess("ghost", []float64{0.5, 0.5, 0}, nil)
		So(err, ShouldBeNil)

		s.MaybeAttribute("kite", "alice")
		s.MaybeAttribute("string", "bob")
		s.MaybeAttribute("banana", "carol")
		// ghost stays unattributed

		board := s.Leaderboard()

		Convey("Then only attributed records appear, best first", func() {
			So(len(board), ShouldEqual, 3)
			So(board[0].Word, ShouldEqual, "kite")
			So(board[1].Word, ShouldEqual, "string")
			So(board[2].Word, ShouldEqual, "banana")
		})

		Convey("Then similarity is non-increasing across the sequence", func() {
			for i := 1; i < len(board); i++ {
				So(board[i].Similarity, ShouldBeLessThanOrEqualTo, board[i-1].Similarity)
				So(board[i].Attributed(), ShouldBeTrue)
			}
		})

		Convey("When two guesses tie on similarity", func() {
			_, err := s.AddGuess("zebra", []float64{0.6, 0.8, 0}, nil)
			So(err, ShouldBeNil)
			s.MaybeAttribute("zebra", "dave")

			Convey("Then ties break by ascending word", func() {
				board := s.Leaderboard()
				So(board[1].Word, ShouldEqual, "string")
				So(board[2].Word, ShouldEqual, "zebra")
			})
		})
	})
}

func TestNextHintRank(t *testing.T) {
	Convey("Given the hint narrowing strategy", t, func() {
		Convey("When there are no attributed guesses", func() {
			s := newKiteSession()
			So(s.NextHintRank(), ShouldEqual, 1)
		})

		Convey("When the best guess has no percentile rank", func() {
			s := newKiteSession()
			_, err := s.AddGuess("banana", []float64{0.9, 0.1, 0}, nil)
			So(err, ShouldBeNil)
			s.MaybeAttribute("banana", "alice")

			So(s.NextHintRank(), ShouldEqual, 1)
		})

		Convey("When the best guess is ranked below 999", func() {
			s := newKiteSession()
			_, err := s.AddGuess("string", []float64{0.8, 0.6, 0}, intp(920))
			So(err, ShouldBeNil)
			s.MaybeAttribute("string", "alice")

			Convey("Then the next rank is the midpoint toward 1000", func() {
				So(s.NextHintRank(), ShouldEqual, 960)
			})

			Convey("And repeated hints halve the remaining distance", func() {
				_, err := s.AddGuess("cord", []float64{0.85, 0.52, 0}, intp(960))
				So(err, ShouldBeNil)
				s.MaybeAttribute("cord", "hint")
				So(s.NextHintRank(), ShouldEqual, 980)
			})
		})

		Convey("When the best guess is already near-maximal", func() {
			s := newKiteSession()
			add := func(word string, sim float64, rank int) {
				_, err := s.AddGuess(word, []float64{sim, 1 - sim, 0}, intp(rank))
				So(err, ShouldBeNil)
				s.MaybeAttribute(word, "hint")
			}

			Convey("And only one guess holds rank 999", func() {
				add("cordage", 0.99, 999)
				So(s.NextHintRank(), ShouldEqual, 998)
			})

			Convey("And a contiguous run of ranks is revealed", func() {
				add("cordage", 0.99, 999)
				add("twine", 0.98, 998)
				add("thread", 0.97, 997)

				Convey("Then the scan walks past the run", func() {
					rank := s.NextHintRank()
					So(rank, ShouldEqual, 996)

					for _, g := range s.Leaderboard() {
						if g.Percentile != nil {
							So(rank, ShouldNotEqual, *g.Percentile)
						}
					}
				})
			})

			Convey("And the revealed ranks have a gap", func() {
				add("cordage", 0.99, 999)
				add("twine", 0.98, 998)
				add("ribbon", 0.90, 950)

				Convey("Then the scan stops at the gap", func() {
					So(s.NextHintRank(), ShouldEqual, 997)
				})
			})

			Convey("And an unranked guess interrupts the scan", func() {
				add("cordage", 0.99, 999)
				_, err := s.AddGuess("banana", []float64{0.95, 0.05, 0}, nil)
				So(err, ShouldBeNil)
				s.MaybeAttribute("banana", "alice")

				Convey("Then the candidate from before the break is kept", func() {
					So(s.NextHintRank(), ShouldEqual, 998)
				})
			})
		})
	})
}

func TestCodec(t *testing.T) {
	Convey("Given a populated session", t, func() {
		s := newKiteSession()
		_, err := s.AddGuess("string", []float64{0.6, 0.8, 0}, intp(900))
		So(err, ShouldBeNil)
		s.MaybeAttribute("string", "bob")

		Convey("When it round-trips through the store codec", func() {
			data, err := session.Marshal(s)
			So(err, ShouldBeNil)

			restored, err := session.Unmarshal(data)
			So(err, ShouldBeNil)

			Convey("Then the game state survives intact", func() {
				So(restored.Target, ShouldEqual, "kite")
				So(restored.Story.Rest, ShouldEqual, 0.3)
				So(len(restored.Guesses), ShouldEqual, 2)

				rec := restored.Record("string")
				So(rec.Similarity, ShouldAlmostEqual, s.Record("string").Similarity, 1e-12)
				So(*rec.Percentile, ShouldEqual, 900)
				So(*rec.By, ShouldEqual, "bob")
				So(restored.Record("kite").Attributed(), ShouldBeFalse)
			})
		})
	})
}
