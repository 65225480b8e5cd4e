package render_test

import (
	"strings"
	"testing"

	"github.com/okian/sema/internal/domain/render"
	"github.com/okian/sema/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func intp(v int) *int       { return &v }
func strp(s string) *string { return &s }

func TestScore(t *testing.T) {
	Convey("Given story bounds rest=0.5 top=0.9", t, func() {
		story := session.StoryStats{Top: 0.9, Rest: 0.5}

		Convey("Then a raw similarity of 0.7 reads as 55.0", func() {
			So(render.Score(0.7, story), ShouldEqual, 55.0)
		})

		Convey("Then the target itself reads as 90", func() {
			So(render.Score(0.9, story), ShouldEqual, 90.0)
		})

		Convey("Then similarity at rest reads as 20", func() {
			So(render.Score(0.5, story), ShouldEqual, 20.0)
		})

		Convey("Then similarity below rest reads colder still", func() {
			So(render.Score(0.3, story), ShouldBeLessThan, 20.0)
		})
	})
}

func TestGuessLine(t *testing.T) {
	story := session.StoryStats{Top: 1.0, Rest: 0.3}

	Convey("Given a ranked scorching guess", t, func() {
		rec := &session.GuessRecord{
			Word:       "string",
			Similarity: 0.8,
			Percentile: intp(995),
			By:         strp("alexander"),
		}
		line := render.Guess(rec, story)

		Convey("Then the line starts with the padded word", func() {
			So(line, ShouldStartWith, "string         ")
		})

		Convey("Then the rank shows with the hottest tier symbol", func() {
			So(line, ShouldContainSubstring, "995\U0001F534")
		})

		Convey("Then the attribution is truncated to six characters", func() {
			So(line, ShouldEndWith, "alexan")
			So(line, ShouldNotContainSubstring, "alexander")
		})
	})

	Convey("Given guesses across the tier bands", t, func() {
		tiers := map[int]string{
			995: "\U0001F534",
			950: "\U0001F7E0",
			800: "\U0001F7E1",
			600: "\U0001F7E2",
			400: "\U0001F535",
		}
		for rank, symbol := range tiers {
			rec := &session.GuessRecord{Word: "w", Similarity: 0.5, Percentile: intp(rank), By: strp("a")}
			So(render.Guess(rec, story), ShouldContainSubstring, symbol)
		}
	})

	Convey("Given an unranked guess that still beats rest", t, func() {
		rec := &session.GuessRecord{Word: "close", Similarity: 0.4, By: strp("bob")}

		So(render.Guess(rec, story), ShouldContainSubstring, "????❓")
	})

	Convey("Given an unranked guess below rest", t, func() {
		rec := &session.GuessRecord{Word: "banana", Similarity: 0.1, By: strp("bob")}

		So(render.Guess(rec, story), ShouldContainSubstring, "cold❄")
	})
}

func TestWinAndTop(t *testing.T) {
	story := session.StoryStats{Top: 1.0, Rest: 0.3}

	Convey("Given the winning record", t, func() {
		rec := &session.GuessRecord{Word: "kite", Similarity: 1.0, By: strp("alice")}

		Convey("Then the win line names the player and the target", func() {
			line := render.Win(rec, "kite")
			So(line, ShouldContainSubstring, "alice")
			So(line, ShouldContainSubstring, "`kite`")
		})
	})

	Convey("Given an ordered leaderboard", t, func() {
		recs := []*session.GuessRecord{
			{Word: "kite", Similarity: 1.0, Percentile: intp(1000), By: strp("alice")},
			{Word: "string", Similarity: 0.6, Percentile: intp(900), By: strp("bob")},
			{Word: "banana", Similarity: 0.1, By: strp("carol")},
		}

		Convey("When rendering the top two", func() {
			block := render.Top(recs, story, 2)

			Convey("Then only two lines appear inside the code fence", func() {
				So(block, ShouldStartWith, "```")
				So(block, ShouldEndWith, " ```")
				So(strings.Count(block, "\n"), ShouldEqual, 1)
				So(block, ShouldContainSubstring, "kite")
				So(block, ShouldContainSubstring, "string")
				So(block, ShouldNotContainSubstring, "banana")
			})
		})

		Convey("When asking for more lines than exist", func() {
			block := render.Top(recs, story, 10)
			So(strings.Count(block, "\n"), ShouldEqual, 2)
		})
	})
}
