// Package render formats guess records into the fixed-width text lines
// players see in chat.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/sema/internal/domain/session"
)

// Tier thresholds over the 1..1000 percentile range, hottest first.
const (
	tierScorching = 990
	tierHot       = 900
	tierWarm      = 750
	tierTepid     = 500
)

// Tier symbols. Ranked guesses get a colored circle; unranked guesses
// that still beat the story's rest similarity get the question marker,
// everything else reads as cold.
const (
	symbolScorching = "\U0001F534" // red circle
	symbolHot       = "\U0001F7E0" // orange circle
	symbolWarm      = "\U0001F7E1" // yellow circle
	symbolTepid     = "\U0001F7E2" // green circle
	symbolCool      = "\U0001F535" // blue circle
	symbolUnranked  = "❓"     // question mark
	symbolCold      = "❄"     // snowflake
)

// Rescaling constants: similarity in [rest, top] maps onto [0.2, 0.9]
// before the percentage conversion, so the target reads near 90 and
// anything below rest reads noticeably cold.
const (
	scoreFloor = 0.2
	scoreSpan  = 0.7
)

// Guess renders one record as a fixed-width line: word, rank indicator,
// rescaled similarity score and truncated attribution.
func Guess(rec *session.GuessRecord, story session.StoryStats) string {
	return fmt.Sprintf("%-15s %5s %6.2f %6s",
		rec.Word,
		rankIndicator(rec, story),
		Score(rec.Similarity, story),
		attribution(rec),
	)
}

// Win renders the celebratory line for the record that hit the target.
func Win(rec *session.GuessRecord, target string) string {
	return fmt.Sprintf("\U0001F389 %s got the correct word `%s`", attributionFull(rec), target)
}

// Top renders the first n leaderboard lines as one chat text block.
func Top(recs []*session.GuessRecord, story session.StoryStats, n int) string {
	if n > len(recs) {
		n = len(recs)
	}
	lines := make([]string, 0, n)
	for _, rec := range recs[:n] {
		lines = append(lines, Guess(rec, story))
	}
	return "```" + strings.Join(lines, "\n") + " ```"
}

// Score linearly remaps a raw cosine similarity from [rest, top] onto
// [0.2, 0.9] and scales it to a percentage.
func Score(similarity float64, story session.StoryStats) float64 {
	s := scoreFloor + scoreSpan*(similarity-story.Rest)/(story.Top-story.Rest)
	return round2(100 * s)
}

func rankIndicator(rec *session.GuessRecord, story session.StoryStats) string {
	if rec.Percentile != nil {
		return fmt.Sprintf("%d%s", *rec.Percentile, circle(*rec.Percentile))
	}
	if rec.Similarity >= story.Rest {
		return "????" + symbolUnranked
	}
	return "cold" + symbolCold
}

func circle(percentile int) string {
	switch {
	case percentile > tierScorching:
		return symbolScorching
	case percentile > tierHot:
		return symbolHot
	case percentile > tierWarm:
		return symbolWarm
	case percentile > tierTepid:
		return symbolTepid
	default:
		return symbolCool
	}
}

// attribution truncates the attributed name to keep columns aligned.
func attribution(rec *session.GuessRecord) string {
	name := attributionFull(rec)
	if len(name) > 6 {
		name = name[:6]
	}
	return name
}

func attributionFull(rec *session.GuessRecord) string {
	if rec.By == nil {
		return ""
	}
	return *rec.By
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
