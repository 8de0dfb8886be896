package analytics

import (
	"math"
	"sort"
	"time"

	"stillpoint/internal/models"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

type TemporalMetrics struct {
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	ConsistencyScore int    `json:"consistencyScore"`
	Trend            string `json:"trend"`
}

// CalculateTemporalMetrics derives streak, consistency and trend figures
// from a user's practice sessions. The reference time is an argument so the
// function stays pure; callers pass time.Now().
func CalculateTemporalMetrics(sessions []models.PracticeSession, now time.Time) TemporalMetrics {
	m := TemporalMetrics{Trend: TrendStable}
	if len(sessions) == 0 {
		return m
	}

	days := practiceDays(sessions, now.Location())
	today := truncateToDay(now)

	m.CurrentStreak = currentStreak(days, today)
	m.LongestStreak = longestStreak(days)
	if m.CurrentStreak > m.LongestStreak {
		m.LongestStreak = m.CurrentStreak
	}

	// Consistency: share of the trailing 30 calendar days with practice.
	recent := 0
	for _, d := range days {
		offset := dayOffset(today, d)
		if offset >= 0 && offset < 30 {
			recent++
		}
	}
	m.ConsistencyScore = int(math.Round(float64(recent) / 30.0 * 100))

	m.Trend = progressTrend(sessions)
	return m
}

// practiceDays collapses sessions to one entry per local calendar day,
// sorted descending.
func practiceDays(sessions []models.PracticeSession, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool)
	for _, s := range sessions {
		seen[truncateToDay(s.Timestamp.In(loc))] = true
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// currentStreak counts consecutive practice days ending at (and including)
// today. A day without practice before today means no current streak.
func currentStreak(days []time.Time, today time.Time) int {
	streak := 0
	expected := today
	for _, d := range days {
		if d.After(expected) {
			continue
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest consecutive-day run anywhere in the
// (descending, deduplicated) day sequence, not just the trailing one.
func longestStreak(days []time.Time) int {
	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, -1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// progressTrend compares the average rating of the most recent 5 sessions
// against the preceding 5. Sessions without a rating count as 0 rather than
// being excluded.
func progressTrend(sessions []models.PracticeSession) string {
	if len(sessions) < 10 {
		return TrendStable
	}

	sorted := make([]models.PracticeSession, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	recent := averageRating(sorted[:5])
	previous := averageRating(sorted[5:10])

	switch {
	case recent-previous > 0.5:
		return TrendImproving
	case previous-recent > 0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func averageRating(sessions []models.PracticeSession) float64 {
	var sum float64
	for _, s := range sessions {
		if s.Rating != nil {
			sum += float64(*s.Rating)
		}
	}
	return sum / float64(len(sessions))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOffset returns how many calendar days before today d falls. Rounding
// absorbs DST shifts.
func dayOffset(today, d time.Time) int {
	return int(math.Round(today.Sub(d).Hours() / 24))
}
