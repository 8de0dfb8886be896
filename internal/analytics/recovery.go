package analytics

import (
	"math"
	"sort"

	"stillpoint/internal/models"
)

type RecoveryGroupStat struct {
	Key         string  `json:"key"`
	Count       int     `json:"count"`
	AvgRating   float64 `json:"avgRating"`
	AvgDuration int     `json:"avgDuration"`
}

type MindRecoveryAnalytics struct {
	TotalSessions       int                 `json:"totalSessions"`
	TotalMinutes        int                 `json:"totalMinutes"`
	AvgRating           float64             `json:"avgRating"`
	AvgDuration         int                 `json:"avgDuration"`
	ContextStats        []RecoveryGroupStat `json:"contextStats"`
	PurposeStats        []RecoveryGroupStat `json:"purposeStats"`
	MostUsedContext     string              `json:"mostUsedContext,omitempty"`
	HighestRatedContext string              `json:"highestRatedContext,omitempty"`
}

// CalculateMindRecoveryAnalytics aggregates the mind-recovery subset of
// sessions and groups them by context and purpose tag.
func CalculateMindRecoveryAnalytics(sessions []models.PracticeSession) MindRecoveryAnalytics {
	var recovery []models.PracticeSession
	for _, s := range sessions {
		if s.IsMindRecovery() {
			recovery = append(recovery, s)
		}
	}

	m := MindRecoveryAnalytics{
		ContextStats: []RecoveryGroupStat{},
		PurposeStats: []RecoveryGroupStat{},
	}
	if len(recovery) == 0 {
		return m
	}

	var ratingSum, durationSum float64
	for _, s := range recovery {
		if s.Rating != nil {
			ratingSum += float64(*s.Rating)
		}
		durationSum += float64(s.DurationMinutes)
		m.TotalMinutes += s.DurationMinutes
	}
	m.TotalSessions = len(recovery)
	m.AvgRating = math.Round(ratingSum/float64(len(recovery))*10) / 10
	m.AvgDuration = int(math.Round(durationSum / float64(len(recovery))))

	m.ContextStats = recoveryGroups(recovery, func(s models.PracticeSession) string { return s.MindRecoveryContext })
	m.PurposeStats = recoveryGroups(recovery, func(s models.PracticeSession) string { return s.MindRecoveryPurpose })

	if len(m.ContextStats) > 0 {
		m.MostUsedContext = m.ContextStats[0].Key
		m.HighestRatedContext = highestRatedContext(m.ContextStats)
	}
	return m
}

func recoveryGroups(sessions []models.PracticeSession, key func(models.PracticeSession) string) []RecoveryGroupStat {
	type group struct {
		count       int
		ratingSum   float64
		durationSum float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, s := range sessions {
		k := key(s)
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}
		g.count++
		if s.Rating != nil {
			g.ratingSum += float64(*s.Rating)
		}
		g.durationSum += float64(s.DurationMinutes)
	}

	stats := make([]RecoveryGroupStat, 0, len(order))
	for _, k := range order {
		g := groups[k]
		stats = append(stats, RecoveryGroupStat{
			Key:         k,
			Count:       g.count,
			AvgRating:   math.Round(g.ratingSum/float64(g.count)*10) / 10,
			AvgDuration: int(math.Round(g.durationSum / float64(g.count))),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// highestRatedContext picks the context with the maximum average rating.
// Ties break lexicographically on the context name so the result does not
// depend on iteration order.
func highestRatedContext(stats []RecoveryGroupStat) string {
	best := stats[0]
	for _, s := range stats[1:] {
		if s.AvgRating > best.AvgRating || (s.AvgRating == best.AvgRating && s.Key < best.Key) {
			best = s
		}
	}
	return best.Key
}
