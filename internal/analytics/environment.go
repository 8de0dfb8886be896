package analytics

import (
	"math"
	"sort"

	"stillpoint/internal/models"
)

type FactorStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	AvgRating  float64 `json:"avgRating"`
	AvgPresent int     `json:"avgPresent"`
}

type EnvironmentAnalytics struct {
	Posture  []FactorStat `json:"posture"`
	Location []FactorStat `json:"location"`
	Lighting []FactorStat `json:"lighting"`
	Sounds   []FactorStat `json:"sounds"`
}

// CalculateEnvironmentAnalytics groups sessions by each environmental
// factor independently and reports count and averages per value. Values
// never seen yield no entry. Presence per session resolves through
// SessionPresentPercentage, so untracked sessions contribute their stage
// baseline instead of dragging the group average to zero.
func CalculateEnvironmentAnalytics(sessions []models.PracticeSession) EnvironmentAnalytics {
	return EnvironmentAnalytics{
		Posture:  factorStats(sessions, func(e models.Environment) string { return e.Posture }),
		Location: factorStats(sessions, func(e models.Environment) string { return e.Location }),
		Lighting: factorStats(sessions, func(e models.Environment) string { return e.Lighting }),
		Sounds:   factorStats(sessions, func(e models.Environment) string { return e.Sounds }),
	}
}

func factorStats(sessions []models.PracticeSession, value func(models.Environment) string) []FactorStat {
	type group struct {
		count      int
		ratingSum  float64
		presentSum float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, s := range sessions {
		if s.Environment == nil {
			continue
		}
		name := value(*s.Environment)
		if name == "" {
			continue
		}
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
			order = append(order, name)
		}
		g.count++
		if s.Rating != nil {
			g.ratingSum += float64(*s.Rating)
		}
		g.presentSum += float64(SessionPresentPercentage(s))
	}

	stats := make([]FactorStat, 0, len(order))
	for _, name := range order {
		g := groups[name]
		stats = append(stats, FactorStat{
			Name:       name,
			Count:      g.count,
			AvgRating:  math.Round(g.ratingSum/float64(g.count)*10) / 10,
			AvgPresent: int(math.Round(g.presentSum / float64(g.count))),
		})
	}

	// Stable sort keeps first-seen order on equal counts.
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}
