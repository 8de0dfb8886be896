package analytics

import (
	"math"

	"stillpoint/internal/models"
)

type TimeDistribution struct {
	Present int `json:"present"`
	Past    int `json:"past"`
	Future  int `json:"future"`
}

type EmotionalDistribution struct {
	Attachment int `json:"attachment"`
	Neutral    int `json:"neutral"`
	Aversion   int `json:"aversion"`
}

type AttentionAnalytics struct {
	TotalPAHM             models.PAHMCounts     `json:"totalPAHM"`
	TotalObservations     int                   `json:"totalObservations"`
	TimeDistribution      TimeDistribution      `json:"timeDistribution"`
	EmotionalDistribution EmotionalDistribution `json:"emotionalDistribution"`
	PresentPercentage     int                   `json:"presentPercentage"`
	NeutralPercentage     int                   `json:"neutralPercentage"`
}

// CalculateAttentionDistribution folds pahmCounts across all sessions into
// the 3x3 time/emotion matrix. Returns nil when no observations were ever
// tracked; "never tracked" is distinct from "tracked as 0%".
func CalculateAttentionDistribution(sessions []models.PracticeSession) *AttentionAnalytics {
	var totals models.PAHMCounts
	for _, s := range sessions {
		if s.PAHMCounts != nil {
			totals.Add(*s.PAHMCounts)
		}
	}

	observations := totals.Total()
	if observations == 0 {
		return nil
	}

	return &AttentionAnalytics{
		TotalPAHM:         totals,
		TotalObservations: observations,
		TimeDistribution: TimeDistribution{
			Present: totals.PresentTotal(),
			Past:    totals.PastTotal(),
			Future:  totals.FutureTotal(),
		},
		EmotionalDistribution: EmotionalDistribution{
			Attachment: totals.AttachmentTotal(),
			Neutral:    totals.NeutralTotal(),
			Aversion:   totals.AversionTotal(),
		},
		PresentPercentage: roundPercent(totals.PresentTotal(), observations),
		NeutralPercentage: roundPercent(totals.NeutralTotal(), observations),
	}
}

// Stage-appropriate presence baselines for sessions that recorded no
// observations at all. A session where the user never tapped a tracking
// button is not penalized.
var stageBaselinePresent = map[int]int{1: 85, 2: 88, 3: 90, 4: 92, 5: 94, 6: 97}

// SessionPresentPercentage resolves the presence figure for one session:
// the explicit presentPercentage when recorded, otherwise the share of
// present-row observations, otherwise the stage baseline.
func SessionPresentPercentage(s models.PracticeSession) int {
	if s.PresentPercentage != nil {
		return *s.PresentPercentage
	}
	if s.PAHMCounts != nil {
		if total := s.PAHMCounts.Total(); total > 0 {
			return roundPercent(s.PAHMCounts.PresentTotal(), total)
		}
	}
	if baseline, ok := stageBaselinePresent[s.StageLevel]; ok {
		return baseline
	}
	return stageBaselinePresent[1]
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
