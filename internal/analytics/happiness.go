package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"stillpoint/internal/models"
)

const (
	LevelMaster       = "Master"
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
	LevelNewcomer     = "Newcomer"
)

// newcomerFloor is both the short-circuit score for a brand-new account and
// the hard lower bound of the composed score.
const newcomerFloor = 50

type HappinessBreakdown struct {
	BaseHappiness           int `json:"baseHappiness"`
	QuestionnaireBonus      int `json:"questionnaireBonus"`
	PAHMMasteryBonus        int `json:"pahmMasteryBonus"`
	SessionQualityBonus     int `json:"sessionQualityBonus"`
	EmotionalStabilityBonus int `json:"emotionalStabilityBonus"`
	MindRecoveryBonus       int `json:"mindRecoveryBonus"`
	EnvironmentBonus        int `json:"environmentBonus"`
	ConsistencyBonus        int `json:"consistencyBonus"`
	NonAttachmentBonus      int `json:"nonAttachmentBonus"`
	AttachmentPenalty       int `json:"attachmentPenalty"`
}

type HappinessScore struct {
	Score     int                `json:"score"`
	Level     string             `json:"level"`
	Breakdown HappinessBreakdown `json:"breakdown"`
}

// ComposeHappiness combines the questionnaire baseline, session-derived
// bonuses and the attachment model into one composite score. Deterministic:
// identical inputs always produce the identical score and breakdown.
func ComposeHappiness(q *models.Questionnaire, assessment *models.SelfAssessment, sessions []models.PracticeSession, now time.Time) HappinessScore {
	// A brand-new account never displays a misleadingly computed score.
	if questionnaireAbsent(q) && assessment == nil && len(sessions) == 0 {
		return HappinessScore{Score: newcomerFloor, Level: LevelNewcomer}
	}

	attachment := EvaluateAttachment(assessment)
	b := HappinessBreakdown{
		BaseHappiness:           baseHappiness(q),
		QuestionnaireBonus:      questionnaireBonus(q),
		PAHMMasteryBonus:        pahmMasteryBonus(q, sessions),
		SessionQualityBonus:     sessionQualityBonus(sessions),
		EmotionalStabilityBonus: emotionalStabilityBonus(q),
		MindRecoveryBonus:       mindRecoveryBonus(q, sessions),
		EnvironmentBonus:        environmentBonus(q, sessions),
		ConsistencyBonus:        consistencyBonus(sessions, now),
		NonAttachmentBonus:      attachment.NonAttachmentBonus,
		AttachmentPenalty:       attachment.PenaltyPoints,
	}

	score := b.BaseHappiness + b.QuestionnaireBonus + b.PAHMMasteryBonus +
		b.SessionQualityBonus + b.EmotionalStabilityBonus + b.MindRecoveryBonus +
		b.EnvironmentBonus + b.ConsistencyBonus + b.NonAttachmentBonus -
		b.AttachmentPenalty
	if score < newcomerFloor {
		score = newcomerFloor
	}

	return HappinessScore{Score: score, Level: ScoreLevel(score), Breakdown: b}
}

func ScoreLevel(score int) string {
	switch {
	case score >= 1200:
		return LevelMaster
	case score >= 1000:
		return LevelExpert
	case score >= 800:
		return LevelAdvanced
	case score >= 600:
		return LevelIntermediate
	case score >= 400:
		return LevelBeginner
	default:
		return LevelNewcomer
	}
}

// An in-progress questionnaire contributes nothing; only a completed one
// counts as present.
func questionnaireAbsent(q *models.Questionnaire) bool {
	return q == nil || !q.Completed
}

func baseHappiness(q *models.Questionnaire) int {
	if questionnaireAbsent(q) {
		return 150
	}
	score := 200
	switch {
	case q.ExperienceLevel >= 8:
		score += 100
	case q.ExperienceLevel >= 6:
		score += 60
	case q.ExperienceLevel >= 4:
		score += 30
	case q.ExperienceLevel >= 2:
		score += 15
	}
	score += (q.SleepPattern - 5) * 8
	score += len(q.Goals) * 10
	score += q.PracticeFrequency * 5
	if score < 150 {
		score = 150
	}
	return score
}

func questionnaireBonus(q *models.Questionnaire) int {
	if questionnaireAbsent(q) {
		return 0
	}
	bonus := 0
	switch {
	case q.ExperienceLevel >= 8:
		bonus += 40
	case q.ExperienceLevel >= 6:
		bonus += 25
	case q.ExperienceLevel >= 4:
		bonus += 15
	}
	switch {
	case q.SleepPattern >= 8:
		bonus += 30
	case q.SleepPattern >= 6:
		bonus += 20
	case q.SleepPattern >= 4:
		bonus += 10
	}
	switch {
	case q.PracticeFrequency >= 6:
		bonus += 25
	case q.PracticeFrequency >= 4:
		bonus += 15
	case q.PracticeFrequency >= 2:
		bonus += 8
	}
	// Zero means unanswered on the <= ladders.
	switch {
	case q.StressLevel > 0 && q.StressLevel <= 2:
		bonus += 20
	case q.StressLevel > 0 && q.StressLevel <= 4:
		bonus += 10
	}
	return bonus
}

func pahmMasteryBonus(q *models.Questionnaire, sessions []models.PracticeSession) int {
	bonus := 0
	if !questionnaireAbsent(q) {
		switch {
		case q.ExperienceLevel >= 8:
			bonus += 50
		case q.ExperienceLevel >= 6:
			bonus += 30
		case q.ExperienceLevel >= 4:
			bonus += 15
		}
	}
	switch {
	case len(sessions) >= 100:
		bonus += 40
	case len(sessions) >= 50:
		bonus += 25
	case len(sessions) >= 20:
		bonus += 15
	case len(sessions) >= 5:
		bonus += 8
	}
	if len(sessions) > 0 {
		tracked := 0
		for _, s := range sessions {
			if s.PAHMCounts != nil {
				tracked++
			}
		}
		fraction := float64(tracked) / float64(len(sessions))
		switch {
		case fraction >= 0.8:
			bonus += 30
		case fraction >= 0.6:
			bonus += 20
		case fraction >= 0.4:
			bonus += 10
		}
	}
	return bonus
}

// sessionQualityBonus looks at the last 10 sessions. Missing fields default
// to rating 7 / presence 70 for this calculation only.
func sessionQualityBonus(sessions []models.PracticeSession) int {
	if len(sessions) == 0 {
		return 0
	}

	sorted := make([]models.PracticeSession, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	var ratingSum, presentSum float64
	for _, s := range sorted {
		rating, present := 7.0, 70.0
		if s.Rating != nil {
			rating = float64(*s.Rating)
		}
		if s.PresentPercentage != nil {
			present = float64(*s.PresentPercentage)
		}
		ratingSum += rating
		presentSum += present
	}
	avgRating := ratingSum / float64(len(sorted))
	avgPresent := presentSum / float64(len(sorted))

	bonus := 0
	switch {
	case avgRating >= 9:
		bonus += 30
	case avgRating >= 8:
		bonus += 20
	case avgRating >= 7:
		bonus += 10
	}
	switch {
	case avgPresent >= 90:
		bonus += 25
	case avgPresent >= 80:
		bonus += 15
	case avgPresent >= 70:
		bonus += 8
	}
	return bonus
}

func emotionalStabilityBonus(q *models.Questionnaire) int {
	if questionnaireAbsent(q) {
		return 0
	}
	bonus := 0
	switch {
	case q.StressLevel > 0 && q.StressLevel <= 2:
		bonus += 35
	case q.StressLevel > 0 && q.StressLevel <= 3:
		bonus += 25
	case q.StressLevel > 0 && q.StressLevel <= 4:
		bonus += 15
	}
	switch {
	case q.MoodStability >= 8:
		bonus += 30
	case q.MoodStability >= 6:
		bonus += 20
	case q.MoodStability >= 4:
		bonus += 10
	}
	switch {
	case q.EmotionalAwareness >= 8:
		bonus += 25
	case q.EmotionalAwareness >= 6:
		bonus += 15
	case q.EmotionalAwareness >= 4:
		bonus += 8
	}
	return bonus
}

func mindRecoveryBonus(q *models.Questionnaire, sessions []models.PracticeSession) int {
	bonus := 0
	if !questionnaireAbsent(q) {
		switch {
		case q.SleepQuality >= 8:
			bonus += 40
		case q.SleepQuality >= 6:
			bonus += 25
		case q.SleepQuality >= 4:
			bonus += 12
		}
		switch {
		case q.Restfulness >= 8:
			bonus += 30
		case q.Restfulness >= 6:
			bonus += 18
		case q.Restfulness >= 4:
			bonus += 8
		}
	}

	if len(sessions) > 0 {
		recovery := 0
		var stressSum float64
		stressCount := 0
		for _, s := range sessions {
			if !s.IsMindRecovery() {
				continue
			}
			recovery++
			if s.RecoveryMetrics != nil {
				stressSum += float64(s.RecoveryMetrics.StressReduction)
				stressCount++
			}
		}

		fraction := float64(recovery) / float64(len(sessions))
		switch {
		case fraction >= 0.3:
			bonus += 25
		case fraction >= 0.2:
			bonus += 15
		case fraction >= 0.1:
			bonus += 8
		}

		if stressCount > 0 {
			avg := stressSum / float64(stressCount)
			switch {
			case avg >= 8:
				bonus += 20
			case avg >= 6:
				bonus += 12
			case avg >= 4:
				bonus += 6
			}
		}
	}
	return bonus
}

func environmentBonus(q *models.Questionnaire, sessions []models.PracticeSession) int {
	bonus := 0
	if !questionnaireAbsent(q) {
		switch q.EnvironmentType {
		case "dedicated_space":
			bonus += 25
		case "nature":
			bonus += 20
		case "quiet_room":
			bonus += 18
		case "outdoor":
			bonus += 15
		}
		switch {
		case q.DistractionLevel > 0 && q.DistractionLevel <= 2:
			bonus += 20
		case q.DistractionLevel > 0 && q.DistractionLevel <= 3:
			bonus += 12
		case q.DistractionLevel > 0 && q.DistractionLevel <= 4:
			bonus += 6
		}
		switch {
		case q.SupportSystem >= 8:
			bonus += 25
		case q.SupportSystem >= 6:
			bonus += 15
		case q.SupportSystem >= 4:
			bonus += 8
		}
	}

	if len(sessions) > 0 {
		recorded, outdoor := 0, 0
		for _, s := range sessions {
			if s.Environment == nil {
				continue
			}
			recorded++
			if s.Environment.Location == "outdoor" || s.Environment.Location == "nature" {
				outdoor++
			}
		}

		fraction := float64(recorded) / float64(len(sessions))
		switch {
		case fraction >= 0.8:
			bonus += 15
		case fraction >= 0.6:
			bonus += 10
		case fraction >= 0.4:
			bonus += 5
		}
		if outdoor >= 5 {
			bonus += 10
		}
	}
	return bonus
}

func consistencyBonus(sessions []models.PracticeSession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	bonus := 0
	temporal := CalculateTemporalMetrics(sessions, now)
	switch {
	case temporal.CurrentStreak >= 30:
		bonus += 60
	case temporal.CurrentStreak >= 14:
		bonus += 40
	case temporal.CurrentStreak >= 7:
		bonus += 25
	case temporal.CurrentStreak >= 3:
		bonus += 12
	}

	weeks := make(map[string]bool)
	for _, s := range sessions {
		year, week := s.Timestamp.In(now.Location()).ISOWeek()
		weeks[weekKey(year, week)] = true
	}
	expected := math.Ceil(float64(len(sessions)) / 7)
	ratio := float64(len(weeks)) / expected
	switch {
	case ratio >= 0.8:
		bonus += 30
	case ratio >= 0.6:
		bonus += 20
	case ratio >= 0.4:
		bonus += 10
	}
	return bonus
}

func weekKey(year, week int) string {
	return fmt.Sprintf("%04d-%02d", year, week)
}
