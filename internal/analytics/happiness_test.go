package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lib/pq"

	"stillpoint/internal/models"
)

func completedQuestionnaire() *models.Questionnaire {
	return &models.Questionnaire{
		ExperienceLevel:    7,
		Goals:              pq.StringArray{"stress", "focus"},
		PracticeFrequency:  5,
		SleepPattern:       7,
		SleepQuality:       8,
		Restfulness:        6,
		StressLevel:        3,
		MoodStability:      7,
		EmotionalAwareness: 8,
		EnvironmentType:    "quiet_room",
		DistractionLevel:   3,
		SupportSystem:      6,
		Completed:          true,
	}
}

func TestComposeHappinessNewAccount(t *testing.T) {
	score := ComposeHappiness(nil, nil, nil, time.Now())
	require.Equal(t, 50, score.Score)
	require.Equal(t, LevelNewcomer, score.Level)
	require.Equal(t, HappinessBreakdown{}, score.Breakdown)
}

func TestComposeHappinessIncompleteQuestionnaireIsAbsent(t *testing.T) {
	q := completedQuestionnaire()
	q.Completed = false
	score := ComposeHappiness(q, nil, nil, time.Now())
	require.Equal(t, 50, score.Score)
	require.Equal(t, LevelNewcomer, score.Level)
}

func TestComposeHappinessQuestionnaireOnly(t *testing.T) {
	score := ComposeHappiness(completedQuestionnaire(), nil, nil, time.Now())

	// base: 200 + 60 (experience) + 16 (sleep) + 20 (goals) + 25 (frequency)
	require.Equal(t, 321, score.Breakdown.BaseHappiness)
	// 25 (experience) + 20 (sleep) + 15 (frequency) + 10 (stress <= 4)
	require.Equal(t, 70, score.Breakdown.QuestionnaireBonus)
	// experience tier only; no sessions
	require.Equal(t, 30, score.Breakdown.PAHMMasteryBonus)
	require.Equal(t, 0, score.Breakdown.SessionQualityBonus)
	// 25 (stress <= 3) + 20 (mood) + 25 (awareness)
	require.Equal(t, 70, score.Breakdown.EmotionalStabilityBonus)
	// 40 (sleep quality) + 18 (restfulness)
	require.Equal(t, 58, score.Breakdown.MindRecoveryBonus)
	// 18 (quiet room) + 12 (distraction <= 3) + 15 (support)
	require.Equal(t, 45, score.Breakdown.EnvironmentBonus)
	require.Equal(t, 0, score.Breakdown.ConsistencyBonus)

	require.Equal(t, 594, score.Score)
	require.Equal(t, LevelBeginner, score.Level)
}

func TestComposeHappinessFloorUnderHeavyPenalty(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.PracticeSession{meditationAt(now.Add(-time.Hour))}

	score := ComposeHappiness(nil, uniformAssessment(models.AttachmentStrong), sessions, now)
	require.Equal(t, 450, score.Breakdown.AttachmentPenalty)
	require.Equal(t, 50, score.Score)
	require.Equal(t, LevelNewcomer, score.Level)
}

func TestComposeHappinessDeterministic(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	var sessions []models.PracticeSession
	for i := 0; i < 25; i++ {
		sessions = append(sessions, meditationAt(now.AddDate(0, 0, -i), withRating(6+i%4), func(s *models.PracticeSession) {
			if i%2 == 0 {
				s.PAHMCounts = &models.PAHMCounts{PresentNeutral: i, PastAversion: i % 3}
			}
		}))
	}

	first := ComposeHappiness(completedQuestionnaire(), uniformAssessment(models.AttachmentSome), sessions, now)
	second := ComposeHappiness(completedQuestionnaire(), uniformAssessment(models.AttachmentSome), sessions, now)
	require.Equal(t, first, second)
	require.GreaterOrEqual(t, first.Score, 50)
}

func TestPAHMMasteryBonusFromSessionsAlone(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	var sessions []models.PracticeSession
	for i := 0; i < 10; i++ {
		sessions = append(sessions, meditationAt(now.AddDate(0, 0, -i), func(s *models.PracticeSession) {
			if i < 8 {
				s.PAHMCounts = &models.PAHMCounts{PresentNeutral: 5}
			}
		}))
	}

	// 8 (count >= 5) + 30 (80% of sessions tracked)
	require.Equal(t, 38, pahmMasteryBonus(nil, sessions))
}

func TestSessionQualityBonusDefaults(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	// Unrated sessions default to rating 7 / presence 70.
	sessions := []models.PracticeSession{meditationAt(now), meditationAt(now.AddDate(0, 0, -1))}
	require.Equal(t, 18, sessionQualityBonus(sessions))

	// Only the last 10 sessions count.
	var mixed []models.PracticeSession
	for i := 0; i < 10; i++ {
		mixed = append(mixed, meditationAt(now.AddDate(0, 0, -i), withRating(9), func(s *models.PracticeSession) {
			s.PresentPercentage = intp(92)
		}))
	}
	for i := 10; i < 30; i++ {
		mixed = append(mixed, meditationAt(now.AddDate(0, 0, -i), withRating(1), func(s *models.PracticeSession) {
			s.PresentPercentage = intp(10)
		}))
	}
	require.Equal(t, 55, sessionQualityBonus(mixed))
}

func TestMindRecoveryBonusSessionShare(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.PracticeSession{
		meditationAt(now),
		meditationAt(now.Add(-time.Hour)),
		{
			ID:          "r1",
			Timestamp:   now.Add(-2 * time.Hour),
			SessionType: models.SessionTypeMindRecovery,
			RecoveryMetrics: &models.RecoveryMetrics{
				StressReduction: 8, EnergyLevel: 7, ClarityImprovement: 6, MoodImprovement: 7,
			},
		},
	}

	// 25 (a third of sessions are recovery) + 20 (stress reduction >= 8)
	require.Equal(t, 45, mindRecoveryBonus(nil, sessions))
}

func TestConsistencyBonusStreakAndWeeks(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	var sessions []models.PracticeSession
	for i := 0; i < 7; i++ {
		sessions = append(sessions, meditationAt(now.AddDate(0, 0, -i)))
	}

	// Streak of 7 => 25; 2 ISO weeks over ceil(7/7)=1 expected => ratio >= 0.8 => 30.
	bonus := consistencyBonus(sessions, now)
	require.GreaterOrEqual(t, bonus, 25+30)
}

func TestScoreLevels(t *testing.T) {
	require.Equal(t, LevelMaster, ScoreLevel(1200))
	require.Equal(t, LevelExpert, ScoreLevel(1000))
	require.Equal(t, LevelAdvanced, ScoreLevel(800))
	require.Equal(t, LevelIntermediate, ScoreLevel(600))
	require.Equal(t, LevelBeginner, ScoreLevel(400))
	require.Equal(t, LevelNewcomer, ScoreLevel(399))
}
