package repository

import (
	"testing"

	"stillpoint/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func testSurvey() *models.Survey {
	return &models.Survey{
		Questions: []models.SurveyQuestion{
			{ID: "experience_level", Aliases: []string{"experienceLevel"}},
			{ID: "goals", Aliases: []string{"practiceGoals"}},
			{ID: "environment_type", Aliases: []string{"environmentType", "practiceEnvironment"}},
			{ID: "stress_level", Aliases: []string{"stressLevel"}},
		},
	}
}

func TestNormalizeAnswersFoldsAliases(t *testing.T) {
	answers := NormalizeAnswers(testSurvey(), map[string]any{
		"experienceLevel":     float64(6),
		"practiceEnvironment": "nature",
		"stress_level":        float64(3),
	})

	require.Equal(t, float64(6), answers["experience_level"])
	require.Equal(t, "nature", answers["environment_type"])
	require.Equal(t, float64(3), answers["stress_level"])
	require.NotContains(t, answers, "experienceLevel")
}

func TestNormalizeAnswersCanonicalWins(t *testing.T) {
	answers := NormalizeAnswers(testSurvey(), map[string]any{
		"experience_level": float64(8),
		"experienceLevel":  float64(2),
	})
	require.Equal(t, float64(8), answers["experience_level"])
}

func TestQuestionnaireFromAnswers(t *testing.T) {
	q := QuestionnaireFromAnswers(map[string]any{
		"experience_level":   float64(7),
		"goals":              []any{"calm", "focus"},
		"practice_frequency": "5",
		"sleep_pattern":      float64(6),
		"environment_type":   "quiet_room",
		"stress_level":       3,
	})

	require.Equal(t, 7, q.ExperienceLevel)
	require.Equal(t, pq.StringArray{"calm", "focus"}, q.Goals)
	require.Equal(t, 5, q.PracticeFrequency)
	require.Equal(t, 6, q.SleepPattern)
	require.Equal(t, "quiet_room", q.EnvironmentType)
	require.Equal(t, 3, q.StressLevel)
	// Unanswered questions come through as zero values.
	require.Zero(t, q.MoodStability)
	require.Empty(t, q.StressTriggers)
}
