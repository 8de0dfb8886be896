package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const surveyFixture = `
questions:
  - id: experience_level
    title: "How experienced are you?"
    kind: scale
    required: true
    aliases: [experienceLevel]
  - id: environment_type
    title: "Where will you practice?"
    kind: choice
    options:
      - value: quiet_room
        label: "A quiet room"
      - value: nature
        label: "In nature"
`

func writeSurveyFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(surveyFixture), 0o644))
	return path
}

func TestLoadSurvey(t *testing.T) {
	survey, err := LoadSurvey(writeSurveyFixture(t))
	require.NoError(t, err)
	require.Len(t, survey.Questions, 2)

	q, ok := survey.Question("environment_type")
	require.True(t, ok)
	require.Equal(t, "choice", q.Kind)
	require.Len(t, q.Options, 2)

	_, ok = survey.Question("missing")
	require.False(t, ok)
}

func TestLoadSurveyMissingFile(t *testing.T) {
	_, err := LoadSurvey(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadShippedSurvey(t *testing.T) {
	survey, err := LoadSurvey(filepath.Join("..", "..", "config", "survey.yaml"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(survey.Questions), 27)

	// Every field the questionnaire record stores must have a question.
	for _, id := range []string{
		"experience_level", "goals", "practice_frequency", "sleep_pattern",
		"sleep_quality", "restfulness", "stress_level", "stress_triggers",
		"mood_stability", "emotional_awareness", "environment_type",
		"distraction_level", "support_system",
	} {
		_, ok := survey.Question(id)
		require.True(t, ok, "missing question %s", id)
	}

	require.Equal(t, "experience_level", survey.CanonicalID("experienceLevel"))
	require.Equal(t, "environment_type", survey.CanonicalID("practiceEnvironment"))

	env, _ := survey.Question("environment_type")
	values := make([]string, 0, len(env.Options))
	for _, o := range env.Options {
		values = append(values, o.Value)
	}
	require.Subset(t, values, []string{"dedicated_space", "quiet_room", "nature", "outdoor"})
}

func TestCanonicalID(t *testing.T) {
	survey, err := LoadSurvey(writeSurveyFixture(t))
	require.NoError(t, err)

	require.Equal(t, "experience_level", survey.CanonicalID("experience_level"))
	require.Equal(t, "experience_level", survey.CanonicalID("experienceLevel"))
	// Unknown keys pass through unchanged.
	require.Equal(t, "shoe_size", survey.CanonicalID("shoe_size"))
}
