package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stillpoint/internal/models"
)

func assessmentWith(levels map[string]string) *models.SelfAssessment {
	return &models.SelfAssessment{Levels: models.CategoryLevels(levels), Completed: true}
}

func uniformAssessment(level string) *models.SelfAssessment {
	levels := make(models.CategoryLevels)
	for _, c := range models.AttachmentCategories {
		levels[c] = level
	}
	return assessmentWith(levels)
}

func TestAttachmentMissingAssessment(t *testing.T) {
	s := EvaluateAttachment(nil)
	require.Equal(t, 0, s.PenaltyPoints)
	require.Equal(t, 0, s.NonAttachmentBonus)
	require.Equal(t, AttachmentNoData, s.Level)
}

func TestAttachmentAllStrong(t *testing.T) {
	s := EvaluateAttachment(uniformAssessment(models.AttachmentStrong))
	require.Equal(t, 450, s.PenaltyPoints)
	require.Equal(t, AttachmentVeryHigh, s.Level)
	require.Equal(t, 0, s.NonAttachmentBonus)
}

func TestAttachmentAllNone(t *testing.T) {
	s := EvaluateAttachment(uniformAssessment(models.AttachmentNone))
	require.Equal(t, 0, s.PenaltyPoints)
	require.Equal(t, 120, s.NonAttachmentBonus)
	require.Equal(t, AttachmentNonAttached, s.Level)
	require.Equal(t, 6, s.TotalCategories)
}

func TestAttachmentPenaltyArithmetic(t *testing.T) {
	s := EvaluateAttachment(assessmentWith(map[string]string{
		"taste": models.AttachmentSome,
		"smell": models.AttachmentSome,
		"sound": models.AttachmentStrong,
		"sight": models.AttachmentNone,
		"touch": models.AttachmentNone,
		"mind":  models.AttachmentNone,
	}))
	require.Equal(t, 2*25+75, s.PenaltyPoints)
	require.Equal(t, 40, s.NonAttachmentBonus) // 3/6 = 50% >= 40
	require.Equal(t, AttachmentMedium, s.Level)
}

func TestAttachmentLevelLadder(t *testing.T) {
	cases := []struct {
		name   string
		levels map[string]string
		want   string
	}{
		{
			"four strong is very-high",
			map[string]string{"taste": "strong", "smell": "strong", "sound": "strong", "sight": "strong"},
			AttachmentVeryHigh,
		},
		{
			"two strong is high",
			map[string]string{"taste": "strong", "smell": "strong"},
			AttachmentHigh,
		},
		{
			"four some is high",
			map[string]string{"taste": "some", "smell": "some", "sound": "some", "sight": "some"},
			AttachmentHigh,
		},
		{
			"one strong is medium",
			map[string]string{"taste": "strong"},
			AttachmentMedium,
		},
		{
			"one some is low",
			map[string]string{"taste": "some"},
			AttachmentLow,
		},
		{
			"partial none is very-low, not non-attached",
			map[string]string{"taste": "none", "smell": "none", "sound": "none"},
			AttachmentVeryLow,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EvaluateAttachment(assessmentWith(tc.levels)).Level)
		})
	}
}

func TestAttachmentSkippedCategoriesNotCounted(t *testing.T) {
	s := EvaluateAttachment(assessmentWith(map[string]string{
		"taste": models.AttachmentNone,
		"smell": models.AttachmentNone,
	}))
	require.Equal(t, 2, s.TotalCategories)
	// 100% none of the recorded categories, so the full bonus applies.
	require.Equal(t, 120, s.NonAttachmentBonus)
	// But not all six are "none", so the level stays very-low.
	require.Equal(t, AttachmentVeryLow, s.Level)
}
