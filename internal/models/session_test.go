package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPracticeSessionValidate(t *testing.T) {
	rating := 7
	badRating := 11
	negPresence := -1

	valid := PracticeSession{
		SessionType:     SessionTypeMeditation,
		DurationMinutes: 20,
		StageLevel:      2,
		Rating:          &rating,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		session PracticeSession
	}{
		{"negative duration", PracticeSession{SessionType: SessionTypeMeditation, DurationMinutes: -1}},
		{"unknown type", PracticeSession{SessionType: "breathwork"}},
		{"stage out of range", PracticeSession{SessionType: SessionTypeMeditation, StageLevel: 7}},
		{"rating out of range", PracticeSession{SessionType: SessionTypeMeditation, Rating: &badRating}},
		{"negative presence", PracticeSession{SessionType: SessionTypeMeditation, PresentPercentage: &negPresence}},
		{"negative pahm count", PracticeSession{SessionType: SessionTypeMeditation, PAHMCounts: &PAHMCounts{PastNeutral: -2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.session.Validate()
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestPAHMCountsTotals(t *testing.T) {
	counts := PAHMCounts{
		PresentAttachment: 1, PresentNeutral: 2, PresentAversion: 3,
		PastAttachment: 4, PastNeutral: 5, PastAversion: 6,
		FutureAttachment: 7, FutureNeutral: 8, FutureAversion: 9,
	}

	require.Equal(t, 45, counts.Total())
	require.Equal(t, 6, counts.PresentTotal())
	require.Equal(t, 15, counts.PastTotal())
	require.Equal(t, 24, counts.FutureTotal())
	require.Equal(t, 12, counts.AttachmentTotal())
	require.Equal(t, 15, counts.NeutralTotal())
	require.Equal(t, 18, counts.AversionTotal())

	counts.Add(PAHMCounts{PresentNeutral: 10})
	require.Equal(t, 12, counts.PresentNeutral)
	require.Equal(t, 55, counts.Total())
}

func TestSelfAssessmentValidate(t *testing.T) {
	good := SelfAssessment{Levels: CategoryLevels{"taste": AttachmentNone, "mind": AttachmentStrong}}
	require.NoError(t, good.Validate())

	unknownCategory := SelfAssessment{Levels: CategoryLevels{"color": AttachmentNone}}
	require.ErrorIs(t, unknownCategory.Validate(), ErrInvalidRecord)

	unknownLevel := SelfAssessment{Levels: CategoryLevels{"taste": "extreme"}}
	require.ErrorIs(t, unknownLevel.Validate(), ErrInvalidRecord)
}
