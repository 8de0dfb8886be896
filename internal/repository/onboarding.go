package repository

import (
	"context"
	"errors"
	"strconv"

	"stillpoint/internal/database"
	"stillpoint/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrAlreadyCompleted marks a write against a one-time record that was
// already completed.
var ErrAlreadyCompleted = errors.New("record already completed")

// NormalizeAnswers folds submitted questionnaire answers onto canonical
// question ids. Clients may still send legacy aliases for the same concept
// (experience_level vs experienceLevel); only one canonical shape ever
// reaches storage or the analytics core. When both an alias and the
// canonical key are present, the canonical key wins.
func NormalizeAnswers(survey *models.Survey, raw map[string]any) map[string]any {
	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		id := survey.CanonicalID(key)
		if _, exists := normalized[id]; exists && id != key {
			continue
		}
		normalized[id] = value
	}
	return normalized
}

// QuestionnaireFromAnswers maps normalized answers onto the canonical
// Questionnaire record.
func QuestionnaireFromAnswers(answers map[string]any) *models.Questionnaire {
	return &models.Questionnaire{
		ExperienceLevel:    answerInt(answers, "experience_level"),
		Goals:              answerStrings(answers, "goals"),
		PracticeFrequency:  answerInt(answers, "practice_frequency"),
		SleepPattern:       answerInt(answers, "sleep_pattern"),
		SleepQuality:       answerInt(answers, "sleep_quality"),
		Restfulness:        answerInt(answers, "restfulness"),
		StressLevel:        answerInt(answers, "stress_level"),
		StressTriggers:     answerStrings(answers, "stress_triggers"),
		MoodStability:      answerInt(answers, "mood_stability"),
		EmotionalAwareness: answerInt(answers, "emotional_awareness"),
		EnvironmentType:    answerString(answers, "environment_type"),
		DistractionLevel:   answerInt(answers, "distraction_level"),
		SupportSystem:      answerInt(answers, "support_system"),
	}
}

func answerInt(answers map[string]any, id string) int {
	switch v := answers[id].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func answerString(answers map[string]any, id string) string {
	s, _ := answers[id].(string)
	return s
}

func answerStrings(answers map[string]any, id string) pq.StringArray {
	items, ok := answers[id].([]any)
	if !ok {
		return nil
	}
	out := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SaveQuestionnaire upserts the user's questionnaire with
// overwrite-in-place semantics: answers may be revised while onboarding is
// underway, but the completed flag flips true exactly once and a second
// record is never created.
func SaveQuestionnaire(ctx context.Context, userID uint, q *models.Questionnaire, complete bool) error {
	existing, err := GetQuestionnaire(ctx, userID)
	if err != nil {
		return err
	}

	q.UserID = userID
	if existing != nil {
		q.ID = existing.ID
		q.CreatedAt = existing.CreatedAt
		// Completion is one-way.
		q.Completed = existing.Completed || complete
		return database.DB.WithContext(ctx).Save(q).Error
	}

	q.Completed = complete
	return database.DB.WithContext(ctx).Create(q).Error
}

// GetQuestionnaire returns the user's questionnaire, or nil when none was
// ever submitted. Absence is a user state, not an error.
func GetQuestionnaire(ctx context.Context, userID uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := database.DB.WithContext(ctx).First(&q, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// SaveSelfAssessment writes the six-category attachment self-assessment.
// It is accepted exactly once.
func SaveSelfAssessment(ctx context.Context, userID uint, assessment *models.SelfAssessment) error {
	if err := assessment.Validate(); err != nil {
		return err
	}

	existing, err := GetSelfAssessment(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyCompleted
	}

	assessment.UserID = userID
	assessment.Completed = true
	return database.DB.WithContext(ctx).Create(assessment).Error
}

// GetSelfAssessment returns the user's self-assessment, or nil when none
// was ever completed.
func GetSelfAssessment(ctx context.Context, userID uint) (*models.SelfAssessment, error) {
	var assessment models.SelfAssessment
	err := database.DB.WithContext(ctx).First(&assessment, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
