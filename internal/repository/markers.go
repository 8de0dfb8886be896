package repository

import (
	"context"
	"time"

	"stillpoint/internal/database"
	"stillpoint/internal/models"
)

// ChangeMarker summarizes a record collection's state cheaply: how many
// records it holds and when it last changed. The score cache keys on these
// instead of hashing full collections.
type ChangeMarker struct {
	Count       int64
	LastChanged time.Time
}

// GetChangeMarkers reads one marker per collection feeding the happiness
// composer.
func GetChangeMarkers(ctx context.Context, userID uint) ([]ChangeMarker, error) {
	db := database.DB.WithContext(ctx)
	markers := make([]ChangeMarker, 0, 3)

	for _, model := range []any{
		&models.PracticeSession{},
		&models.Questionnaire{},
		&models.SelfAssessment{},
	} {
		var marker ChangeMarker
		row := db.Model(model).
			Select("COUNT(*) AS count, COALESCE(MAX(updated_at), 'epoch'::timestamptz) AS last_changed").
			Where("user_id = ?", userID)
		if err := row.Scan(&marker).Error; err != nil {
			return nil, err
		}
		markers = append(markers, marker)
	}
	return markers, nil
}
