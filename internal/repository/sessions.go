// server/internal/repository/sessions.go
package repository

import (
	"context"
	"time"

	"stillpoint/internal/database"
	"stillpoint/internal/models"

	"github.com/google/uuid"
)

// CreateSession validates and writes one completed practice session. The
// record is written atomically and never partially; sessions are immutable
// after this point.
func CreateSession(ctx context.Context, userID uint, session *models.PracticeSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now()
	}
	session.UserID = userID
	return database.DB.WithContext(ctx).Create(session).Error
}

// GetSessions returns the user's full session collection, newest first.
func GetSessions(ctx context.Context, userID uint) ([]models.PracticeSession, error) {
	var sessions []models.PracticeSession
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("\"timestamp\" DESC").
		Find(&sessions).Error
	return sessions, err
}

// DeleteSession removes one session by id. Deletion is the only lifecycle
// operation after creation.
func DeleteSession(ctx context.Context, userID uint, id string) error {
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.PracticeSession{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
