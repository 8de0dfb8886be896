package repository

import (
	"context"
	"errors"
	"time"

	"stillpoint/internal/database"
	"stillpoint/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound marks a lookup for a record that does not exist or does not
// belong to the requesting user.
var ErrNotFound = errors.New("record not found")

// CreateNote validates and writes one emotional note.
func CreateNote(ctx context.Context, userID uint, note *models.EmotionalNote) error {
	if err := note.Validate(); err != nil {
		return err
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now()
	}
	note.UserID = userID
	return database.DB.WithContext(ctx).Create(note).Error
}

// GetNotes returns the user's emotional notes, newest first.
func GetNotes(ctx context.Context, userID uint) ([]models.EmotionalNote, error) {
	var notes []models.EmotionalNote
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("\"timestamp\" DESC").
		Find(&notes).Error
	return notes, err
}

// DeleteNote removes one note by id.
func DeleteNote(ctx context.Context, userID uint, id string) error {
	result := database.DB.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.EmotionalNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
