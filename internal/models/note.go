// note.go
package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// EmotionalNote is a free-form journal entry, independent of any practice
// session. Immutable once created.
type EmotionalNote struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"-"`
	Timestamp   time.Time      `gorm:"index" json:"timestamp"`
	Content     string         `json:"content"`
	Emotion     string         `json:"emotion,omitempty"`
	EnergyLevel *int           `json:"energyLevel,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	Gratitude   pq.StringArray `gorm:"type:text[]" json:"gratitude,omitempty"`
	CreatedAt   time.Time      `json:"-"`
}

func (n *EmotionalNote) Validate() error {
	if n.Content == "" {
		return fmt.Errorf("%w: note content is required", ErrInvalidRecord)
	}
	if n.EnergyLevel != nil && (*n.EnergyLevel < 1 || *n.EnergyLevel > 10) {
		return fmt.Errorf("%w: energyLevel must be 1-10", ErrInvalidRecord)
	}
	return nil
}
