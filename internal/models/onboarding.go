// onboarding.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Questionnaire holds the one-time onboarding answers in canonical form.
// Submitted answers may arrive under snake_case or camelCase aliases; the
// repository normalizes them before this struct is written, so the
// analytics core only ever sees these fields.
type Questionnaire struct {
	ID                 uint           `gorm:"primaryKey" json:"-"`
	UserID             uint           `gorm:"uniqueIndex" json:"-"`
	ExperienceLevel    int            `json:"experienceLevel"`
	Goals              pq.StringArray `gorm:"type:text[]" json:"goals"`
	PracticeFrequency  int            `json:"practiceFrequency"`
	SleepPattern       int            `json:"sleepPattern"`
	SleepQuality       int            `json:"sleepQuality"`
	Restfulness        int            `json:"restfulness"`
	StressLevel        int            `json:"stressLevel"`
	StressTriggers     pq.StringArray `gorm:"type:text[]" json:"stressTriggers"`
	MoodStability      int            `json:"moodStability"`
	EmotionalAwareness int            `json:"emotionalAwareness"`
	EnvironmentType    string         `json:"environmentType"`
	DistractionLevel   int            `json:"distractionLevel"`
	SupportSystem      int            `json:"supportSystem"`
	Completed          bool           `json:"completed"`
	CreatedAt          time.Time      `json:"-"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// Attachment self-assessment categories and levels. The six categories are
// fixed; each carries exactly one level.
const (
	AttachmentNone   = "none"
	AttachmentSome   = "some"
	AttachmentStrong = "strong"
)

var AttachmentCategories = []string{"taste", "smell", "sound", "sight", "touch", "mind"}

// CategoryLevels maps category name to its attachment level. Stored as a
// single jsonb column; this map is the canonical view, the legacy flat and
// "responses" views are reconstructed at the JSON boundary.
type CategoryLevels map[string]string

func (c CategoryLevels) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *CategoryLevels) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into CategoryLevels", value)
	}
	return json.Unmarshal(b, c)
}

// SelfAssessment is the six-category attachment self-assessment. Completed
// exactly once; later submissions are rejected at the repository.
type SelfAssessment struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	UserID    uint           `gorm:"uniqueIndex" json:"-"`
	Levels    CategoryLevels `gorm:"type:jsonb" json:"categories"`
	Details   CategoryLevels `gorm:"type:jsonb" json:"details,omitempty"`
	Completed bool           `json:"completed"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func (a *SelfAssessment) Validate() error {
	known := make(map[string]bool, len(AttachmentCategories))
	for _, c := range AttachmentCategories {
		known[c] = true
	}
	for category, level := range a.Levels {
		if !known[category] {
			return fmt.Errorf("%w: unknown assessment category %q", ErrInvalidRecord, category)
		}
		switch level {
		case AttachmentNone, AttachmentSome, AttachmentStrong:
		default:
			return fmt.Errorf("%w: level for %q must be none, some or strong", ErrInvalidRecord, category)
		}
	}
	return nil
}
