// session.go
package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord marks a structurally invalid record caught at the store
// boundary. The analytics core assumes records that pass validation.
var ErrInvalidRecord = errors.New("invalid record")

const (
	SessionTypeMeditation   = "meditation"
	SessionTypeMindRecovery = "mind_recovery"
)

// PAHMCounts is the 3x3 attention grid tallied during one session:
// time axis (present/past/future) crossed with emotional tone
// (attachment/neutral/aversion).
type PAHMCounts struct {
	PresentAttachment int `gorm:"column:present_attachment" json:"present_attachment"`
	PresentNeutral    int `gorm:"column:present_neutral" json:"present_neutral"`
	PresentAversion   int `gorm:"column:present_aversion" json:"present_aversion"`
	PastAttachment    int `gorm:"column:past_attachment" json:"past_attachment"`
	PastNeutral       int `gorm:"column:past_neutral" json:"past_neutral"`
	PastAversion      int `gorm:"column:past_aversion" json:"past_aversion"`
	FutureAttachment  int `gorm:"column:future_attachment" json:"future_attachment"`
	FutureNeutral     int `gorm:"column:future_neutral" json:"future_neutral"`
	FutureAversion    int `gorm:"column:future_aversion" json:"future_aversion"`
}

func (p PAHMCounts) Total() int {
	return p.PresentTotal() + p.PastTotal() + p.FutureTotal()
}

func (p PAHMCounts) PresentTotal() int {
	return p.PresentAttachment + p.PresentNeutral + p.PresentAversion
}

func (p PAHMCounts) PastTotal() int {
	return p.PastAttachment + p.PastNeutral + p.PastAversion
}

func (p PAHMCounts) FutureTotal() int {
	return p.FutureAttachment + p.FutureNeutral + p.FutureAversion
}

func (p PAHMCounts) AttachmentTotal() int {
	return p.PresentAttachment + p.PastAttachment + p.FutureAttachment
}

func (p PAHMCounts) NeutralTotal() int {
	return p.PresentNeutral + p.PastNeutral + p.FutureNeutral
}

func (p PAHMCounts) AversionTotal() int {
	return p.PresentAversion + p.PastAversion + p.FutureAversion
}

// Add accumulates another grid into this one, field by field.
func (p *PAHMCounts) Add(o PAHMCounts) {
	p.PresentAttachment += o.PresentAttachment
	p.PresentNeutral += o.PresentNeutral
	p.PresentAversion += o.PresentAversion
	p.PastAttachment += o.PastAttachment
	p.PastNeutral += o.PastNeutral
	p.PastAversion += o.PastAversion
	p.FutureAttachment += o.FutureAttachment
	p.FutureNeutral += o.FutureNeutral
	p.FutureAversion += o.FutureAversion
}

func (p PAHMCounts) fields() []int {
	return []int{
		p.PresentAttachment, p.PresentNeutral, p.PresentAversion,
		p.PastAttachment, p.PastNeutral, p.PastAversion,
		p.FutureAttachment, p.FutureNeutral, p.FutureAversion,
	}
}

// Environment captures where and how a session took place. All four values
// are free-text, enum-like strings chosen by the user.
type Environment struct {
	Posture  string `json:"posture"`
	Location string `json:"location"`
	Lighting string `json:"lighting"`
	Sounds   string `json:"sounds"`
}

// RecoveryMetrics are the 1-10 self-ratings collected after a mind-recovery
// session.
type RecoveryMetrics struct {
	StressReduction    int `json:"stressReduction"`
	EnergyLevel        int `json:"energyLevel"`
	ClarityImprovement int `json:"clarityImprovement"`
	MoodImprovement    int `json:"moodImprovement"`
}

// PracticeSession is one completed practice unit. It is written atomically
// at session completion and never mutated afterwards; the only lifecycle
// operation after creation is deletion by id.
type PracticeSession struct {
	ID                  string           `gorm:"primaryKey" json:"id"`
	UserID              uint             `gorm:"index" json:"-"`
	Timestamp           time.Time        `gorm:"index" json:"timestamp"`
	DurationMinutes     int              `json:"durationMinutes"`
	SessionType         string           `json:"sessionType"`
	StageLevel          int              `json:"stageLevel,omitempty"`
	Rating              *int             `json:"rating,omitempty"`
	PresentPercentage   *int             `json:"presentPercentage,omitempty"`
	Environment         *Environment     `gorm:"embedded;embeddedPrefix:env_" json:"environment,omitempty"`
	PAHMCounts          *PAHMCounts      `gorm:"embedded;embeddedPrefix:pahm_" json:"pahmCounts,omitempty"`
	RecoveryMetrics     *RecoveryMetrics `gorm:"embedded;embeddedPrefix:recovery_" json:"recoveryMetrics,omitempty"`
	MindRecoveryContext string           `json:"mindRecoveryContext,omitempty"`
	MindRecoveryPurpose string           `json:"mindRecoveryPurpose,omitempty"`
	CreatedAt           time.Time        `json:"-"`
	UpdatedAt           time.Time        `json:"-"`
}

// Validate fails fast on structurally invalid sessions so the analytics
// core never sees them.
func (s *PracticeSession) Validate() error {
	if s.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must be >= 0", ErrInvalidRecord)
	}
	if s.SessionType != SessionTypeMeditation && s.SessionType != SessionTypeMindRecovery {
		return fmt.Errorf("%w: unknown sessionType %q", ErrInvalidRecord, s.SessionType)
	}
	if s.StageLevel != 0 && (s.StageLevel < 1 || s.StageLevel > 6) {
		return fmt.Errorf("%w: stageLevel must be 1-6", ErrInvalidRecord)
	}
	if s.Rating != nil && (*s.Rating < 1 || *s.Rating > 10) {
		return fmt.Errorf("%w: rating must be 1-10", ErrInvalidRecord)
	}
	if s.PresentPercentage != nil && (*s.PresentPercentage < 0 || *s.PresentPercentage > 100) {
		return fmt.Errorf("%w: presentPercentage must be 0-100", ErrInvalidRecord)
	}
	if s.PAHMCounts != nil {
		for _, v := range s.PAHMCounts.fields() {
			if v < 0 {
				return fmt.Errorf("%w: pahmCounts fields must be non-negative", ErrInvalidRecord)
			}
		}
	}
	return nil
}

func (s *PracticeSession) IsMindRecovery() bool {
	return s.SessionType == SessionTypeMindRecovery
}
