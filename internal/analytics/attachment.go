package analytics

import (
	"stillpoint/internal/models"
)

const (
	AttachmentNoData      = "no-data"
	AttachmentNonAttached = "non-attached"
	AttachmentVeryLow     = "very-low"
	AttachmentLow         = "low"
	AttachmentMedium      = "medium"
	AttachmentHigh        = "high"
	AttachmentVeryHigh    = "very-high"
)

type AttachmentSummary struct {
	PenaltyPoints           int     `json:"penaltyPoints"`
	NonAttachmentBonus      int     `json:"nonAttachmentBonus"`
	NonAttachmentPercentage float64 `json:"nonAttachmentPercentage"`
	Level                   string  `json:"level"`
	NoneCount               int     `json:"noneCount"`
	SomeCount               int     `json:"someCount"`
	StrongCount             int     `json:"strongCount"`
	TotalCategories         int     `json:"totalCategories"`
}

// EvaluateAttachment classifies the six-category self-assessment into a
// penalty score and a non-attachment bonus. A missing assessment yields the
// "no-data" sentinel so an unassessed user is never shown as non-attached.
func EvaluateAttachment(assessment *models.SelfAssessment) AttachmentSummary {
	if assessment == nil {
		return AttachmentSummary{Level: AttachmentNoData}
	}

	var none, some, strong int
	for _, category := range models.AttachmentCategories {
		switch assessment.Levels[category] {
		case models.AttachmentNone:
			none++
		case models.AttachmentSome:
			some++
		case models.AttachmentStrong:
			strong++
		}
	}

	total := none + some + strong
	summary := AttachmentSummary{
		PenaltyPoints:   some*25 + strong*75,
		NoneCount:       none,
		SomeCount:       some,
		StrongCount:     strong,
		TotalCategories: total,
	}
	if total > 0 {
		summary.NonAttachmentPercentage = float64(none) / float64(total) * 100
	}

	// First match wins, strictly descending.
	switch {
	case summary.NonAttachmentPercentage >= 80:
		summary.NonAttachmentBonus = 120
	case summary.NonAttachmentPercentage >= 60:
		summary.NonAttachmentBonus = 80
	case summary.NonAttachmentPercentage >= 40:
		summary.NonAttachmentBonus = 40
	case summary.NonAttachmentPercentage >= 20:
		summary.NonAttachmentBonus = 20
	}

	summary.Level = attachmentLevel(none, some, strong)
	return summary
}

func attachmentLevel(none, some, strong int) string {
	switch {
	case strong >= 4:
		return AttachmentVeryHigh
	case strong >= 2 || some >= 4:
		return AttachmentHigh
	case strong >= 1 || some >= 2:
		return AttachmentMedium
	case some >= 1:
		return AttachmentLow
	case none == len(models.AttachmentCategories):
		return AttachmentNonAttached
	default:
		return AttachmentVeryLow
	}
}
