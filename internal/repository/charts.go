// server/internal/repository/charts.go
package repository

import (
	"context"
	"time"

	"stillpoint/internal/database"
)

type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SessionRatingTimeline returns the user's rated sessions as (date, rating)
// points for the timeline chart. Unrated sessions carry no point.
func SessionRatingTimeline(ctx context.Context, userID uint) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint

	query := `
		SELECT
			"timestamp" AS date,
			rating AS value
		FROM practice_sessions
		WHERE user_id = ? AND rating IS NOT NULL
		ORDER BY "timestamp";
	`

	err := database.DB.WithContext(ctx).Raw(query, userID).Scan(&data).Error
	return data, err
}

// PresenceTimeline returns recorded present-percentage points over time.
func PresenceTimeline(ctx context.Context, userID uint) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint

	query := `
		SELECT
			"timestamp" AS date,
			present_percentage AS value
		FROM practice_sessions
		WHERE user_id = ? AND present_percentage IS NOT NULL
		ORDER BY "timestamp";
	`

	err := database.DB.WithContext(ctx).Raw(query, userID).Scan(&data).Error
	return data, err
}
