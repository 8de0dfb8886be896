package handlers

import (
	"testing"
	"time"

	"stillpoint/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestTimelineChartOptions(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	data := []repository.TimelineDataPoint{
		{Date: base, Value: 6},
		{Date: base.AddDate(0, 0, 1), Value: 8},
	}

	line := timelineChart(data, "Session Rating")
	require.Len(t, line.MultiSeries, 1)
	require.Equal(t, "Session Rating", line.MultiSeries[0].Name)
	require.Len(t, line.MultiSeries[0].Data, 2)

	require.NotNil(t, line.Tooltip.Show)
	require.True(t, *line.Tooltip.Show)
	require.NotNil(t, line.YAxisList[0].Scale)
	require.True(t, *line.YAxisList[0].Scale)

	// Option payload renders without a browser page wrapper.
	options := line.JSON()
	require.NotNil(t, options)
}

func TestTimelineChartEmptyData(t *testing.T) {
	line := timelineChart(nil, "Present Percentage")
	require.Len(t, line.MultiSeries, 1)
	require.Empty(t, line.MultiSeries[0].Data)
	require.NotNil(t, line.JSON())
}
