package handlers

import (
	"net/http"

	"stillpoint/internal/analytics"
	"stillpoint/internal/models"
	"stillpoint/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartsHandler renders chart option payloads for the dashboard. Charts are
// built server-side with go-echarts and shipped as option JSON; the client
// only instantiates them.
type ChartsHandler struct {
	log *zap.Logger
}

func NewChartsHandler(log *zap.Logger) *ChartsHandler {
	return &ChartsHandler{log: log}
}

// AttentionPie renders the 3x3 attention matrix folded to its time axis as
// a pie chart. No tracked observations means no chart.
func (h *ChartsHandler) AttentionPie(c *gin.Context) {
	sessions, _, ok := h.loadSessions(c)
	if !ok {
		return
	}

	attention := analytics.CalculateAttentionDistribution(sessions)
	if attention == nil {
		c.JSON(http.StatusOK, gin.H{"chart": nil})
		return
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Attention Distribution",
			Subtitle: "Where attention rested across all tracked sessions",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries("Time orientation", []opts.PieData{
		{Name: "Present", Value: attention.TimeDistribution.Present},
		{Name: "Past", Value: attention.TimeDistribution.Past},
		{Name: "Future", Value: attention.TimeDistribution.Future},
	}).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)

	c.JSON(http.StatusOK, gin.H{"chart": pie.JSON()})
}

// RatingTimeline renders session ratings over time as a line chart.
func (h *ChartsHandler) RatingTimeline(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, err := repository.SessionRatingTimeline(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to get rating timeline data", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": timelineChart(data, "Session Rating").JSON()})
}

// PresenceTimeline renders recorded present-percentage over time.
func (h *ChartsHandler) PresenceTimeline(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, err := repository.PresenceTimeline(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to get presence timeline data", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": timelineChart(data, "Present Percentage").JSON()})
}

func (h *ChartsHandler) loadSessions(c *gin.Context) ([]models.PracticeSession, *models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, nil, false
	}

	sessions, err := repository.GetSessions(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load sessions for chart", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return nil, nil, false
	}
	return sessions, user, true
}

func timelineChart(data []repository.TimelineDataPoint, metricLabel string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Practice Over Time",
			Subtitle: metricLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(data))
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries(metricLabel, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
