package handlers

import (
	"net/http"
	"time"

	"stillpoint/internal/analytics"
	"stillpoint/internal/models"
	"stillpoint/internal/repository"
	"stillpoint/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the pure analyzers over the user's stored
// records. Every endpoint loads the records it needs and hands them to the
// analytics package unchanged; no aggregation happens in the handler.
type AnalyticsHandler struct {
	log   *zap.Logger
	cache *services.ScoreCache
}

func NewAnalyticsHandler(log *zap.Logger, cache *services.ScoreCache) *AnalyticsHandler {
	return &AnalyticsHandler{log: log, cache: cache}
}

func (h *AnalyticsHandler) loadSessions(c *gin.Context) ([]models.PracticeSession, *models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, nil, false
	}

	sessions, err := repository.GetSessions(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load sessions for analytics", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return nil, nil, false
	}
	return sessions, user, true
}

func (h *AnalyticsHandler) Temporal(c *gin.Context) {
	sessions, _, ok := h.loadSessions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateTemporalMetrics(sessions, time.Now()))
}

// Attention returns null, not zeroed percentages, when no session carries
// attention observations. Clients rely on the distinction.
func (h *AnalyticsHandler) Attention(c *gin.Context) {
	sessions, _, ok := h.loadSessions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateAttentionDistribution(sessions))
}

func (h *AnalyticsHandler) Environment(c *gin.Context) {
	sessions, _, ok := h.loadSessions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateEnvironmentAnalytics(sessions))
}

func (h *AnalyticsHandler) MindRecovery(c *gin.Context) {
	sessions, _, ok := h.loadSessions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateMindRecoveryAnalytics(sessions))
}

func (h *AnalyticsHandler) Attachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assessment, err := repository.GetSelfAssessment(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load self-assessment for analytics", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load self-assessment"})
		return
	}
	c.JSON(http.StatusOK, analytics.EvaluateAttachment(assessment))
}

// Happiness composes the full score. The composition itself is cheap but
// loads three collections, so the result is memoized against the
// collections' change markers; any record write moves a marker and the next
// request recomputes.
func (h *AnalyticsHandler) Happiness(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	markers, err := repository.GetChangeMarkers(ctx, user.ID)
	if err != nil {
		h.log.Error("Failed to read change markers", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute happiness score"})
		return
	}
	key := services.ChangeKey(markers)
	if score, hit := h.cache.Get(user.ID, key); hit {
		c.JSON(http.StatusOK, score)
		return
	}

	questionnaire, err := repository.GetQuestionnaire(ctx, user.ID)
	if err != nil {
		h.log.Error("Failed to load questionnaire for happiness score", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute happiness score"})
		return
	}
	assessment, err := repository.GetSelfAssessment(ctx, user.ID)
	if err != nil {
		h.log.Error("Failed to load self-assessment for happiness score", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute happiness score"})
		return
	}
	sessions, err := repository.GetSessions(ctx, user.ID)
	if err != nil {
		h.log.Error("Failed to load sessions for happiness score", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute happiness score"})
		return
	}

	score := analytics.ComposeHappiness(questionnaire, assessment, sessions, time.Now())
	h.cache.Put(user.ID, key, score)
	c.JSON(http.StatusOK, score)
}
