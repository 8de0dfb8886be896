package handlers

import (
	"errors"
	"net/http"

	"stillpoint/internal/models"
	"stillpoint/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler serves the one-time questionnaire and the six-category
// attachment self-assessment.
type OnboardingHandler struct {
	log    *zap.Logger
	survey *models.Survey
}

func NewOnboardingHandler(log *zap.Logger, survey *models.Survey) *OnboardingHandler {
	return &OnboardingHandler{log: log, survey: survey}
}

type questionnaireRequest struct {
	Answers  map[string]any `json:"answers" binding:"required"`
	Complete bool           `json:"complete"`
}

// SaveQuestionnaire accepts a batch of answers keyed by question id or any
// of its legacy aliases, normalizes them to canonical ids and upserts the
// user's questionnaire. Answers may be revised until the complete flag is
// sent; completion is one-way.
func (h *OnboardingHandler) SaveQuestionnaire(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind questionnaire answers", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	answers := repository.NormalizeAnswers(h.survey, req.Answers)
	q := repository.QuestionnaireFromAnswers(answers)

	if err := repository.SaveQuestionnaire(c.Request.Context(), user.ID, q, req.Complete); err != nil {
		h.log.Error("Failed to save questionnaire", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save questionnaire"})
		return
	}

	c.JSON(http.StatusOK, q)
}

func (h *OnboardingHandler) GetQuestionnaire(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q, err := repository.GetQuestionnaire(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load questionnaire", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load questionnaire"})
		return
	}
	if q == nil {
		c.JSON(http.StatusOK, gin.H{"questionnaire": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": q})
}

type assessmentRequest struct {
	Categories models.CategoryLevels `json:"categories"`
	Responses  map[string]struct {
		Level   string `json:"level"`
		Details string `json:"details"`
	} `json:"responses"`
}

// SaveSelfAssessment accepts the six-category attachment assessment either
// as a flat categories map or as a responses map with per-category details.
// Only one canonical map is stored; it is accepted exactly once.
func (h *OnboardingHandler) SaveSelfAssessment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind self-assessment", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	assessment := &models.SelfAssessment{Levels: req.Categories}
	if len(req.Responses) > 0 {
		if assessment.Levels == nil {
			assessment.Levels = make(models.CategoryLevels, len(req.Responses))
		}
		details := make(models.CategoryLevels)
		for category, response := range req.Responses {
			if _, present := assessment.Levels[category]; !present {
				assessment.Levels[category] = response.Level
			}
			if response.Details != "" {
				details[category] = response.Details
			}
		}
		if len(details) > 0 {
			assessment.Details = details
		}
	}
	if len(assessment.Levels) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No assessment categories submitted"})
		return
	}

	err := repository.SaveSelfAssessment(c.Request.Context(), user.ID, assessment)
	if errors.Is(err, models.ErrInvalidRecord) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, repository.ErrAlreadyCompleted) {
		c.JSON(http.StatusConflict, gin.H{"error": "Self-assessment already completed"})
		return
	}
	if err != nil {
		h.log.Error("Failed to save self-assessment", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save self-assessment"})
		return
	}

	c.JSON(http.StatusCreated, assessmentView(assessment))
}

func (h *OnboardingHandler) GetSelfAssessment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assessment, err := repository.GetSelfAssessment(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load self-assessment", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load self-assessment"})
		return
	}
	if assessment == nil {
		c.JSON(http.StatusOK, gin.H{"assessment": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessmentView(assessment)})
}

// assessmentView rebuilds the legacy redundant shapes (flat per-category
// fields and a responses map) from the canonical categories map, for
// clients that still read the old representation.
func assessmentView(a *models.SelfAssessment) gin.H {
	responses := make(gin.H, len(models.AttachmentCategories))
	view := gin.H{
		"categories": a.Levels,
		"completed":  a.Completed,
	}
	for _, category := range models.AttachmentCategories {
		level, present := a.Levels[category]
		if !present {
			continue
		}
		view[category] = level
		entry := gin.H{"level": level}
		if detail, ok := a.Details[category]; ok {
			entry["details"] = detail
		}
		responses[category] = entry
	}
	view["responses"] = responses
	return view
}
