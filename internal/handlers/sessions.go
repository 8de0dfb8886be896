package handlers

import (
	"errors"
	"net/http"

	"stillpoint/internal/models"
	"stillpoint/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionsHandler struct {
	log *zap.Logger
}

func NewSessionsHandler(log *zap.Logger) *SessionsHandler {
	return &SessionsHandler{log: log}
}

func (h *SessionsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var session models.PracticeSession
	if err := c.ShouldBindJSON(&session); err != nil {
		h.log.Error("Failed to bind practice session", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := repository.CreateSession(c.Request.Context(), user.ID, &session); err != nil {
		if errors.Is(err, models.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to save practice session", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessions, err := repository.GetSessions(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load practice sessions", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionsHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := repository.DeleteSession(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to delete practice session", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	c.Status(http.StatusNoContent)
}
