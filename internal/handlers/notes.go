package handlers

import (
	"errors"
	"net/http"

	"stillpoint/internal/models"
	"stillpoint/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotesHandler struct {
	log *zap.Logger
}

func NewNotesHandler(log *zap.Logger) *NotesHandler {
	return &NotesHandler{log: log}
}

func (h *NotesHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var note models.EmotionalNote
	if err := c.ShouldBindJSON(&note); err != nil {
		h.log.Error("Failed to bind emotional note", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := repository.CreateNote(c.Request.Context(), user.ID, &note); err != nil {
		if errors.Is(err, models.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to save emotional note", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *NotesHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notes, err := repository.GetNotes(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load emotional notes", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *NotesHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := repository.DeleteNote(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to delete emotional note", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.Status(http.StatusNoContent)
}
