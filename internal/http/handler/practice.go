package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/store"
)

type PracticeHandler struct {
	practiceService service.PracticeService
}

func NewPracticeHandler(practiceService service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// Session returns the warm-up round payload: practice items, the
// participant's records, and the curated reference records.
func (h *PracticeHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.practiceService.Session(ctx, c.Param("id"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to load practice session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load practice session"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Complete records that the participant has finished the warm-up round.
func (h *PracticeHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.practiceService.Complete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to complete practice", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete practice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"practice_passed": true})
}
