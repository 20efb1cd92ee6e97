package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/http/dto"
	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/store"
)

type SurveyHandler struct {
	surveyService     service.SurveyService
	assignmentService service.AssignmentService
}

func NewSurveyHandler(surveyService service.SurveyService, assignmentService service.AssignmentService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:     surveyService,
		assignmentService: assignmentService,
	}
}

// ListBatches deals the participant's batches on first contact and returns
// their summaries.
func (h *SurveyHandler) ListBatches(c *gin.Context) {
	ctx := c.Request.Context()

	batches, err := h.assignmentService.EnsureBatches(ctx, c.Param("id"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to assign batches", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign batches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": dto.ToBatchSummaries(batches)})
}

// GetBatch returns the full session payload for one batch.
func (h *SurveyHandler) GetBatch(c *gin.Context) {
	ctx := c.Request.Context()

	batchNo, err := strconv.Atoi(c.Param("no"))
	if err != nil || batchNo < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch number"})
		return
	}

	sess, err := h.surveyService.BatchSession(ctx, c.Param("id"), batchNo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load batch session", "error", err, "batch_no", batchNo)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// SaveResponse upserts one answer.
func (h *SurveyHandler) SaveResponse(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := req.ToModel(c.Param("id"))
	if err := h.surveyService.SaveResponse(ctx, &rec); err != nil {
		if errors.Is(err, service.ErrEmptySave) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "response carries no judgment"})
			return
		}
		slog.ErrorContext(ctx, "failed to save response", "error", err, "image_id", req.ImageID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save response"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Skip records a minimal skip marker for an image.
func (h *SurveyHandler) Skip(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.surveyService.SkipImage(ctx, c.Param("id"), req.ImageID, req.IsPractice)
	if err != nil {
		slog.ErrorContext(ctx, "failed to skip image", "error", err, "image_id", req.ImageID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to skip image"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Progress summarizes completion across every batch.
func (h *SurveyHandler) Progress(c *gin.Context) {
	ctx := c.Request.Context()

	progress, err := h.surveyService.Progress(ctx, c.Param("id"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to compute progress", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": progress})
}
