package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/http/dto"
	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/store"
)

type ParticipantHandler struct {
	participantService service.ParticipantService
}

func NewParticipantHandler(participantService service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

func (h *ParticipantHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.participantService.SignUp(ctx, req.Name, req.Email, req.Cohort, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		slog.ErrorContext(ctx, "failed to sign up participant", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign up"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToParticipantResponse(p))
}

func (h *ParticipantHandler) LogIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LogInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.participantService.LogIn(ctx, req.Email, req.Cohort, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		slog.ErrorContext(ctx, "failed to log in participant", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantResponse(p))
}

func (h *ParticipantHandler) UpdateName(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.participantService.UpdateName(ctx, c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update participant name", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update name"})
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantResponse(p))
}

func (h *ParticipantHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.participantService.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load participant", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load participant"})
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantResponse(p))
}
