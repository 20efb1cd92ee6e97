package dto

import (
	"time"

	"spotcheck.app/survey/internal/model"
)

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Cohort   string `json:"cohort" binding:"omitempty,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LogInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Cohort   string `json:"cohort" binding:"omitempty,max=64"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ParticipantResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Cohort         string    `json:"cohort,omitempty"`
	PracticePassed bool      `json:"practice_passed"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToParticipantResponse(p *model.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Cohort:         p.Cohort,
		PracticePassed: p.PracticePassed,
		CreatedAt:      p.CreatedAt,
	}
}
