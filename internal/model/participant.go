package model

import "time"

type Participant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Cohort         string    `json:"cohort"`
	PasswordHash   string    `json:"-"`
	PracticePassed bool      `json:"practice_passed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
