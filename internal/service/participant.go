package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"spotcheck.app/survey/common/id"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/store"
)

var (
	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. The message is
	// deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type ParticipantService interface {
	SignUp(ctx context.Context, name, email, cohort, password string) (*model.Participant, error)
	LogIn(ctx context.Context, email, cohort, password string) (*model.Participant, error)
	Get(ctx context.Context, participantID string) (*model.Participant, error)
	UpdateName(ctx context.Context, participantID, name string) (*model.Participant, error)
	MarkPracticePassed(ctx context.Context, participantID string) error
}

type participantService struct {
	participants store.ParticipantStore
}

func NewParticipantService(participants store.ParticipantStore) ParticipantService {
	return &participantService{participants: participants}
}

func (s *participantService) SignUp(ctx context.Context, name, email, cohort, password string) (*model.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.participants.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &model.Participant{
		ID:           id.Participant(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Cohort:       cohort,
		PasswordHash: string(hash),
	}

	if err := s.participants.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating participant: %w", err)
	}
	return p, nil
}

func (s *participantService) LogIn(ctx context.Context, email, cohort, password string) (*model.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var p *model.Participant
	var err error
	if cohort != "" {
		p, err = s.participants.GetByEmailAndCohort(ctx, email, cohort)
	} else {
		p, err = s.participants.GetByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up participant: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *participantService) Get(ctx context.Context, participantID string) (*model.Participant, error) {
	return s.participants.GetByID(ctx, participantID)
}

func (s *participantService) UpdateName(ctx context.Context, participantID, name string) (*model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name must not be empty")
	}

	p, err := s.participants.UpdateName(ctx, participantID, name)
	if err != nil {
		return nil, fmt.Errorf("updating name: %w", err)
	}
	return p, nil
}

func (s *participantService) MarkPracticePassed(ctx context.Context, participantID string) error {
	if err := s.participants.SetPracticePassed(ctx, participantID, true); err != nil {
		return fmt.Errorf("marking practice passed: %w", err)
	}
	return nil
}
