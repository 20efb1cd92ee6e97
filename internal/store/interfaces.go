package store

import (
	"context"
	"errors"

	"spotcheck.app/survey/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ParticipantStore defines the contract for participant data access
type ParticipantStore interface {
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
	GetByEmailAndCohort(ctx context.Context, email, cohort string) (*model.Participant, error)
	Create(ctx context.Context, p *model.Participant) error
	UpdateName(ctx context.Context, id, name string) (*model.Participant, error)
	SetPracticePassed(ctx context.Context, id string, passed bool) error
}

// ImageStore defines the contract for image metadata access
type ImageStore interface {
	GetByID(ctx context.Context, id int64) (*model.Image, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Image, error)
	ListPractice(ctx context.Context) ([]model.Image, error)
	ListMain(ctx context.Context) ([]model.Image, error)
	Create(ctx context.Context, img *model.Image) error
}

// ResponseStore defines the contract for response data access. Upsert is
// keyed on (participant_id, image_id, is_practice): one answer per
// participant per image per mode, re-saves overwrite.
type ResponseStore interface {
	Upsert(ctx context.Context, rec *model.Response) error
	GetByKey(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error)
	ListByParticipant(ctx context.Context, participantID string, isPractice bool) ([]model.Response, error)
	ListByParticipantAndImages(ctx context.Context, participantID string, imageIDs []int64, isPractice bool) ([]model.Response, error)
}

// AssignmentStore defines the contract for per-participant batch assignments
type AssignmentStore interface {
	GetByParticipantAndBatch(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error)
	ListByParticipant(ctx context.Context, participantID string) ([]model.BatchAssignment, error)
	Create(ctx context.Context, a *model.BatchAssignment) error
}
