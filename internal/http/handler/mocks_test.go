package handler_test

import (
	"context"

	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/store"
)

type mockParticipantService struct {
	signUpFn             func(ctx context.Context, name, email, cohort, password string) (*model.Participant, error)
	logInFn              func(ctx context.Context, email, cohort, password string) (*model.Participant, error)
	getFn                func(ctx context.Context, participantID string) (*model.Participant, error)
	updateNameFn         func(ctx context.Context, participantID, name string) (*model.Participant, error)
	markPracticePassedFn func(ctx context.Context, participantID string) error
}

func (m *mockParticipantService) SignUp(ctx context.Context, name, email, cohort, password string) (*model.Participant, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, name, email, cohort, password)
	}
	return nil, nil
}

func (m *mockParticipantService) LogIn(ctx context.Context, email, cohort, password string) (*model.Participant, error) {
	if m.logInFn != nil {
		return m.logInFn(ctx, email, cohort, password)
	}
	return nil, nil
}

func (m *mockParticipantService) UpdateName(ctx context.Context, participantID, name string) (*model.Participant, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, participantID, name)
	}
	return nil, store.ErrNotFound
}

func (m *mockParticipantService) Get(ctx context.Context, participantID string) (*model.Participant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, participantID)
	}
	return nil, store.ErrNotFound
}

func (m *mockParticipantService) MarkPracticePassed(ctx context.Context, participantID string) error {
	if m.markPracticePassedFn != nil {
		return m.markPracticePassedFn(ctx, participantID)
	}
	return nil
}

type mockSurveyService struct {
	batchSessionFn func(ctx context.Context, participantID string, batchNo int) (*service.BatchSession, error)
	saveResponseFn func(ctx context.Context, rec *model.Response) error
	skipImageFn    func(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error)
	progressFn     func(ctx context.Context, participantID string) ([]model.BatchProgress, error)
}

func (m *mockSurveyService) BatchSession(ctx context.Context, participantID string, batchNo int) (*service.BatchSession, error) {
	if m.batchSessionFn != nil {
		return m.batchSessionFn(ctx, participantID, batchNo)
	}
	return &service.BatchSession{}, nil
}

func (m *mockSurveyService) SaveResponse(ctx context.Context, rec *model.Response) error {
	if m.saveResponseFn != nil {
		return m.saveResponseFn(ctx, rec)
	}
	return nil
}

func (m *mockSurveyService) SkipImage(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error) {
	if m.skipImageFn != nil {
		return m.skipImageFn(ctx, participantID, imageID, isPractice)
	}
	return &model.Response{}, nil
}

func (m *mockSurveyService) Progress(ctx context.Context, participantID string) ([]model.BatchProgress, error) {
	if m.progressFn != nil {
		return m.progressFn(ctx, participantID)
	}
	return nil, nil
}

type mockAssignmentService struct {
	ensureBatchesFn func(ctx context.Context, participantID string) ([]model.BatchAssignment, error)
	batchFn         func(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error)
}

func (m *mockAssignmentService) EnsureBatches(ctx context.Context, participantID string) ([]model.BatchAssignment, error) {
	if m.ensureBatchesFn != nil {
		return m.ensureBatchesFn(ctx, participantID)
	}
	return nil, nil
}

func (m *mockAssignmentService) Batch(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error) {
	if m.batchFn != nil {
		return m.batchFn(ctx, participantID, batchNo)
	}
	return nil, store.ErrNotFound
}

type mockPracticeService struct {
	sessionFn  func(ctx context.Context, participantID string) (*service.PracticeSession, error)
	completeFn func(ctx context.Context, participantID string) error
}

func (m *mockPracticeService) Session(ctx context.Context, participantID string) (*service.PracticeSession, error) {
	if m.sessionFn != nil {
		return m.sessionFn(ctx, participantID)
	}
	return &service.PracticeSession{}, nil
}

func (m *mockPracticeService) Complete(ctx context.Context, participantID string) error {
	if m.completeFn != nil {
		return m.completeFn(ctx, participantID)
	}
	return nil
}
