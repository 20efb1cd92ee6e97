package service

import (
	"context"
	"fmt"
	"log/slog"

	"spotcheck.app/survey/core/config"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/queue"
	"spotcheck.app/survey/internal/storage"
	"spotcheck.app/survey/internal/store"
)

// PracticeSession carries everything the warm-up round needs: the practice
// items, the participant's own records, and the curated reference records.
type PracticeSession struct {
	Items      []BatchItem      `json:"items"`
	Records    []model.Response `json:"records"`
	References []model.Response `json:"references"`
}

type PracticeService interface {
	Session(ctx context.Context, participantID string) (*PracticeSession, error)
	Complete(ctx context.Context, participantID string) error
}

type practiceService struct {
	participants ParticipantService
	responses    store.ResponseStore
	images       store.ImageStore
	resolver     *storage.Resolver
	producer     queue.Producer
	cfg          config.SurveyConfig
	logger       *slog.Logger
}

func NewPracticeService(participants ParticipantService, responses store.ResponseStore, images store.ImageStore, resolver *storage.Resolver, producer queue.Producer, cfg config.SurveyConfig, logger *slog.Logger) PracticeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &practiceService{
		participants: participants,
		responses:    responses,
		images:       images,
		resolver:     resolver,
		producer:     producer,
		cfg:          cfg,
		logger:       logger,
	}
}

// Session loads the practice round. Reference answers come from the curator
// account named in config; with no curator configured the references are
// simply empty and the client shows the reference view as unavailable.
func (s *practiceService) Session(ctx context.Context, participantID string) (*PracticeSession, error) {
	images, err := s.images.ListPractice(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing practice images: %w", err)
	}

	items := make([]BatchItem, 0, len(images))
	itemIDs := make([]int64, 0, len(images))
	for _, img := range images {
		item := BatchItem{ID: img.ID, URL: s.resolver.PublicURL(img.StoragePath)}
		if alt, ok := s.resolver.AltURL(img.StoragePath); ok {
			item.AltURL = alt
		}
		items = append(items, item)
		itemIDs = append(itemIDs, img.ID)
	}

	records, err := s.responses.ListByParticipantAndImages(ctx, participantID, itemIDs, true)
	if err != nil {
		return nil, fmt.Errorf("listing practice responses: %w", err)
	}

	var references []model.Response
	if s.cfg.ReferenceParticipantID != "" {
		references, err = s.responses.ListByParticipantAndImages(ctx, s.cfg.ReferenceParticipantID, itemIDs, true)
		if err != nil {
			return nil, fmt.Errorf("listing reference responses: %w", err)
		}
	}

	return &PracticeSession{
		Items:      items,
		Records:    records,
		References: references,
	}, nil
}

// Complete flips the practice-passed flag once the round is done.
func (s *practiceService) Complete(ctx context.Context, participantID string) error {
	if err := s.participants.MarkPracticePassed(ctx, participantID); err != nil {
		return err
	}

	if s.producer != nil {
		evt := queue.AuditEvent{
			EventType:     queue.EventPracticePassed,
			ParticipantID: participantID,
			IsPractice:    true,
		}
		if err := s.producer.Publish(ctx, evt); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish audit event", "error", err, "event_type", evt.EventType)
		}
	}
	return nil
}
