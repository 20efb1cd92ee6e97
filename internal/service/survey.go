package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spotcheck.app/survey/core/config"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/queue"
	"spotcheck.app/survey/internal/reconcile"
	"spotcheck.app/survey/internal/storage"
	"spotcheck.app/survey/internal/store"
)

// ErrEmptySave is returned when a non-skip save carries no judgment at all.
// The session layer already blocks these; this is the server-side backstop.
var ErrEmptySave = errors.New("response carries no judgment")

// BatchItem is one image of a batch with its resolved URLs.
type BatchItem struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	AltURL string `json:"alt_url,omitempty"`
}

// BatchSession is everything a client needs to resume a batch: the dealt
// items in order and every response recorded against them so far.
type BatchSession struct {
	BatchNo int              `json:"batch_no"`
	Items   []BatchItem      `json:"items"`
	Records []model.Response `json:"records"`
}

type SurveyService interface {
	BatchSession(ctx context.Context, participantID string, batchNo int) (*BatchSession, error)
	SaveResponse(ctx context.Context, rec *model.Response) error
	SkipImage(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error)
	Progress(ctx context.Context, participantID string) ([]model.BatchProgress, error)
}

type surveyService struct {
	responses   store.ResponseStore
	images      store.ImageStore
	assignments AssignmentService
	resolver    *storage.Resolver
	producer    queue.Producer
	cfg         config.SurveyConfig
	logger      *slog.Logger
}

func NewSurveyService(responses store.ResponseStore, images store.ImageStore, assignments AssignmentService, resolver *storage.Resolver, producer queue.Producer, cfg config.SurveyConfig, logger *slog.Logger) SurveyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &surveyService{
		responses:   responses,
		images:      images,
		assignments: assignments,
		resolver:    resolver,
		producer:    producer,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *surveyService) BatchSession(ctx context.Context, participantID string, batchNo int) (*BatchSession, error) {
	batch, err := s.assignments.Batch(ctx, participantID, batchNo)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, batch.ItemIDs)
	if err != nil {
		return nil, err
	}

	records, err := s.responses.ListByParticipantAndImages(ctx, participantID, batch.ItemIDs, false)
	if err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}

	return &BatchSession{
		BatchNo: batch.BatchNo,
		Items:   items,
		Records: records,
	}, nil
}

// SaveResponse upserts a full answer. The write runs under the configured
// save timeout so a stalled database surfaces as an error the participant
// can retry instead of a silent hang.
func (s *surveyService) SaveResponse(ctx context.Context, rec *model.Response) error {
	if !rec.IsSkip && !rec.NoFlaw && len(rec.ReasonsOverall) == 0 && len(rec.ReasonsFlaws) == 0 {
		return ErrEmptySave
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SaveTimeout)
	defer cancel()

	if err := s.responses.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("saving response: %w", err)
	}

	s.publish(ctx, queue.AuditEvent{
		EventType:     queue.EventResponseSaved,
		ParticipantID: rec.ParticipantID,
		ImageID:       rec.ImageID,
		IsPractice:    rec.IsPractice,
		ResponseID:    rec.ID,
	})
	return nil
}

// SkipImage records a minimal skip marker for the image.
func (s *surveyService) SkipImage(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SaveTimeout)
	defer cancel()

	rec := reconcile.SkipRecord(participantID, imageID, isPractice)
	if err := s.responses.Upsert(ctx, &rec); err != nil {
		return nil, fmt.Errorf("recording skip: %w", err)
	}

	s.publish(ctx, queue.AuditEvent{
		EventType:     queue.EventResponseSkipped,
		ParticipantID: participantID,
		ImageID:       imageID,
		IsPractice:    isPractice,
		ResponseID:    rec.ID,
	})
	return &rec, nil
}

// Progress summarizes every batch of the participant.
func (s *surveyService) Progress(ctx context.Context, participantID string) ([]model.BatchProgress, error) {
	batches, err := s.assignments.EnsureBatches(ctx, participantID)
	if err != nil {
		return nil, err
	}

	records, err := s.responses.ListByParticipant(ctx, participantID, false)
	if err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}

	out := make([]model.BatchProgress, 0, len(batches))
	for _, b := range batches {
		answers := reconcile.BuildAnswers(b.ItemIDs, records)
		completed, skipped := reconcile.Progress(b.ItemIDs, answers)
		out = append(out, model.BatchProgress{
			BatchNo:        b.BatchNo,
			TotalCount:     len(b.ItemIDs),
			CompletedCount: completed,
			SkippedCount:   skipped,
			IsFinished:     reconcile.AllDone(b.ItemIDs, answers),
		})
	}
	return out, nil
}

func (s *surveyService) resolveItems(ctx context.Context, itemIDs []int64) ([]BatchItem, error) {
	images, err := s.images.ListByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	byID := make(map[int64]model.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}

	items := make([]BatchItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		img, ok := byID[itemID]
		if !ok {
			// Assignment rows can outlive a withdrawn image; skip it rather
			// than break the whole batch.
			s.logger.WarnContext(ctx, "assigned image missing from pool", "image_id", itemID)
			continue
		}
		item := BatchItem{ID: img.ID, URL: s.resolver.PublicURL(img.StoragePath)}
		if alt, ok := s.resolver.AltURL(img.StoragePath); ok {
			item.AltURL = alt
		}
		items = append(items, item)
	}
	return items, nil
}

// publish never fails the operation that produced the event.
func (s *surveyService) publish(ctx context.Context, evt queue.AuditEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish audit event", "error", err, "event_type", evt.EventType)
	}
}
