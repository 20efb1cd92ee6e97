// Package queue publishes annotation audit events onto a Redis stream for
// downstream analysis pipelines. Publishing is fire-and-forget from the
// caller's perspective; a failed publish never fails the save it describes.
package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	EventResponseSaved   = "response.saved"
	EventResponseSkipped = "response.skipped"
	EventPracticePassed  = "practice.passed"
)

type AuditEvent struct {
	EventType     string
	ParticipantID string
	ImageID       int64
	IsPractice    bool
	ResponseID    int64
	TraceID       *string
}

type Producer interface {
	Publish(ctx context.Context, evt AuditEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, evt AuditEvent) error {
	fields := map[string]any{
		"event_type":     evt.EventType,
		"participant_id": evt.ParticipantID,
		"image_id":       evt.ImageID,
		"is_practice":    evt.IsPractice,
	}

	if evt.ResponseID != 0 {
		fields["response_id"] = evt.ResponseID
	}
	if evt.TraceID != nil && *evt.TraceID != "" {
		fields["trace_id"] = *evt.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}

	p.logger.InfoContext(ctx, "published audit event", "event_type", evt.EventType, "participant_id", evt.ParticipantID, "image_id", evt.ImageID, "is_practice", evt.IsPractice)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// NoopProducer drops every event. Used when no Redis URL is configured.
type NoopProducer struct{}

func (NoopProducer) Publish(context.Context, AuditEvent) error { return nil }
func (NoopProducer) Close() error                              { return nil }
