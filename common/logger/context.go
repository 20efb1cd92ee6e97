package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Business context (participant_id, image_id, etc.) flows through
// context enrichment so individual log statements stay terse.
type LogFields struct {
	ParticipantID *string
	ImageID       *int64
	BatchNo       *int
	Practice      *bool
	Component     string // e.g. "survey.session", "survey.reconcile"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.ParticipantID != nil {
		result.ParticipantID = next.ParticipantID
	}
	if next.ImageID != nil {
		result.ImageID = next.ImageID
	}
	if next.BatchNo != nil {
		result.BatchNo = next.BatchNo
	}
	if next.Practice != nil {
		result.Practice = next.Practice
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value, useful for setting
// LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
