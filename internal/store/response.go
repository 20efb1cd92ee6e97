package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"spotcheck.app/survey/common/id"
	"spotcheck.app/survey/core/db"
	"spotcheck.app/survey/internal/model"
)

type responseStore struct {
	q db.Querier
}

func newResponseStore(q db.Querier) ResponseStore {
	return &responseStore{q: q}
}

const responseColumns = `id, participant_id, image_id, is_practice, is_skip, no_flaw,
	reasons_overall, reasons_flaws, duration_ms, created_at, updated_at`

// Upsert writes a response keyed on (participant_id, image_id, is_practice).
// If the unique index backing ON CONFLICT is missing (42P10 on databases
// provisioned before the index migration), it degrades to a find-then-write
// sequence with the same net effect.
func (s *responseStore) Upsert(ctx context.Context, rec *model.Response) error {
	flaws, err := marshalFlaws(rec.ReasonsFlaws)
	if err != nil {
		return err
	}

	if rec.ID == 0 {
		rec.ID = id.New()
	}

	row := s.q.QueryRow(ctx, `
		INSERT INTO responses (id, participant_id, image_id, is_practice, is_skip, no_flaw,
			reasons_overall, reasons_flaws, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (participant_id, image_id, is_practice) DO UPDATE SET
			is_skip = EXCLUDED.is_skip,
			no_flaw = EXCLUDED.no_flaw,
			reasons_overall = EXCLUDED.reasons_overall,
			reasons_flaws = EXCLUDED.reasons_flaws,
			duration_ms = EXCLUDED.duration_ms,
			updated_at = now()
		RETURNING `+responseColumns,
		rec.ID, rec.ParticipantID, rec.ImageID, rec.IsPractice, rec.IsSkip, rec.NoFlaw,
		reasonsOrEmpty(rec.ReasonsOverall), flaws, rec.DurationMS)

	saved, err := scanResponse(row)
	if err == nil {
		*rec = *saved
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42P10" {
		return err
	}
	return s.upsertFallback(ctx, rec, flaws)
}

func (s *responseStore) upsertFallback(ctx context.Context, rec *model.Response, flaws []byte) error {
	existing, err := s.GetByKey(ctx, rec.ParticipantID, rec.ImageID, rec.IsPractice)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	var row pgx.Row
	if existing != nil {
		row = s.q.QueryRow(ctx, `
			UPDATE responses SET
				is_skip = $2, no_flaw = $3, reasons_overall = $4,
				reasons_flaws = $5, duration_ms = $6, updated_at = now()
			WHERE id = $1
			RETURNING `+responseColumns,
			existing.ID, rec.IsSkip, rec.NoFlaw,
			reasonsOrEmpty(rec.ReasonsOverall), flaws, rec.DurationMS)
	} else {
		row = s.q.QueryRow(ctx, `
			INSERT INTO responses (id, participant_id, image_id, is_practice, is_skip, no_flaw,
				reasons_overall, reasons_flaws, duration_ms)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING `+responseColumns,
			rec.ID, rec.ParticipantID, rec.ImageID, rec.IsPractice, rec.IsSkip, rec.NoFlaw,
			reasonsOrEmpty(rec.ReasonsOverall), flaws, rec.DurationMS)
	}

	saved, err := scanResponse(row)
	if err != nil {
		return err
	}
	*rec = *saved
	return nil
}

func (s *responseStore) GetByKey(ctx context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+responseColumns+` FROM responses
		WHERE participant_id = $1 AND image_id = $2 AND is_practice = $3`,
		participantID, imageID, isPractice)
	return scanResponse(row)
}

func (s *responseStore) ListByParticipant(ctx context.Context, participantID string, isPractice bool) ([]model.Response, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+responseColumns+` FROM responses
		WHERE participant_id = $1 AND is_practice = $2
		ORDER BY image_id`,
		participantID, isPractice)
	if err != nil {
		return nil, err
	}
	return collectResponses(rows)
}

func (s *responseStore) ListByParticipantAndImages(ctx context.Context, participantID string, imageIDs []int64, isPractice bool) ([]model.Response, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+responseColumns+` FROM responses
		WHERE participant_id = $1 AND image_id = ANY($2) AND is_practice = $3
		ORDER BY image_id`,
		participantID, imageIDs, isPractice)
	if err != nil {
		return nil, err
	}
	return collectResponses(rows)
}

func scanResponse(row pgx.Row) (*model.Response, error) {
	var (
		rec   model.Response
		flaws []byte
	)
	err := row.Scan(&rec.ID, &rec.ParticipantID, &rec.ImageID, &rec.IsPractice,
		&rec.IsSkip, &rec.NoFlaw, &rec.ReasonsOverall, &flaws, &rec.DurationMS,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := unmarshalFlaws(flaws, &rec.ReasonsFlaws); err != nil {
		return nil, err
	}
	if rec.ReasonsOverall == nil {
		rec.ReasonsOverall = []string{}
	}
	return &rec, nil
}

func collectResponses(rows pgx.Rows) ([]model.Response, error) {
	defer rows.Close()
	var out []model.Response
	for rows.Next() {
		rec, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func marshalFlaws(flaws []model.ResponseFlaw) ([]byte, error) {
	if flaws == nil {
		flaws = []model.ResponseFlaw{}
	}
	b, err := json.Marshal(flaws)
	if err != nil {
		return nil, fmt.Errorf("encoding flaw markers: %w", err)
	}
	return b, nil
}

func unmarshalFlaws(b []byte, out *[]model.ResponseFlaw) error {
	*out = []model.ResponseFlaw{}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decoding flaw markers: %w", err)
	}
	return nil
}

func reasonsOrEmpty(reasons []string) []string {
	if reasons == nil {
		return []string{}
	}
	return reasons
}
