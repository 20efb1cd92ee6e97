package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"spotcheck.app/survey/core/db"
	"spotcheck.app/survey/internal/model"
)

type assignmentStore struct {
	q db.Querier
}

func newAssignmentStore(q db.Querier) AssignmentStore {
	return &assignmentStore{q: q}
}

func (s *assignmentStore) GetByParticipantAndBatch(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, participant_id, batch_no, item_ids, created_at
		FROM batch_assignments
		WHERE participant_id = $1 AND batch_no = $2`,
		participantID, batchNo)
	return scanAssignment(row)
}

func (s *assignmentStore) ListByParticipant(ctx context.Context, participantID string) ([]model.BatchAssignment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, participant_id, batch_no, item_ids, created_at
		FROM batch_assignments
		WHERE participant_id = $1
		ORDER BY batch_no`,
		participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BatchAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *assignmentStore) Create(ctx context.Context, a *model.BatchAssignment) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO batch_assignments (id, participant_id, batch_no, item_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING id, participant_id, batch_no, item_ids, created_at`,
		a.ID, a.ParticipantID, a.BatchNo, a.ItemIDs)
	created, err := scanAssignment(row)
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

func scanAssignment(row pgx.Row) (*model.BatchAssignment, error) {
	var a model.BatchAssignment
	err := row.Scan(&a.ID, &a.ParticipantID, &a.BatchNo, &a.ItemIDs, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
