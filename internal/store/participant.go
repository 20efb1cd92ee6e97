package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"spotcheck.app/survey/core/db"
	"spotcheck.app/survey/internal/model"
)

type participantStore struct {
	q db.Querier
}

func newParticipantStore(q db.Querier) ParticipantStore {
	return &participantStore{q: q}
}

const participantColumns = `id, name, email, cohort, password_hash, practice_passed, created_at, updated_at`

func (s *participantStore) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	return scanParticipant(row)
}

func (s *participantStore) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE email = $1`, email)
	return scanParticipant(row)
}

func (s *participantStore) GetByEmailAndCohort(ctx context.Context, email, cohort string) (*model.Participant, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE email = $1 AND cohort = $2`,
		email, cohort)
	return scanParticipant(row)
}

func (s *participantStore) Create(ctx context.Context, p *model.Participant) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO participants (id, name, email, cohort, password_hash, practice_passed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+participantColumns,
		p.ID, p.Name, p.Email, p.Cohort, p.PasswordHash, p.PracticePassed)
	created, err := scanParticipant(row)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (s *participantStore) UpdateName(ctx context.Context, id, name string) (*model.Participant, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE participants SET name = $2, updated_at = now() WHERE id = $1
		RETURNING `+participantColumns,
		id, name)
	return scanParticipant(row)
}

func (s *participantStore) SetPracticePassed(ctx context.Context, id string, passed bool) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE participants SET practice_passed = $2, updated_at = now() WHERE id = $1`,
		id, passed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Cohort, &p.PasswordHash,
		&p.PracticePassed, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
