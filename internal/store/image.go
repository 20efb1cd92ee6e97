package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"spotcheck.app/survey/core/db"
	"spotcheck.app/survey/internal/model"
)

type imageStore struct {
	q db.Querier
}

func newImageStore(q db.Querier) ImageStore {
	return &imageStore{q: q}
}

func (s *imageStore) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	row := s.q.QueryRow(ctx,
		`SELECT id, storage_path, is_practice, created_at FROM images WHERE id = $1`, id)
	var img model.Image
	err := row.Scan(&img.ID, &img.StoragePath, &img.IsPractice, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (s *imageStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Image, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, storage_path, is_practice, created_at FROM images WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (s *imageStore) ListPractice(ctx context.Context) ([]model.Image, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, storage_path, is_practice, created_at FROM images WHERE is_practice ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (s *imageStore) ListMain(ctx context.Context) ([]model.Image, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, storage_path, is_practice, created_at FROM images WHERE NOT is_practice ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (s *imageStore) Create(ctx context.Context, img *model.Image) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO images (id, storage_path, is_practice)
		VALUES ($1, $2, $3)
		RETURNING id, storage_path, is_practice, created_at`,
		img.ID, img.StoragePath, img.IsPractice)
	return row.Scan(&img.ID, &img.StoragePath, &img.IsPractice, &img.CreatedAt)
}

func collectImages(rows pgx.Rows) ([]model.Image, error) {
	defer rows.Close()
	var out []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.StoragePath, &img.IsPractice, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}
