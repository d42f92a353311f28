package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	"github.com/dimasadyaksa/vidstream/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

func (r *VideoRepository) Create(v *entity.Video) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO videos (title, description, video_url, thumbnail_url, controls,
			t_height, t_width, t_quality, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.Controls,
		v.Transformation.Height, v.Transformation.Width, v.Transformation.Quality, v.UserID)

	if err := row.Scan(&v.ID, &v.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateVideo
		}
		return err
	}
	return nil
}

func (r *VideoRepository) GetByID(id string) (*entity.Video, error) {
	ctx := context.Background()
	v := &entity.Video{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, video_url, thumbnail_url, controls,
			t_height, t_width, t_quality, user_id, created_at
		FROM videos
		WHERE id = $1
	`, id)

	if err := scanVideo(row, v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, err
	}

	return v, nil
}

func (r *VideoRepository) ListByUser(userID string) ([]entity.Video, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, video_url, thumbnail_url, controls,
			t_height, t_width, t_quality, user_id, created_at
		FROM videos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]entity.Video, 0)
	for rows.Next() {
		var v entity.Video
		if err := scanVideo(rows, &v); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func scanVideo(row pgx.Row, v *entity.Video) error {
	return row.Scan(&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
		&v.Controls, &v.Transformation.Height, &v.Transformation.Width,
		&v.Transformation.Quality, &v.UserID, &v.CreatedAt)
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
