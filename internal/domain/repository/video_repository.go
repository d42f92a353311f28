package repository

import (
	"errors"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
)

var (
	// ErrVideoNotFound is returned when no video matches the id.
	ErrVideoNotFound = errors.New("video not found")
	// ErrDuplicateVideo is returned when the unique video_url index rejects a create.
	ErrDuplicateVideo = errors.New("video already uploaded")
)

// VideoRepository persists video metadata records. Listing is always scoped
// to an owner and ordered by creation time, newest first.
type VideoRepository interface {
	Create(v *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	ListByUser(userID string) ([]entity.Video, error)
}
