package repository

import (
	"errors"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a create.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the credential store: user records keyed by id with a
// unique constraint on email enforced at write time.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
