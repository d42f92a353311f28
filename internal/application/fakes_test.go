package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	repo "github.com/dimasadyaksa/vidstream/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres behaviour: id/timestamps are
// assigned on insert and the unique indexes decide conflicts.

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[u.Email]; exists {
		return repo.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrUserNotFound
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos []entity.Video
	byURL  map[string]bool
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{byURL: make(map[string]bool)}
}

func (f *fakeVideoRepo) Create(v *entity.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byURL[v.VideoURL] {
		return repo.ErrDuplicateVideo
	}
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().Add(time.Duration(len(f.videos)) * time.Millisecond)
	f.byURL[v.VideoURL] = true
	f.videos = append(f.videos, *v)
	return nil
}

func (f *fakeVideoRepo) GetByID(id string) (*entity.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID == id {
			cp := f.videos[i]
			return &cp, nil
		}
	}
	return nil, repo.ErrVideoNotFound
}

func (f *fakeVideoRepo) ListByUser(userID string) ([]entity.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Video, 0)
	// newest first: reverse insertion order
	for i := len(f.videos) - 1; i >= 0; i-- {
		if f.videos[i].UserID == userID {
			out = append(out, f.videos[i])
		}
	}
	return out, nil
}

var (
	_ repo.UserRepository  = (*fakeUserRepo)(nil)
	_ repo.VideoRepository = (*fakeVideoRepo)(nil)
)
