package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	repo "github.com/dimasadyaksa/vidstream/internal/domain/repository"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
	"github.com/dimasadyaksa/vidstream/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService implements signup, login and profile lookup.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher // welcome email queue; optional
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher) *UserService {
	return &UserService{Repo: r, JWT: jwt, Logger: logger, Pub: pub}
}

// Session is the issued bearer credential plus its expiry, to be set as the
// `token` cookie by the handler.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Signup hashes the password, creates the credential record and issues a
// session token. A concurrent signup for the same email loses on the unique
// index and surfaces as ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*entity.User, Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, Session{}, ErrEmailTaken
		}
		return nil, Session{}, err
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}

	if s.Pub != nil {
		if pErr := s.Pub.PublishJSON(ctx, mailer.WelcomeEmail(u.Name, u.Email)); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("email", u.Email).Warn("welcome email publish failed")
		}
	}
	return u, sess, nil
}

// Login verifies the password against the stored bcrypt hash and issues a
// fresh session token. Unknown email and wrong password stay distinct because
// the HTTP contract maps them to 404 and 401 respectively.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, Session{}, ErrUserNotFound
		}
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, ErrInvalidCredentials
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

func (s *UserService) issueSession(u *entity.User) (Session, error) {
	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// GetProfile fetches the user for an authenticated id.
func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
