package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/auth"
	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// UserService exposes user account operations.
type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService builds a UserService on top of the user repository.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{repo: repo, hasher: hasher, now: time.Now}
}

// CreateUser registers a new account. The existence check and the insert share
// one transaction; a unique-index violation at commit is reported the same way.
func (s *userService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password must be at most 72 bytes")
		}
		return nil, err
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		existing, err := repo.FindByEmail(ctx, email)
		if err == nil && existing != nil {
			return apperrors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check user existence: %w", err)
		}
		return repo.Create(ctx, user)
	})
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, apperrors.ErrEmailTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, apperrors.ErrEmailTaken
	default:
		return nil, fmt.Errorf("create user: %w", err)
	}
}

// FindUserByEmail returns nil without error when no user has the email.
func (s *userService) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return orNil(s.repo.FindByEmail(ctx, email))
}

// FindUserByID returns nil without error when the user does not exist.
func (s *userService) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return orNil(s.repo.FindByID(ctx, id))
}

// Authenticate checks an email and password pair. Unknown emails still pay for a
// bcrypt comparison so both failure cases take about the same time.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		s.hasher.Verify(password, s.dummy())
		return nil, apperrors.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}

func orNil(user *model.User, err error) (*model.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
