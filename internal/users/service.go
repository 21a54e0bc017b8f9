package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"medvault-backend/internal/shared/auth"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login failures don't reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service contains account business logic.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account and issues an access token.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", errors.New("a valid email is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := auth.SignToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID fetches a user by id.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
