// Package service implements the business logic layer: validation,
// authorization guards, and orchestration between repositories and
// external storage.
package service

import (
	"context"

	"campstead/internal/models"
	"campstead/internal/repository"
	"campstead/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// IdentityService handles registration and credential verification.
type IdentityService struct {
	users repository.UserRepository
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// Register validates and creates a new account. The caller binds the
// session; this layer never sees cookies.
func (s *IdentityService) Register(ctx context.Context, in validation.RegistrationInput) (*models.User, error) {
	if errs := validation.ValidateRegistration(in); len(errs) > 0 {
		return nil, models.NewValidationError(validation.Join(errs))
	}

	// Pre-check for a friendly message; the unique index catches races.
	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.users.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, models.NewAuthenticationError("Username or email is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords produce the same error so the response does not leak
// which accounts exist.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthenticationError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewAuthenticationError("Invalid username or password")
	}
	return user, nil
}

// GetByID resolves a session's bound user ID to the full principal.
func (s *IdentityService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
