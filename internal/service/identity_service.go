// Package service contains the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// IdentityService handles account creation and credential checks.
type IdentityService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	FullName string
	Username string
	Email    string
	Mobile   string
	Password string
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Signup creates a new account. Username and email uniqueness is enforced by
// the insert itself, so a conflict surfaces as a CONFLICT error rather than a
// pre-check race.
func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Mobile = strings.TrimSpace(in.Mobile)

	if in.FullName == "" {
		return nil, models.NewValidationError("Full name is required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FullName: in.FullName,
		Username: in.Username,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

// Login resolves identifier as a username first and falls back to email, then
// checks the password against the stored bcrypt hash. The two lookups are
// sequential so a username always shadows an identical email.
func (s *IdentityService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, models.NewValidationError("Identifier and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		observability.LoginsTotal.WithLabelValues("not_found").Inc()
		return nil, models.NewNotFoundError("User", identifier)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, models.NewUnauthorizedError("Incorrect password")
	}

	observability.LoginsTotal.WithLabelValues("ok").Inc()
	return user.Sanitized(), nil
}
