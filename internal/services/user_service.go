package services

import (
	"errors"
	"fmt"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/repositories"
)

// UserService handles business logic for accounts: registration, login and
// profile management.
type UserService struct {
	userRepo    repositories.UserRepository
	credentials *CredentialService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, credentials *CredentialService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		credentials: credentials,
	}
}

// Register creates a new user with a hashed password. A duplicate email is a
// validation failure, distinct from a persistence failure.
func (s *UserService) Register(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrValidation)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := s.credentials.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user by email and password and issues a token. An
// unknown email and a wrong password return the identical error so callers
// cannot tell which check failed.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if !s.credentials.CheckPassword(password, user.Password) {
		return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.credentials.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile retrieves a user by ID.
func (s *UserService) GetProfile(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ProfileUpdate is the allow-list of fields a user may change on their own
// profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateProfile applies the allow-listed fields to a user's profile. A new
// password is re-hashed before storage.
func (s *UserService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil && *update.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(*update.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("email '%s' already registered: %w", *update.Email, apperrors.ErrValidation)
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := s.credentials.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
