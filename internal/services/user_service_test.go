package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/repositories"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
}

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	user := &models.User{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByEmail", user.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := userService.Register(user)
	assert.NoError(t, err)
	// The stored password is never the submitted plaintext.
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, credentials.CheckPassword("password123", user.Password))
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	user := &models.User{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()

	err := userService.Register(user)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	hash, _ := credentials.HashPassword("password123")
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: hash,
		IsAdmin:  false,
	}

	// Successful login returns a token that parses back to the same user.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	loggedIn, token, err := userService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := credentials.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.False(t, claims.IsAdmin)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_NoCredentialOracle(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	hash, _ := credentials.HashPassword("password123")
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: hash,
	}

	// Wrong password.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, wrongPassErr := userService.Login("test@example.com", "wrongpassword")
	assert.Error(t, wrongPassErr)
	assert.ErrorIs(t, wrongPassErr, apperrors.ErrUnauthorized)

	// Unknown email.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("user")).Once()
	_, _, unknownErr := userService.Login("nobody@example.com", "password123")
	assert.Error(t, unknownErr)
	assert.ErrorIs(t, unknownErr, apperrors.ErrUnauthorized)

	// Both failures are indistinguishable to the caller.
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	oldHash, _ := credentials.HashPassword("oldpassword")
	user := &models.User{
		ID:       "user-123",
		Name:     "Old Name",
		Email:    "test@example.com",
		Password: oldHash,
	}

	newName := "New Name"
	newPassword := "newpassword"

	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := userService.UpdateProfile("user-123", services.ProfileUpdate{
		Name:     &newName,
		Password: &newPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	// New password stored hashed and verifiable, old one invalidated.
	assert.NotEqual(t, newPassword, updated.Password)
	assert.True(t, credentials.CheckPassword("newpassword", updated.Password))
	assert.False(t, credentials.CheckPassword("oldpassword", updated.Password))
	mockRepo.AssertExpectations(t)
}

// TestUserService_AccountLifecycle runs register, login and profile update
// against the in-memory repository, so every repository method is exercised
// on real stored state rather than mock expectations.
func TestUserService_AccountLifecycle(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(userRepo, credentials)

	user := &models.User{
		Name:     "John",
		Email:    "john@example.com",
		Password: "password123",
	}
	assert.NoError(t, userService.Register(user))
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)

	// A second registration with the same email is rejected by the stored
	// state, not a mock expectation.
	err := userService.Register(&models.User{
		Name:     "John Again",
		Email:    "john@example.com",
		Password: "password456",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	loggedIn, token, err := userService.Login("john@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := credentials.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	profile, err := userService.GetProfile(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "John", profile.Name)

	newName := "Johnny"
	newPassword := "newpassword"
	updated, err := userService.UpdateProfile(user.ID, services.ProfileUpdate{
		Name:     &newName,
		Password: &newPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)

	// Only the new password logs in after the update.
	_, _, err = userService.Login("john@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, _, err = userService.Login("john@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	credentials := services.NewCredentialService("test_jwt_secret")
	userService := services.NewUserService(mockRepo, credentials)

	mockRepo.On("GetByID", "missing").Return(nil, notFoundErr("user")).Once()

	_, err := userService.UpdateProfile("missing", services.ProfileUpdate{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
