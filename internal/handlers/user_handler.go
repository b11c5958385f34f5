package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/middleware"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
)

// UserHandler handles HTTP requests for registration, login and profiles.
type UserHandler struct {
	userService *services.UserService
	credentials *services.CredentialService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, credentials *services.CredentialService) *UserHandler {
	return &UserHandler{
		userService: userService,
		credentials: credentials,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)

	profileRoutes := userRoutes.Group("/profile", middleware.AuthRequired(h.credentials))
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
}

// RegisterRequest is the allow-list of fields accepted at registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.userService.Register(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		if errors.Is(err, apperrors.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token. An unknown email
// and a wrong password produce the identical response body.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, token, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid email or password")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log in",
		})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"token":    token,
	})
}

// HandleGetProfile returns the authenticated user's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := h.userService.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
		})
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies allow-listed changes to the authenticated
// user's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.userService.UpdateProfile(userID, update)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case errors.Is(err, apperrors.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Profile update failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}
	return c.JSON(user)
}

// validationErrorResponse renders a validator error as a per-field 400 body.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
