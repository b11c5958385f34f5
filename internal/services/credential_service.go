package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
)

// Claims is the set of fields embedded in a signed token.
type Claims struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

// CredentialService handles password hashing and token issuance/verification.
type CredentialService struct {
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewCredentialService creates a new CredentialService. Tokens are valid for
// 24 hours.
func NewCredentialService(jwtSecret string) *CredentialService {
	return &CredentialService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// HashPassword returns a salted bcrypt hash of the plaintext password.
func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. A malformed hash counts as a mismatch, never an error.
func (s *CredentialService) CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken generates a signed JWT embedding the user's identity claims.
func (s *CredentialService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates a JWT and returns the claims it carries. Expired,
// tampered and wrongly-signed tokens are all rejected.
func (s *CredentialService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["name"].(string); ok {
		claims.Name = v
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["is_admin"].(bool); ok {
		claims.IsAdmin = v
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user identity: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
