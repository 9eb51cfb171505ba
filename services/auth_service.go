package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/apperrors"
	"storefront/logger"
	"storefront/models"
	"storefront/repository"
	"storefront/utils"

	"go.uber.org/zap"
)

// MinPasswordLength is the shortest password change-password accepts.
const MinPasswordLength = 8

// LoginResult is returned on a successful login.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles credential checks and token issue
type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks email and password and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateJWT(user.Email, user.Role())
	if err != nil {
		return nil, apperrors.Backend("Error generating token", err)
	}
	logger.Info(ctx, "User logged in", zap.String("email", user.Email), zap.String("role", user.Role()))
	return &LoginResult{User: user, Token: token}, nil
}

// ChangePassword replaces an admin's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || currentPassword == "" || newPassword == "" {
		return apperrors.Validation("Email, current password, and new password are required")
	}
	if len(newPassword) < MinPasswordLength {
		return apperrors.Validationf("New password must be at least %d characters long", MinPasswordLength)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return apperrors.Backend("Database error", err)
	}
	if !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.Unauthorized("Current password is incorrect")
	}
	if !user.IsAdmin {
		return apperrors.Forbidden("Unauthorized")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.Backend("Error hashing password", err)
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return apperrors.Backend("Database error", err)
	}
	logger.Info(ctx, "Password changed", zap.String("email", email))
	return nil
}

// SeedAdmin creates or resets the admin credential.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Admin email and password are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.Backend("Error hashing password", err)
	}
	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	return user, nil
}

// Authorize parses a bearer token.
func (s *AuthService) Authorize(token string) (*utils.Claims, error) {
	claims, err := s.tokens.ParseJWT(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	return claims, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
