package service

import (
	"context"
	"errors"
	"fmt"

	"itemtrack/internal/common"
	"itemtrack/internal/common/security"
	"itemtrack/internal/domain/model"
	"itemtrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthService struct {
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *logrus.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, log: log}
}

type SignupRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the slim user projection returned alongside a fresh token.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Signup creates an account and mints a token for it. The admin flag is never
// accepted from the caller: every signup starts as a regular user.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var messages []string
	if req.Email == "" {
		messages = append(messages, msgEmailBlank)
	} else if !validEmail(req.Email) {
		messages = append(messages, msgEmailInvalid)
	}
	if len(req.Password) < minPasswordLength {
		messages = append(messages, msgPasswordTooShort)
	}
	if req.Password != req.PasswordConfirmation {
		messages = append(messages, msgPasswordConfirmation)
	}
	if len(messages) > 0 {
		return nil, common.NewValidationError(messages...)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewValidationError(msgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user signed up")
	return &AuthResponse{Token: token, User: AuthUser{ID: user.ID, Email: user.Email}}, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &AuthResponse{Token: token, User: AuthUser{ID: user.ID, Email: user.Email}}, nil
}
