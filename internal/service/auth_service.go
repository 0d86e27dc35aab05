package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"aura/internal/auth"
	apperrors "aura/internal/errors"
	"aura/internal/model"
	"aura/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (token string, user model.PublicUser, err error)
	Login(ctx context.Context, email, password string) (token string, user model.PublicUser, err error)
	VerifyToken(ctx context.Context, token string) (model.PublicUser, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password and issues a token.
func (s *authService) Register(ctx context.Context, username, email, password string) (string, model.PublicUser, error) {
	if username == "" || email == "" || password == "" {
		return "", model.PublicUser{}, apperrors.NewValidationError("Please provide all fields")
	}
	if len(password) < minPasswordLength {
		return "", model.PublicUser{}, apperrors.NewValidationError("Password must be at least 6 characters")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", model.PublicUser{}, apperrors.ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", model.PublicUser{}, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return "", model.PublicUser{}, apperrors.ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", model.PublicUser{}, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", model.PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("generate token: %w", err)
	}
	return token, user.Public(), nil
}

// Login authenticates a user by email and password. Unknown emails and wrong
// passwords surface the same error so accounts are not enumerable.
func (s *authService) Login(ctx context.Context, email, password string) (string, model.PublicUser, error) {
	if email == "" || password == "" {
		return "", model.PublicUser{}, apperrors.NewValidationError("Please provide email and password")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", model.PublicUser{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.PublicUser{}, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return "", model.PublicUser{}, fmt.Errorf("update last login: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("generate token: %w", err)
	}
	return token, user.Public(), nil
}

// VerifyToken resolves a bearer token to a currently-existing user.
func (s *authService) VerifyToken(ctx context.Context, token string) (model.PublicUser, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return model.PublicUser{}, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.PublicUser{}, apperrors.ErrInvalidToken
	}
	return user.Public(), nil
}
