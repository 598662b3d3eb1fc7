package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bountyboard/bounty-service/internal/auth"
	"github.com/bountyboard/bounty-service/internal/config"
	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/repository"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates a new account with the requested role.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, string, time.Time, error) {
	if !role.Valid() {
		return nil, "", time.Time{}, errors.New("role must be company or developer")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RequestPasswordReset persists a reset token for the account email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return errors.New("token expired or used")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return errors.New("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
