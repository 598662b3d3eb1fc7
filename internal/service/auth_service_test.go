package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bountyboard/bounty-service/internal/config"
	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/repository"
)

type memResetRepo struct {
	seq     int
	byToken map[string]*repository.PasswordResetToken
	byID    map[string]*repository.PasswordResetToken
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{
		byToken: map[string]*repository.PasswordResetToken{},
		byID:    map[string]*repository.PasswordResetToken{},
	}
}

func (m *memResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	m.seq++
	token.ID = fmt.Sprintf("reset-%d", m.seq)
	token.CreatedAt = time.Now()
	m.byToken[token.Token] = token
	m.byID[token.ID] = token
	return nil
}

func (m *memResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := m.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (m *memResetRepo) MarkUsed(_ context.Context, id string) error {
	token, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

func newAuthFixture() (*AuthService, *memUserRepo, *memResetRepo) {
	users := newMemUserRepo()
	resets := newMemResetRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   5,
			PasswordResetTTLMinutes: 10,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: users, PasswordResetRepo: resets})
	return svc, users, resets
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, "Acme", "acme@example.com", "hunter2!", domain.RoleCompany)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))
	require.Equal(t, int64(0), user.Balance, "accounts start with a zero balance")

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, domain.RoleCompany, claims.Role)

	loggedIn, _, _, err := svc.Login(ctx, "acme@example.com", "hunter2!")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, _, err := svc.Register(context.Background(), "X", "x@example.com", "pw", domain.UserRole("admin"))
	require.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Acme", "acme@example.com", "pw1", domain.RoleCompany)
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Imposter", "acme@example.com", "pw2", domain.RoleDeveloper)
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Acme", "acme@example.com", "correct", domain.RoleCompany)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "acme@example.com", "wrong")
	require.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Dev", "dev@example.com", "oldpw", domain.RoleDeveloper)
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "dev@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "newpw"))

	_, _, _, err = svc.Login(ctx, "dev@example.com", "oldpw")
	require.Error(t, err)
	_, _, _, err = svc.Login(ctx, "dev@example.com", "newpw")
	require.NoError(t, err)

	require.Error(t, svc.ConfirmPasswordReset(ctx, token.Token, "again"), "a reset token is single use")
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Dev", "dev@example.com", "oldpw", domain.RoleDeveloper)
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(ctx, user.ID, "wrong", "newpw"))
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "oldpw", "newpw"))

	_, _, _, err = svc.Login(ctx, "dev@example.com", "newpw")
	require.NoError(t, err)
}
