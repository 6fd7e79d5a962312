package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	nextID int64
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.nextID++
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return token, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id int64) error {
	for _, token := range r.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
		}
	}
	return nil
}

func authFixture(t *testing.T) (*AuthService, *fakeAccountRepo, *fakeResetRepo) {
	t.Helper()
	hash, err := auth.HashPassword("correct horse", 4)
	require.NoError(t, err)

	accounts := newFakeAccountRepo(&domain.Account{
		ID:           1,
		Fullname:     "Alice Admin",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         &domain.Role{Name: "admin"},
	})
	resets := newFakeResetRepo()
	cfg := config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   15,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	svc := NewAuthService(accounts, accounts, resets, tokens, cfg, zap.NewNop())
	return svc, accounts, resets
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _, _ := authFixture(t)

	result, err := svc.Login(context.Background(), "Alice@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(1), result.Account.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Second Alice",
		Email:    "alice@example.com",
		Password: "some password",
		RoleID:   1,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _, _ := authFixture(t)

	err := svc.ChangePassword(context.Background(), 1, "wrong", "new password!")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(context.Background(), 1, "correct horse", "new password!"))
	_, err = svc.Login(context.Background(), "alice@example.com", "new password!")
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, resets := authFixture(t)

	token, err := svc.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	require.NoError(t, svc.ResetPassword(context.Background(), token.Token, "brand new pass"))
	_, err = svc.Login(context.Background(), "alice@example.com", "brand new pass")
	assert.NoError(t, err)

	// a consumed token cannot be replayed
	err = svc.ResetPassword(context.Background(), token.Token, "again")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
	assert.NotNil(t, resets.tokens[token.Token].UsedAt)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _, resets := authFixture(t)

	expired := &repository.PasswordResetToken{
		AccountID: 1,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, resets.Create(context.Background(), expired))

	err := svc.ResetPassword(context.Background(), "expired-token", "whatever pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
