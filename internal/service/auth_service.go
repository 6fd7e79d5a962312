package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// RegisterInput carries account self-registration fields.
type RegisterInput struct {
	Fullname string
	Email    string
	Password string
	Image    string
	Phone    string
	RoleID   int64
}

// LoginResult bundles an issued token with the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// AuthService implements registration, login and password recovery.
type AuthService struct {
	accounts AccountReader
	writer   repository.AccountRepository
	resets   repository.PasswordResetRepository
	tokens   *auth.TokenManager
	cfg      config.AuthConfig
	logger   *zap.Logger
}

// AccountReader is the lookup surface AuthService needs. The cached account
// service satisfies it so logins hit Redis before Postgres.
type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// NewAuthService wires the auth service.
func NewAuthService(
	reader AccountReader,
	writer repository.AccountRepository,
	resets repository.PasswordResetRepository,
	tokens *auth.TokenManager,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: reader,
		writer:   writer,
		resets:   resets,
		tokens:   tokens,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates an account with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.writer.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	account := &domain.Account{
		Fullname:     input.Fullname,
		Email:        email,
		PasswordHash: hash,
		Image:        input.Image,
		PhoneNumber:  input.Phone,
		RoleID:       input.RoleID,
	}
	if err := s.writer.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("account registered", zap.Int64("account_id", account.ID))
	return s.writer.GetByID(ctx, account.ID)
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	roleName := ""
	if account.Role != nil {
		roleName = account.Role.Name
	}
	token, expiresAt, err := s.tokens.GenerateToken(account.ID, account.Email, roleName)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, current, next string) error {
	account, err := s.writer.GetByID(ctx, accountID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password does not match")
	}
	hash, err := auth.HashPassword(next, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	account.PasswordHash = hash
	return apperrors.MapError(s.writer.Update(ctx, account))
}

// RequestPasswordReset issues a single-use reset token. The token is returned
// to the caller; delivery (mail, SMS) is out of band.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	account, err := s.writer.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	token := &repository.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.PasswordResetTTLMinutes) * time.Minute),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	return token, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid reset token")
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("reset token expired")
	}

	account, err := s.writer.GetByID(ctx, token.AccountID)
	if err != nil {
		return apperrors.MapError(err)
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	account.PasswordHash = hash
	if err := s.writer.Update(ctx, account); err != nil {
		return apperrors.MapError(err)
	}
	return apperrors.MapError(s.resets.MarkUsed(ctx, token.ID))
}
