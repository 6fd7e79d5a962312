package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// AccountInput carries account create/update fields. Password is optional on
// update; empty keeps the stored hash.
type AccountInput struct {
	Fullname string
	Email    string
	Password string
	Image    string
	Phone    string
	RoleID   int64
}

// AccountService manages accounts. Email lookups are cached in Redis because
// they sit on the login hot path.
type AccountService struct {
	repo     repository.AccountRepository
	cache    *redis.Client
	cacheTTL time.Duration
	authCfg  config.AuthConfig
	logger   *zap.Logger
}

// NewAccountService wires the account service.
func NewAccountService(
	repo repository.AccountRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		authCfg:  authCfg,
		logger:   logger,
	}
}

func accountCacheKey(email string) string {
	return "account:email:" + strings.ToLower(email)
}

// Create stores a new account with a hashed password.
func (s *AccountService) Create(ctx context.Context, input AccountInput) (*domain.Account, error) {
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}
	hash, err := auth.HashPassword(input.Password, s.authCfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	account := &domain.Account{
		Fullname:     input.Fullname,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Image:        input.Image,
		PhoneNumber:  input.Phone,
		RoleID:       input.RoleID,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetByID(ctx, account.ID)
}

// Update modifies an account and drops its cache entry.
func (s *AccountService) Update(ctx context.Context, id int64, input AccountInput) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	oldEmail := account.Email

	account.Fullname = input.Fullname
	account.Email = strings.ToLower(strings.TrimSpace(input.Email))
	account.Image = input.Image
	account.PhoneNumber = input.Phone
	account.RoleID = input.RoleID
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.authCfg.BcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		account.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, oldEmail, account.Email)
	return s.GetByID(ctx, id)
}

// Delete removes an account and drops its cache entry.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, account.Email)
	return nil
}

// GetByID loads one account with role and features.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// GetByEmail resolves an account, consulting the Redis cache first. Cache
// failures fall through to Postgres.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	key := accountCacheKey(email)
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var account domain.Account
			if jsonErr := json.Unmarshal(raw, &account); jsonErr == nil {
				return &account, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("account cache read failed", zap.Error(err))
		}
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, jsonErr := json.Marshal(account); jsonErr == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("account cache write failed", zap.Error(err))
			}
		}
	}
	return account, nil
}

// List returns all accounts ordered by fullname.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return accounts, nil
}

func (s *AccountService) invalidate(ctx context.Context, emails ...string) {
	if s.cache == nil {
		return
	}
	for _, email := range emails {
		if err := s.cache.Del(ctx, accountCacheKey(email)).Err(); err != nil {
			s.logger.Warn("account cache invalidation failed",
				zap.String("email", email),
				zap.Error(err))
		}
	}
}
