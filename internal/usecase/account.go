package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/domain/repository"
	pkgAuth "github.com/roomcraft/referral/internal/pkg/auth"
)

// AccountUseCase handles account lifecycle, referral enrollment and token management.
type AccountUseCase struct {
	accounts repository.AccountRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(accounts repository.AccountRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AccountUseCase {
	return &AccountUseCase{accounts: accounts, hasher: hasher, tokens: strategy}
}

// Register creates a new account, optionally attributed to a referrer's code,
// and returns auth token.
func (u *AccountUseCase) Register(ctx context.Context, login, password, referralCode string) (*model.Account, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	var referrerID *int64
	if code := strings.TrimSpace(referralCode); code != "" {
		referrer, err := u.accounts.GetByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, "", domainErrors.ErrInvalidReferralCode
			}
			return nil, "", err
		}
		referrerID = &referrer.ID
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	account, err := u.accounts.Create(ctx, login, hash, newReferralCode(), referrerID)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(account.ID)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AccountUseCase) Authenticate(ctx context.Context, login, password string) (*model.Account, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	account, err := u.accounts.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(account.ID)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// ParseToken extracts account ID from provided token.
func (u *AccountUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches account by identifier.
func (u *AccountUseCase) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return u.accounts.GetByID(ctx, id)
}

func newReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
