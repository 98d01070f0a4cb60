package repository

import (
	"context"

	"github.com/roomcraft/referral/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, login, passwordHash, referralCode string, referrerID *int64) (*model.Account, error)
	GetByLogin(ctx context.Context, login string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByReferralCode(ctx context.Context, code string) (*model.Account, error)
}
