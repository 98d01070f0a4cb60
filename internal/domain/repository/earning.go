package repository

import (
	"context"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
)

// EarningRepository manages the append-only commission ledger.
type EarningRepository interface {
	// Record inserts an accrual and credits the beneficiary balance atomically.
	// A duplicate payment reference yields ErrDuplicateAccrual.
	Record(ctx context.Context, earning model.Earning) (*model.Earning, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Earning, error)
	// Reverse walks unmatured earnings of the referred party most-recent-first,
	// cancelling them until the refund is absorbed. Returns total commission
	// clawed back.
	Reverse(ctx context.Context, referredEmail string, refundAmount float64, now time.Time) (float64, error)
}

// BalanceRepository computes point-in-time balance aggregates.
type BalanceRepository interface {
	Summary(ctx context.Context, accountID int64, now time.Time) (*model.BalanceSummary, error)
}
