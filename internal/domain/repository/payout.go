package repository

import (
	"context"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
)

// PayoutRepository manages payout request lifecycle.
type PayoutRepository interface {
	// Create snapshots the available balance into a pending request. The checks
	// (no open request, non-negative balance, minimum met) run under an account
	// row lock so concurrent requests cannot double-spend.
	Create(ctx context.Context, accountID int64, minAmount float64, now time.Time) (*model.PayoutRequest, error)
	// Resolve performs the single legal terminal transition; a paid decision
	// debits the owning account in the same transaction.
	Resolve(ctx context.Context, requestID int64, decision model.PayoutStatus, now time.Time) (*model.PayoutRequest, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.PayoutRequest, error)
	SelectUnnotified(ctx context.Context, limit int) ([]model.PayoutRequest, error)
	MarkNotified(ctx context.Context, requestID int64, now time.Time) error
}
