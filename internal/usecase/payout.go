package usecase

import (
	"context"
	"time"

	"github.com/roomcraft/referral/internal/config"
	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/domain/repository"
)

// PayoutUseCase manages payout requests and their resolution.
type PayoutUseCase struct {
	payouts   repository.PayoutRepository
	minPayout float64
}

// NewPayoutUseCase constructs PayoutUseCase.
func NewPayoutUseCase(payouts repository.PayoutRepository, cfg *config.Config) *PayoutUseCase {
	return &PayoutUseCase{payouts: payouts, minPayout: cfg.MinPayout}
}

// Request opens a payout request for the account's entire available balance.
func (u *PayoutUseCase) Request(ctx context.Context, accountID int64) (*model.PayoutRequest, error) {
	return u.payouts.Create(ctx, accountID, u.minPayout, time.Now())
}

// Resolve applies an operator decision to a pending request.
func (u *PayoutUseCase) Resolve(ctx context.Context, requestID int64, decision string) (*model.PayoutRequest, error) {
	var status model.PayoutStatus
	switch decision {
	case string(model.PayoutStatusPaid):
		status = model.PayoutStatusPaid
	case string(model.PayoutStatusRejected):
		status = model.PayoutStatusRejected
	default:
		return nil, domainErrors.ErrInvalidDecision
	}
	return u.payouts.Resolve(ctx, requestID, status, time.Now())
}

// History returns the account's payout requests sorted by time.
func (u *PayoutUseCase) History(ctx context.Context, accountID int64) ([]model.PayoutRequest, error) {
	return u.payouts.ListByAccount(ctx, accountID)
}

// Unnotified returns pending requests the operator has not been told about yet.
func (u *PayoutUseCase) Unnotified(ctx context.Context, limit int) ([]model.PayoutRequest, error) {
	return u.payouts.SelectUnnotified(ctx, limit)
}

// MarkNotified records that the operator was told about the request.
func (u *PayoutUseCase) MarkNotified(ctx context.Context, requestID int64) error {
	return u.payouts.MarkNotified(ctx, requestID, time.Now())
}
