package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/roomcraft/referral/internal/config"
	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/domain/repository"
)

// LedgerUseCase accrues commissions on referred payments and reverses them on
// refunds while the hold period lasts.
type LedgerUseCase struct {
	accounts   repository.AccountRepository
	earnings   repository.EarningRepository
	balances   repository.BalanceRepository
	holdPeriod time.Duration
	percent    float64
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(
	accounts repository.AccountRepository,
	earnings repository.EarningRepository,
	balances repository.BalanceRepository,
	cfg *config.Config,
) *LedgerUseCase {
	return &LedgerUseCase{
		accounts:   accounts,
		earnings:   earnings,
		balances:   balances,
		holdPeriod: cfg.HoldPeriod,
		percent:    cfg.CommissionPercent,
	}
}

// RecordPayment accrues a commission for the payer's referrer. Returns nil
// without error when the payer has no referrer.
func (u *LedgerUseCase) RecordPayment(ctx context.Context, payerID int64, amount float64, paymentRef string) (*model.Earning, error) {
	if amount <= 0 || strings.TrimSpace(paymentRef) == "" {
		return nil, domainErrors.ErrInvalidAmount
	}

	payer, err := u.accounts.GetByID(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer.ReferrerID == nil {
		return nil, nil
	}

	now := time.Now()
	earning := model.Earning{
		AccountID:     *payer.ReferrerID,
		ReferredID:    payer.ID,
		ReferredEmail: payer.Login,
		PaymentRef:    paymentRef,
		Amount:        model.CommissionAmount(amount, u.percent),
		OrderAmount:   amount,
		Percentage:    u.percent,
		AvailableAt:   now.Add(u.holdPeriod),
	}

	return u.earnings.Record(ctx, earning)
}

// Reverse claws back commissions accrued on the refunded customer's payments,
// newest first, and returns the total amount reversed.
func (u *LedgerUseCase) Reverse(ctx context.Context, payerEmail string, refundAmount float64) (float64, error) {
	if refundAmount <= 0 || strings.TrimSpace(payerEmail) == "" {
		return 0, domainErrors.ErrInvalidAmount
	}
	return u.earnings.Reverse(ctx, payerEmail, refundAmount, time.Now())
}

// Summary returns aggregated balance info for account.
func (u *LedgerUseCase) Summary(ctx context.Context, accountID int64) (*model.BalanceSummary, error) {
	return u.balances.Summary(ctx, accountID, time.Now())
}

// Earnings returns the account's accrual history sorted by time.
func (u *LedgerUseCase) Earnings(ctx context.Context, accountID int64) ([]model.Earning, error) {
	return u.earnings.ListByAccount(ctx, accountID)
}
