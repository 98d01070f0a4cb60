package handlers

import (
	"context"

	"github.com/roomcraft/referral/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, referralCode string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// LedgerFacade encapsulates commission ledger operations exposed via HTTP.
type LedgerFacade interface {
	Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error)
	Earnings(ctx context.Context, accountID int64) ([]model.Earning, error)
	ReferralInfo(ctx context.Context, accountID int64) (*model.Account, error)
	RecordPayment(ctx context.Context, payerID int64, amount float64, paymentRef string) (*model.Earning, error)
	RecordRefund(ctx context.Context, payerEmail string, amount float64) (float64, error)
}

// PayoutFacade provides payout related operations.
type PayoutFacade interface {
	RequestPayout(ctx context.Context, accountID int64) (*model.PayoutRequest, error)
	Payouts(ctx context.Context, accountID int64) ([]model.PayoutRequest, error)
	ResolvePayout(ctx context.Context, requestID int64, decision string) (*model.PayoutRequest, error)
}

// ReferralFacade aggregates the full set of operations used across handlers.
type ReferralFacade interface {
	AuthFacade
	LedgerFacade
	PayoutFacade
}
