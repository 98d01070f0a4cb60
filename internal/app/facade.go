package app

import (
	"context"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/usecase"
)

type ReferralFacade struct {
	accounts *usecase.AccountUseCase
	ledger   *usecase.LedgerUseCase
	payouts  *usecase.PayoutUseCase
}

func NewReferralFacade(accounts *usecase.AccountUseCase, ledger *usecase.LedgerUseCase, payouts *usecase.PayoutUseCase) *ReferralFacade {
	return &ReferralFacade{accounts: accounts, ledger: ledger, payouts: payouts}
}

func (f *ReferralFacade) Register(ctx context.Context, login, password, referralCode string) (string, error) {
	_, token, err := f.accounts.Register(ctx, login, password, referralCode)
	return token, err
}

func (f *ReferralFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.accounts.Authenticate(ctx, login, password)
	return token, err
}

func (f *ReferralFacade) ParseToken(token string) (int64, error) {
	return f.accounts.ParseToken(token)
}

func (f *ReferralFacade) ReferralInfo(ctx context.Context, accountID int64) (*model.Account, error) {
	return f.accounts.GetByID(ctx, accountID)
}

func (f *ReferralFacade) Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error) {
	summary, err := f.ledger.Summary(ctx, accountID)
	if err != nil {
		if err == domainErrors.ErrNotFound {
			return &model.BalanceSummary{}, nil
		}
		return nil, err
	}
	return summary, nil
}

func (f *ReferralFacade) Earnings(ctx context.Context, accountID int64) ([]model.Earning, error) {
	return f.ledger.Earnings(ctx, accountID)
}

func (f *ReferralFacade) RecordPayment(ctx context.Context, payerID int64, amount float64, paymentRef string) (*model.Earning, error) {
	return f.ledger.RecordPayment(ctx, payerID, amount, paymentRef)
}

func (f *ReferralFacade) RecordRefund(ctx context.Context, payerEmail string, amount float64) (float64, error) {
	return f.ledger.Reverse(ctx, payerEmail, amount)
}

func (f *ReferralFacade) RequestPayout(ctx context.Context, accountID int64) (*model.PayoutRequest, error) {
	return f.payouts.Request(ctx, accountID)
}

func (f *ReferralFacade) Payouts(ctx context.Context, accountID int64) ([]model.PayoutRequest, error) {
	return f.payouts.History(ctx, accountID)
}

func (f *ReferralFacade) ResolvePayout(ctx context.Context, requestID int64, decision string) (*model.PayoutRequest, error) {
	return f.payouts.Resolve(ctx, requestID, decision)
}

func (f *ReferralFacade) PayoutsForNotification(ctx context.Context, limit int) ([]model.PayoutRequest, error) {
	return f.payouts.Unnotified(ctx, limit)
}

func (f *ReferralFacade) MarkPayoutNotified(ctx context.Context, requestID int64) error {
	return f.payouts.MarkNotified(ctx, requestID)
}
