package test

import (
	"context"
	"time"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	Accounts map[string]*model.Account
	ByID     map[int64]*model.Account
	ByCode   map[string]*model.Account
	Next     int64
	Err      error
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		Accounts: make(map[string]*model.Account),
		ByID:     make(map[int64]*model.Account),
		ByCode:   make(map[string]*model.Account),
		Next:     1,
	}
}

// Create registers account unless already exists or stub has explicit error.
func (s *AccountRepositoryStub) Create(ctx context.Context, login, passwordHash, referralCode string, referrerID *int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]*model.Account)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Account)
	}
	if s.ByCode == nil {
		s.ByCode = make(map[string]*model.Account)
	}
	if _, exists := s.Accounts[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	account := &model.Account{
		ID:           s.Next,
		Login:        login,
		PasswordHash: passwordHash,
		ReferralCode: referralCode,
		ReferrerID:   referrerID,
	}
	s.Next++
	s.Accounts[login] = account
	s.ByID[account.ID] = account
	s.ByCode[referralCode] = account
	return account, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *AccountRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.Accounts[login]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.ByID[id]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByReferralCode fetches account owning the code or returns not found.
func (s *AccountRepositoryStub) GetByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.ByCode[code]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// EarningRepositoryStub allows tests to customize ledger behaviour.
type EarningRepositoryStub struct {
	RecordFn        func(context.Context, model.Earning) (*model.Earning, error)
	ListByAccountFn func(context.Context, int64) ([]model.Earning, error)
	ReverseFn       func(context.Context, string, float64, time.Time) (float64, error)

	Recorded []model.Earning
	Earnings []model.Earning
	Reversed float64
}

// Record tracks invocations and returns configured responses.
func (s *EarningRepositoryStub) Record(ctx context.Context, earning model.Earning) (*model.Earning, error) {
	s.Recorded = append(s.Recorded, earning)
	if s.RecordFn != nil {
		return s.RecordFn(ctx, earning)
	}
	earning.ID = int64(len(s.Recorded))
	return &earning, nil
}

// ListByAccount returns earnings from configured slice.
func (s *EarningRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.Earning, error) {
	if s.ListByAccountFn != nil {
		return s.ListByAccountFn(ctx, accountID)
	}
	return s.Earnings, nil
}

// Reverse returns the configured reversal total.
func (s *EarningRepositoryStub) Reverse(ctx context.Context, referredEmail string, refundAmount float64, now time.Time) (float64, error) {
	if s.ReverseFn != nil {
		return s.ReverseFn(ctx, referredEmail, refundAmount, now)
	}
	return s.Reversed, nil
}

// BalanceRepositoryStub lets tests control balance aggregates.
type BalanceRepositoryStub struct {
	SummaryFn func(context.Context, int64, time.Time) (*model.BalanceSummary, error)
	Result    *model.BalanceSummary
}

// Summary returns configured summary or default error.
func (s *BalanceRepositoryStub) Summary(ctx context.Context, accountID int64, now time.Time) (*model.BalanceSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, accountID, now)
	}
	if s.Result == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Result, nil
}

// PayoutRepositoryStub records payout interactions for tests.
type PayoutRepositoryStub struct {
	CreateFn           func(context.Context, int64, float64, time.Time) (*model.PayoutRequest, error)
	ResolveFn          func(context.Context, int64, model.PayoutStatus, time.Time) (*model.PayoutRequest, error)
	ListByAccountFn    func(context.Context, int64) ([]model.PayoutRequest, error)
	SelectUnnotifiedFn func(context.Context, int) ([]model.PayoutRequest, error)
	MarkNotifiedFn     func(context.Context, int64, time.Time) error

	Requests   []model.PayoutRequest
	Unnotified []model.PayoutRequest
	Notified   []int64
}

// Create returns configured request or a fresh pending one.
func (s *PayoutRepositoryStub) Create(ctx context.Context, accountID int64, minAmount float64, now time.Time) (*model.PayoutRequest, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, accountID, minAmount, now)
	}
	return &model.PayoutRequest{ID: 1, AccountID: accountID, Status: model.PayoutStatusPending, CreatedAt: now}, nil
}

// Resolve applies override or returns resolved request.
func (s *PayoutRepositoryStub) Resolve(ctx context.Context, requestID int64, decision model.PayoutStatus, now time.Time) (*model.PayoutRequest, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, requestID, decision, now)
	}
	processedAt := now
	return &model.PayoutRequest{ID: requestID, Status: decision, ProcessedAt: &processedAt}, nil
}

// ListByAccount returns configured history.
func (s *PayoutRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.PayoutRequest, error) {
	if s.ListByAccountFn != nil {
		return s.ListByAccountFn(ctx, accountID)
	}
	return s.Requests, nil
}

// SelectUnnotified returns configured unnotified queue.
func (s *PayoutRepositoryStub) SelectUnnotified(ctx context.Context, limit int) ([]model.PayoutRequest, error) {
	if s.SelectUnnotifiedFn != nil {
		return s.SelectUnnotifiedFn(ctx, limit)
	}
	return s.Unnotified, nil
}

// MarkNotified records notified request identifiers.
func (s *PayoutRepositoryStub) MarkNotified(ctx context.Context, requestID int64, now time.Time) error {
	if s.MarkNotifiedFn != nil {
		return s.MarkNotifiedFn(ctx, requestID, now)
	}
	s.Notified = append(s.Notified, requestID)
	return nil
}
