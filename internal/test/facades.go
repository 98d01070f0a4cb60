package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
)

// LedgerFacadeStub provides controllable behaviour for ledger endpoints.
type LedgerFacadeStub struct {
	BalanceFn       func(context.Context, int64) (*model.BalanceSummary, error)
	EarningsFn      func(context.Context, int64) ([]model.Earning, error)
	ReferralInfoFn  func(context.Context, int64) (*model.Account, error)
	RecordPaymentFn func(context.Context, int64, float64, string) (*model.Earning, error)
	RecordRefundFn  func(context.Context, string, float64) (float64, error)
}

// Balance returns stored summary or default data.
func (s LedgerFacadeStub) Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, accountID)
	}
	return &model.BalanceSummary{Balance: 100, Available: 60, Pending: 40}, nil
}

// Earnings returns predefined accruals for given account.
func (s LedgerFacadeStub) Earnings(ctx context.Context, accountID int64) ([]model.Earning, error) {
	if s.EarningsFn != nil {
		return s.EarningsFn(ctx, accountID)
	}
	return []model.Earning{{ID: 1, AccountID: accountID, Amount: 40}}, nil
}

// ReferralInfo returns a default account with a referral code.
func (s LedgerFacadeStub) ReferralInfo(ctx context.Context, accountID int64) (*model.Account, error) {
	if s.ReferralInfoFn != nil {
		return s.ReferralInfoFn(ctx, accountID)
	}
	return &model.Account{ID: accountID, Login: "user@mail.test", ReferralCode: "CODE1234"}, nil
}

// RecordPayment delegates to provided function or returns default earning.
func (s LedgerFacadeStub) RecordPayment(ctx context.Context, payerID int64, amount float64, paymentRef string) (*model.Earning, error) {
	if s.RecordPaymentFn != nil {
		return s.RecordPaymentFn(ctx, payerID, amount, paymentRef)
	}
	return &model.Earning{ID: 1, ReferredID: payerID, PaymentRef: paymentRef, OrderAmount: amount}, nil
}

// RecordRefund executes configured refund handler.
func (s LedgerFacadeStub) RecordRefund(ctx context.Context, payerEmail string, amount float64) (float64, error) {
	if s.RecordRefundFn != nil {
		return s.RecordRefundFn(ctx, payerEmail, amount)
	}
	return 0, nil
}

// PayoutFacadeStub simulates payout operations.
type PayoutFacadeStub struct {
	RequestPayoutFn func(context.Context, int64) (*model.PayoutRequest, error)
	PayoutsFn       func(context.Context, int64) ([]model.PayoutRequest, error)
	ResolvePayoutFn func(context.Context, int64, string) (*model.PayoutRequest, error)
}

// RequestPayout returns configured request or a fresh pending one.
func (s PayoutFacadeStub) RequestPayout(ctx context.Context, accountID int64) (*model.PayoutRequest, error) {
	if s.RequestPayoutFn != nil {
		return s.RequestPayoutFn(ctx, accountID)
	}
	return &model.PayoutRequest{ID: 1, AccountID: accountID, Amount: 150, Status: model.PayoutStatusPending}, nil
}

// Payouts returns preconfigured history.
func (s PayoutFacadeStub) Payouts(ctx context.Context, accountID int64) ([]model.PayoutRequest, error) {
	if s.PayoutsFn != nil {
		return s.PayoutsFn(ctx, accountID)
	}
	return []model.PayoutRequest{{ID: 1, AccountID: accountID, Amount: 150, Status: model.PayoutStatusPaid, CreatedAt: time.Unix(0, 0)}}, nil
}

// ResolvePayout applies configured decision handler.
func (s PayoutFacadeStub) ResolvePayout(ctx context.Context, requestID int64, decision string) (*model.PayoutRequest, error) {
	if s.ResolvePayoutFn != nil {
		return s.ResolvePayoutFn(ctx, requestID, decision)
	}
	return &model.PayoutRequest{ID: requestID, Status: model.PayoutStatus(decision)}, nil
}

// WorkerFacadeStub mimics worker interactions with the payout facade.
type WorkerFacadeStub struct {
	Batches    [][]model.PayoutRequest
	BatchesFn  func(context.Context, int) ([]model.PayoutRequest, error)
	NotifiedFn func(context.Context, int64) error
	Notified   []int64
	mu         sync.Mutex
	batchCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PayoutsForNotification returns batches from configured queue.
func (s *WorkerFacadeStub) PayoutsForNotification(ctx context.Context, limit int) ([]model.PayoutRequest, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// MarkPayoutNotified records notified request identifiers.
func (s *WorkerFacadeStub) MarkPayoutNotified(ctx context.Context, requestID int64) error {
	if s.NotifiedFn != nil {
		return s.NotifiedFn(ctx, requestID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, requestID)
	return nil
}

// NotifierStub captures operator announcements for tests.
type NotifierStub struct {
	AnnounceFn func(context.Context, model.PayoutRequest) error
	Err        error
	mu         sync.Mutex
	Announced  []model.PayoutRequest
}

// Announce stores the request or delegates to the override.
func (s *NotifierStub) Announce(ctx context.Context, request model.PayoutRequest) error {
	if s.AnnounceFn != nil {
		return s.AnnounceFn(ctx, request)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Announced = append(s.Announced, request)
	return nil
}

// AnnouncedCount reports announcements made so far.
func (s *NotifierStub) AnnouncedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Announced)
}
