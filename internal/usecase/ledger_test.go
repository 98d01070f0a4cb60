package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/roomcraft/referral/internal/config"
	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	testhelpers "github.com/roomcraft/referral/internal/test"
)

func newLedgerConfig() *config.Config {
	return &config.Config{
		HoldPeriod:        7 * 24 * time.Hour,
		CommissionPercent: 40,
		MinPayout:         100,
	}
}

func TestLedgerUseCaseRecordPayment(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	referrerID := int64(1)
	accounts.ByID[1] = &model.Account{ID: 1, Login: "referrer@mail.test"}
	accounts.ByID[2] = &model.Account{ID: 2, Login: "friend@mail.test", ReferrerID: &referrerID}

	earnings := &testhelpers.EarningRepositoryStub{}
	uc := NewLedgerUseCase(accounts, earnings, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	before := time.Now()
	earning, err := uc.RecordPayment(context.Background(), 2, 1000, "pay-1")
	if err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if earning == nil {
		t.Fatal("expected earning to be recorded")
	}
	if earning.AccountID != 1 || earning.ReferredID != 2 || earning.ReferredEmail != "friend@mail.test" {
		t.Fatalf("earning attributed incorrectly: %+v", earning)
	}
	if earning.Amount != 400 {
		t.Fatalf("expected 40%% commission of 1000, got %v", earning.Amount)
	}
	if earning.OrderAmount != 1000 || earning.Percentage != 40 {
		t.Fatalf("payment snapshot incorrect: %+v", earning)
	}

	hold := earning.AvailableAt.Sub(before)
	if hold < 7*24*time.Hour-time.Minute || hold > 7*24*time.Hour+time.Minute {
		t.Fatalf("hold period off: %v", hold)
	}
	if len(earnings.Recorded) != 1 {
		t.Fatalf("expected exactly one recorded earning, got %d", len(earnings.Recorded))
	}
}

func TestLedgerUseCaseRecordPaymentNoReferrer(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	accounts.ByID[2] = &model.Account{ID: 2, Login: "organic@mail.test"}

	earnings := &testhelpers.EarningRepositoryStub{}
	uc := NewLedgerUseCase(accounts, earnings, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	earning, err := uc.RecordPayment(context.Background(), 2, 1000, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earning != nil {
		t.Fatalf("expected no accrual for organic customer, got %+v", earning)
	}
	if len(earnings.Recorded) != 0 {
		t.Fatal("ledger should stay untouched for organic payments")
	}
}

func TestLedgerUseCaseRecordPaymentValidation(t *testing.T) {
	earnings := &testhelpers.EarningRepositoryStub{}
	uc := NewLedgerUseCase(testhelpers.NewAccountRepositoryStub(), earnings, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	if _, err := uc.RecordPayment(context.Background(), 1, 0, "pay-1"); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if _, err := uc.RecordPayment(context.Background(), 1, -5, "pay-1"); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if _, err := uc.RecordPayment(context.Background(), 1, 100, "  "); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if len(earnings.Recorded) != 0 {
		t.Fatal("ledger should stay untouched on validation errors")
	}
}

func TestLedgerUseCaseRecordPaymentUnknownPayer(t *testing.T) {
	uc := NewLedgerUseCase(testhelpers.NewAccountRepositoryStub(), &testhelpers.EarningRepositoryStub{}, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	if _, err := uc.RecordPayment(context.Background(), 99, 100, "pay-1"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLedgerUseCaseReverse(t *testing.T) {
	var gotEmail string
	var gotAmount float64
	earnings := &testhelpers.EarningRepositoryStub{
		ReverseFn: func(ctx context.Context, email string, amount float64, now time.Time) (float64, error) {
			gotEmail = email
			gotAmount = amount
			return 200, nil
		},
	}
	uc := NewLedgerUseCase(testhelpers.NewAccountRepositoryStub(), earnings, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	total, err := uc.Reverse(context.Background(), "friend@mail.test", 500)
	if err != nil {
		t.Fatalf("reverse failed: %v", err)
	}
	if total != 200 {
		t.Fatalf("expected 200 reversed, got %v", total)
	}
	if gotEmail != "friend@mail.test" || gotAmount != 500 {
		t.Fatalf("unexpected arguments: %s %v", gotEmail, gotAmount)
	}
}

func TestLedgerUseCaseReverseValidation(t *testing.T) {
	uc := NewLedgerUseCase(testhelpers.NewAccountRepositoryStub(), &testhelpers.EarningRepositoryStub{}, &testhelpers.BalanceRepositoryStub{}, newLedgerConfig())

	if _, err := uc.Reverse(context.Background(), "friend@mail.test", 0); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if _, err := uc.Reverse(context.Background(), "", 100); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
}

func TestLedgerUseCaseSummaryAndEarnings(t *testing.T) {
	summary := &model.BalanceSummary{Balance: 150, Available: 100, Pending: 50}
	history := []model.Earning{{ID: 1, Amount: 40, CreatedAt: time.Now()}}
	uc := NewLedgerUseCase(
		testhelpers.NewAccountRepositoryStub(),
		&testhelpers.EarningRepositoryStub{Earnings: history},
		&testhelpers.BalanceRepositoryStub{Result: summary},
		newLedgerConfig(),
	)

	gotSummary, err := uc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if gotSummary.Balance != 150 || gotSummary.Available != 100 || gotSummary.Pending != 50 {
		t.Fatalf("unexpected summary: %+v", gotSummary)
	}

	gotEarnings, err := uc.Earnings(context.Background(), 1)
	if err != nil {
		t.Fatalf("earnings returned error: %v", err)
	}
	if len(gotEarnings) != 1 || gotEarnings[0].Amount != 40 {
		t.Fatalf("unexpected earnings: %+v", gotEarnings)
	}
}
