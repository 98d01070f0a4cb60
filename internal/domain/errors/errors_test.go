package errors

import "testing"

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAlreadyExists,
		ErrNotFound,
		ErrInvalidCredentials,
		ErrInvalidReferralCode,
		ErrInvalidAmount,
		ErrInvalidDecision,
		ErrDuplicateAccrual,
		ErrInsufficientAvailable,
		ErrNegativeBalance,
		ErrPayoutPending,
		ErrAlreadyResolved,
	}

	seen := make(map[error]bool, len(sentinels))
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel must not be nil")
		}
		if seen[err] {
			t.Fatalf("duplicate sentinel: %v", err)
		}
		seen[err] = true
	}
}

func TestPayoutRejectionReasons(t *testing.T) {
	// These messages surface verbatim in payout rejection responses.
	if ErrInsufficientAvailable.Error() != "below minimum, remainder on hold" {
		t.Fatalf("unexpected reason: %s", ErrInsufficientAvailable)
	}
	if ErrNegativeBalance.Error() != "outstanding debt from reversals" {
		t.Fatalf("unexpected reason: %s", ErrNegativeBalance)
	}
}
