package errors

import "errors"

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidReferralCode   = errors.New("invalid referral code")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidDecision       = errors.New("invalid payout decision")
	ErrDuplicateAccrual      = errors.New("duplicate accrual for payment reference")
	ErrInsufficientAvailable = errors.New("below minimum, remainder on hold")
	ErrNegativeBalance       = errors.New("outstanding debt from reversals")
	ErrPayoutPending         = errors.New("payout request already pending")
	ErrAlreadyResolved       = errors.New("payout request already resolved")
)
