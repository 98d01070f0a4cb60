package model

import "time"

// Account represents a registered user of the redesign service. Every account is
// a potential referral beneficiary; Balance tracks commission net of settled payouts.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	ReferralCode string
	ReferrerID   *int64
	Balance      float64
	CreatedAt    time.Time
}
