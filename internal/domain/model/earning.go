package model

import (
	"math"
	"time"
)

// Earning is a single commission accrual produced by a referred party's payment.
// It stays on hold until AvailableAt; once reversed it never counts again.
type Earning struct {
	ID            int64
	AccountID     int64
	ReferredID    int64
	ReferredEmail string
	PaymentRef    string
	Amount        float64
	OrderAmount   float64
	Percentage    float64
	IsReversed    bool
	CreatedAt     time.Time
	AvailableAt   time.Time
}

// RoundCurrency rounds a monetary value half-up to two decimal places.
// All commission arithmetic in the ledger goes through this single rule.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// CommissionAmount computes the commission earned on an order at the given rate.
func CommissionAmount(orderAmount, percentage float64) float64 {
	return RoundCurrency(orderAmount * percentage / 100)
}

// ReversalShare computes how much of this earning a refund of the remaining
// amount claws back. The earning is always closed in full afterwards, even when
// the ratio is partial; consumed reports how much of the refund it absorbed.
func (e Earning) ReversalShare(remaining float64) (reverse, consumed float64) {
	if remaining <= 0 || e.OrderAmount <= 0 {
		return 0, 0
	}
	ratio := remaining / e.OrderAmount
	if ratio > 1 {
		ratio = 1
	}
	return RoundCurrency(e.Amount * ratio), e.OrderAmount * ratio
}

// Matured reports whether the hold period has elapsed at the given instant.
func (e Earning) Matured(now time.Time) bool {
	return !e.AvailableAt.After(now)
}
