package model

import "time"

// PayoutStatus describes payout request lifecycle. The only legal transitions are
// pending->paid and pending->rejected, both terminal.
type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusPaid     PayoutStatus = "paid"
	PayoutStatusRejected PayoutStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s PayoutStatus) Terminal() bool {
	return s == PayoutStatusPaid || s == PayoutStatusRejected
}

// PayoutRequest is a withdrawal attempt. Amount is a snapshot of the available
// balance at creation time and is never recomputed.
type PayoutRequest struct {
	ID          int64
	AccountID   int64
	Amount      float64
	Status      PayoutStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
	NotifiedAt  *time.Time
}
