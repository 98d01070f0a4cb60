package dto

import "time"

// PayoutResponse describes a payout request and its current state.
type PayoutResponse struct {
	ID          int64      `json:"id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// PayoutResolveRequest carries the operator decision for a pending request.
type PayoutResolveRequest struct {
	Decision string `json:"decision"`
}
