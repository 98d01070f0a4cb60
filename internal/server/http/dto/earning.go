package dto

import "time"

// EarningResponse describes a single commission accrual.
type EarningResponse struct {
	Amount        float64   `json:"amount"`
	OrderAmount   float64   `json:"order_amount"`
	Percentage    float64   `json:"percentage"`
	ReferredEmail string    `json:"referred_email"`
	Reversed      bool      `json:"reversed"`
	CreatedAt     time.Time `json:"created_at"`
	AvailableAt   time.Time `json:"available_at"`
}
