package dto

// PaymentEventRequest describes a completed payment reported by the billing
// integration.
type PaymentEventRequest struct {
	PayerID    int64   `json:"payer_id"`
	Amount     float64 `json:"amount"`
	PaymentRef string  `json:"payment_ref"`
}

// RefundEventRequest describes a refund issued to a customer.
type RefundEventRequest struct {
	PayerEmail string  `json:"payer_email"`
	Amount     float64 `json:"amount"`
}

// RefundResponse reports the total commission clawed back.
type RefundResponse struct {
	Reversed float64 `json:"reversed"`
}
