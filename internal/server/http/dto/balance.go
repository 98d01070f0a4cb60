package dto

// BalanceResponse represents aggregate commission balances.
type BalanceResponse struct {
	Balance   float64 `json:"balance"`
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
}

// ReferralResponse exposes the account's own referral code.
type ReferralResponse struct {
	Code string `json:"code"`
}
