package model

// BalanceSummary aggregates an account's referral funds at a point in time.
// Balance is net of settled payouts; Available and Pending are gross ledger sums
// over non-reversed earnings split by maturation.
type BalanceSummary struct {
	Balance   float64
	Available float64
	Pending   float64
}
