package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Earnings() EarningRepository
	Balances() BalanceRepository
	Payouts() PayoutRepository
}
