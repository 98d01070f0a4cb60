package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests substitute
// a mock implementation through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type earningRepository struct {
	storage *Storage
}

type balanceRepository struct {
	storage *Storage
}

type payoutRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Earnings() repository.EarningRepository {
	return &earningRepository{storage: s}
}

func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

func (s *Storage) Payouts() repository.PayoutRepository {
	return &payoutRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            referral_code TEXT UNIQUE NOT NULL,
            referrer_id BIGINT REFERENCES accounts(id),
            balance DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS earnings (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            referred_id BIGINT NOT NULL REFERENCES accounts(id),
            referred_email TEXT NOT NULL,
            payment_ref TEXT UNIQUE NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            order_amount DOUBLE PRECISION NOT NULL,
            percentage DOUBLE PRECISION NOT NULL,
            is_reversed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            available_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payout_requests (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            processed_at TIMESTAMPTZ,
            notified_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_earnings_account ON earnings(account_id, available_at)`,
		`CREATE INDEX IF NOT EXISTS idx_earnings_referred ON earnings(referred_email, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payouts_account ON payout_requests(account_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, login, passwordHash, referralCode string, referrerID *int64) (*model.Account, error) {
	const query = `INSERT INTO accounts (login, password_hash, referral_code, referrer_id)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, referralCode, referrerID).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	a.ReferralCode = referralCode
	a.ReferrerID = referrerID
	return &a, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, referral_code, referrer_id, balance, created_at
                   FROM accounts WHERE login=$1`
	return r.scanOne(ctx, query, login)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, referral_code, referrer_id, balance, created_at
                   FROM accounts WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *accountRepository) GetByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, referral_code, referrer_id, balance, created_at
                   FROM accounts WHERE referral_code=$1`
	return r.scanOne(ctx, query, code)
}

func (r *accountRepository) scanOne(ctx context.Context, query string, arg any) (*model.Account, error) {
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Login, &a.PasswordHash, &a.ReferralCode, &a.ReferrerID, &a.Balance, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- EarningRepository implementation ---

func (r *earningRepository) Record(ctx context.Context, earning model.Earning) (*model.Earning, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO earnings
                        (account_id, referred_id, referred_email, payment_ref, amount, order_amount, percentage, available_at)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                        RETURNING id, created_at`
		err := tx.QueryRow(ctx, insert,
			earning.AccountID, earning.ReferredID, earning.ReferredEmail, earning.PaymentRef,
			earning.Amount, earning.OrderAmount, earning.Percentage, earning.AvailableAt,
		).Scan(&earning.ID, &earning.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return domainErrors.ErrDuplicateAccrual
			}
			return err
		}

		const credit = `UPDATE accounts SET balance = balance + $1 WHERE id = $2`
		if _, err := tx.Exec(ctx, credit, earning.Amount, earning.AccountID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &earning, nil
}

func (r *earningRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Earning, error) {
	const query = `SELECT id, account_id, referred_id, referred_email, payment_ref,
                          amount, order_amount, percentage, is_reversed, created_at, available_at
                   FROM earnings WHERE account_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Earning
	for rows.Next() {
		var e model.Earning
		if err := rows.Scan(&e.ID, &e.AccountID, &e.ReferredID, &e.ReferredEmail, &e.PaymentRef,
			&e.Amount, &e.OrderAmount, &e.Percentage, &e.IsReversed, &e.CreatedAt, &e.AvailableAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Predicates shared by every query that decides whether an earning counts
// toward a balance. Matured and on-hold split the same column on the same
// parameter ($2, the caller-supplied point in time), so available plus pending
// always covers exactly the non-reversed amounts.
const (
	earningActive  = `is_reversed = FALSE`
	earningMatured = `available_at <= $2`
	earningOnHold  = `available_at > $2`
)

func (r *earningRepository) Reverse(ctx context.Context, referredEmail string, refundAmount float64, now time.Time) (float64, error) {
	var total float64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Only unmatured earnings are candidates; released funds are never
		// clawed back. Most recent accruals absorb the refund first.
		const selectQuery = `SELECT id, account_id, amount, order_amount
                             FROM earnings
                             WHERE referred_email=$1 AND ` + earningActive + ` AND ` + earningOnHold + `
                             ORDER BY created_at DESC
                             FOR UPDATE`
		rows, err := tx.Query(ctx, selectQuery, referredEmail, now)
		if err != nil {
			return err
		}

		var candidates []model.Earning
		for rows.Next() {
			var e model.Earning
			if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.OrderAmount); err != nil {
				rows.Close()
				return err
			}
			candidates = append(candidates, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		remaining := refundAmount
		for _, e := range candidates {
			if remaining <= 0 {
				break
			}
			reverse, consumed := e.ReversalShare(remaining)

			// The earning closes in full even when only a fraction of it
			// offsets the refund; it is never split into a remainder row.
			if _, err := tx.Exec(ctx, `UPDATE earnings SET is_reversed=TRUE WHERE id=$1`, e.ID); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, reverse, e.AccountID); err != nil {
				return err
			}

			remaining -= consumed
			total += reverse
		}

		if remaining > 0 && r.storage.logger != nil {
			// Excess refund beyond unmatured earnings is not clawed back.
			r.storage.logger.Warn("refund not fully absorbed by unmatured earnings",
				slog.String("referred_email", referredEmail),
				slog.Float64("unabsorbed", remaining))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --- BalanceRepository implementation ---

func (r *balanceRepository) Summary(ctx context.Context, accountID int64, now time.Time) (*model.BalanceSummary, error) {
	const query = `SELECT a.balance,
                          COALESCE(SUM(e.amount) FILTER (WHERE ` + earningMatured + `), 0) AS available,
                          COALESCE(SUM(e.amount) FILTER (WHERE ` + earningOnHold + `), 0) AS pending
                   FROM accounts a
                   LEFT JOIN earnings e ON e.account_id = a.id AND ` + earningActive + `
                   WHERE a.id = $1
                   GROUP BY a.id`
	var summary model.BalanceSummary
	err := r.storage.pool.QueryRow(ctx, query, accountID, now).Scan(&summary.Balance, &summary.Available, &summary.Pending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// --- PayoutRepository implementation ---

func (r *payoutRepository) Create(ctx context.Context, accountID int64, minAmount float64, now time.Time) (*model.PayoutRequest, error) {
	var request model.PayoutRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Account row lock serializes concurrent requests for the same account.
		const lockAccount = `SELECT balance FROM accounts WHERE id=$1 FOR UPDATE`
		var balance float64
		if err := tx.QueryRow(ctx, lockAccount, accountID).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const hasPending = `SELECT EXISTS (SELECT 1 FROM payout_requests WHERE account_id=$1 AND status=$2)`
		var pendingExists bool
		if err := tx.QueryRow(ctx, hasPending, accountID, model.PayoutStatusPending).Scan(&pendingExists); err != nil {
			return err
		}
		if pendingExists {
			return domainErrors.ErrPayoutPending
		}

		if balance < 0 {
			return domainErrors.ErrNegativeBalance
		}

		const availableQuery = `SELECT COALESCE(SUM(amount), 0) FROM earnings
                                WHERE account_id=$1 AND ` + earningActive + ` AND ` + earningMatured
		var available float64
		if err := tx.QueryRow(ctx, availableQuery, accountID, now).Scan(&available); err != nil {
			return err
		}
		if available < minAmount {
			return domainErrors.ErrInsufficientAvailable
		}

		const insert = `INSERT INTO payout_requests (account_id, amount, status)
                        VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insert, accountID, available, model.PayoutStatusPending).Scan(&request.ID, &request.CreatedAt); err != nil {
			return err
		}
		request.AccountID = accountID
		request.Amount = available
		request.Status = model.PayoutStatusPending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *payoutRepository) Resolve(ctx context.Context, requestID int64, decision model.PayoutStatus, now time.Time) (*model.PayoutRequest, error) {
	var request model.PayoutRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockRequest = `SELECT id, account_id, amount, status, created_at, notified_at
                             FROM payout_requests WHERE id=$1 FOR UPDATE`
		err := tx.QueryRow(ctx, lockRequest, requestID).Scan(
			&request.ID, &request.AccountID, &request.Amount, &request.Status, &request.CreatedAt, &request.NotifiedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if request.Status != model.PayoutStatusPending {
			return domainErrors.ErrAlreadyResolved
		}

		const update = `UPDATE payout_requests SET status=$1, processed_at=$2 WHERE id=$3`
		if _, err := tx.Exec(ctx, update, decision, now, requestID); err != nil {
			return err
		}

		if decision == model.PayoutStatusPaid {
			const debit = `UPDATE accounts SET balance = balance - $1 WHERE id = $2`
			if _, err := tx.Exec(ctx, debit, request.Amount, request.AccountID); err != nil {
				return err
			}
		}

		request.Status = decision
		processedAt := now
		request.ProcessedAt = &processedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *payoutRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.PayoutRequest, error) {
	const query = `SELECT id, account_id, amount, status, created_at, processed_at, notified_at
                   FROM payout_requests WHERE account_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayouts(rows)
}

func (r *payoutRepository) SelectUnnotified(ctx context.Context, limit int) ([]model.PayoutRequest, error) {
	const query = `SELECT id, account_id, amount, status, created_at, processed_at, notified_at
                   FROM payout_requests
                   WHERE status=$1 AND notified_at IS NULL
                   ORDER BY created_at
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, model.PayoutStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayouts(rows)
}

func (r *payoutRepository) MarkNotified(ctx context.Context, requestID int64, now time.Time) error {
	const query = `UPDATE payout_requests SET notified_at=$1 WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, now, requestID)
	return err
}

func scanPayouts(rows pgx.Rows) ([]model.PayoutRequest, error) {
	var result []model.PayoutRequest
	for rows.Next() {
		var p model.PayoutRequest
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Amount, &p.Status, &p.CreatedAt, &p.ProcessedAt, &p.NotifiedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
