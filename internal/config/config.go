package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	OperatorWebhookURL string
	AuthSecret         string
	InternalToken      string
	HoldPeriod         time.Duration
	CommissionPercent  float64
	MinPayout          float64
	NotifyPollInterval time.Duration
	NotifyBatchSize    int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultAuthSecret         = "change-me-in-production"
	defaultHoldPeriodDays     = 7
	defaultCommissionPercent  = 40
	defaultMinPayout          = 100
	defaultNotifyPollInterval = 5 * time.Second
	defaultNotifyBatchSize    = 16
	defaultWorkerPoolSize     = 2
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment variables
// and command line flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		OperatorWebhookURL: getString(lookup, "OPERATOR_WEBHOOK_URL", ""),
		AuthSecret:         getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		InternalToken:      getString(lookup, "INTERNAL_TOKEN", ""),
		CommissionPercent:  getFloat(lookup, "COMMISSION_PERCENT", defaultCommissionPercent),
		MinPayout:          getFloat(lookup, "MIN_PAYOUT", defaultMinPayout),
		NotifyPollInterval: getDuration(lookup, "NOTIFY_POLL_INTERVAL", defaultNotifyPollInterval),
		NotifyBatchSize:    getInt(lookup, "NOTIFY_BATCH_SIZE", defaultNotifyBatchSize),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	holdDays := getInt(lookup, "HOLD_PERIOD_DAYS", defaultHoldPeriodDays)

	fs := flag.NewFlagSet("referral", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.NotifyPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.OperatorWebhookURL, "w", cfg.OperatorWebhookURL, "Operator webhook URL for payout notifications")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.InternalToken, "internal-token", cfg.InternalToken, "Shared secret for payment layer and operator endpoints")
	fs.IntVar(&holdDays, "hold-days", holdDays, "Days an earning stays on hold before it becomes withdrawable")
	fs.Float64Var(&cfg.CommissionPercent, "percent", cfg.CommissionPercent, "Commission percentage applied to referred payments")
	fs.Float64Var(&cfg.MinPayout, "min-payout", cfg.MinPayout, "Minimum available balance required to request a payout")
	fs.StringVar(&pollIntervalStr, "notify-interval", pollIntervalStr, "Interval between payout notification polls")
	fs.IntVar(&cfg.NotifyBatchSize, "notify-batch", cfg.NotifyBatchSize, "Maximum payout requests per notification batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid notify interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if holdDays <= 0 {
		holdDays = defaultHoldPeriodDays
	}
	cfg.HoldPeriod = time.Duration(holdDays) * 24 * time.Hour

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.OperatorWebhookURL == "" {
		return nil, fmt.Errorf("operator webhook URL must be provided")
	}

	if cfg.CommissionPercent <= 0 || cfg.CommissionPercent > 100 {
		return nil, fmt.Errorf("commission percent must be in (0, 100], got %v", cfg.CommissionPercent)
	}

	if cfg.MinPayout <= 0 {
		return nil, fmt.Errorf("minimum payout must be positive, got %v", cfg.MinPayout)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
