package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
)

// PayoutFacade exposes the subset of application functionality required by the worker.
type PayoutFacade interface {
	PayoutsForNotification(ctx context.Context, limit int) ([]model.PayoutRequest, error)
	MarkPayoutNotified(ctx context.Context, requestID int64) error
}

// OperatorNotifier delivers payout announcements to the operator.
type OperatorNotifier interface {
	Announce(ctx context.Context, request model.PayoutRequest) error
}

// PayoutNotifier polls for fresh payout requests and announces them to the
// operator concurrently. Failed announcements stay queued for the next poll.
type PayoutNotifier struct {
	facade       PayoutFacade
	notifier     OperatorNotifier
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.PayoutRequest
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPayoutNotifier constructs notifier worker pool.
func NewPayoutNotifier(facade PayoutFacade, notifier OperatorNotifier, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PayoutNotifier {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PayoutNotifier{
		facade:       facade,
		notifier:     notifier,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.PayoutRequest, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PayoutNotifier) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PayoutNotifier) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PayoutNotifier) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PayoutNotifier) fetchAndDispatch(ctx context.Context) {
	requests, err := p.facade.PayoutsForNotification(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch payouts for notification failed", slog.String("error", err.Error()))
		return
	}
	for _, request := range requests {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- request:
		}
	}
}

func (p *PayoutNotifier) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case request, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleRequest(ctx, request)
		}
	}
}

func (p *PayoutNotifier) handleRequest(ctx context.Context, request model.PayoutRequest) {
	if err := p.notifier.Announce(ctx, request); err != nil {
		p.logger.Error("payout announcement failed",
			slog.Int64("request_id", request.ID),
			slog.String("error", err.Error()))
		return
	}

	// Marking happens only after a successful delivery, so a crash in between
	// yields a duplicate announcement rather than a lost one.
	if err := p.facade.MarkPayoutNotified(ctx, request.ID); err != nil {
		p.logger.Error("mark payout notified failed",
			slog.Int64("request_id", request.ID),
			slog.String("error", err.Error()))
	}
}
