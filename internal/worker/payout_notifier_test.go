package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
	testhelpers "github.com/roomcraft/referral/internal/test"
)

func TestNewPayoutNotifierDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	notifier := NewPayoutNotifier(&testhelpers.WorkerFacadeStub{}, &testhelpers.NotifierStub{}, time.Second, 0, 0, logger)
	if notifier.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", notifier.batchSize)
	}
	if notifier.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", notifier.workers)
	}
}

func TestPayoutNotifierAnnouncesAndMarks(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{Batches: [][]model.PayoutRequest{{{ID: 5, AccountID: 1, Amount: 250}}}}
	operator := &testhelpers.NotifierStub{}
	notifier := NewPayoutNotifier(facade, operator, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifier.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		marked := len(facade.Notified) > 0
		facade.Unlock()
		if marked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for payout notification")
		case <-time.After(10 * time.Millisecond):
		}
	}

	notifier.Stop()
	if operator.AnnouncedCount() != 1 {
		t.Fatalf("expected one announcement, got %d", operator.AnnouncedCount())
	}
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Notified) != 1 || facade.Notified[0] != 5 {
		t.Fatalf("expected request 5 marked notified, got %+v", facade.Notified)
	}
}

func TestPayoutNotifierKeepsFailedAnnouncementsQueued(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PayoutRequest{{{ID: 5, Amount: 250}}, {{ID: 5, Amount: 250}}},
	}
	operator := &testhelpers.NotifierStub{
		AnnounceFn: func(ctx context.Context, request model.PayoutRequest) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return errors.New("operator unavailable")
			}
			return nil
		},
	}

	notifier := NewPayoutNotifier(facade, operator, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifier.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		marked := len(facade.Notified) > 0
		facade.Unlock()
		if marked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	notifier.Stop()

	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected at least two announce attempts, got %d", attempts)
	}
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Notified) != 1 || facade.Notified[0] != 5 {
		t.Fatalf("expected request 5 marked after retry, got %+v", facade.Notified)
	}
}

func TestPayoutNotifierStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	notifier := NewPayoutNotifier(&testhelpers.WorkerFacadeStub{}, &testhelpers.NotifierStub{}, 10*time.Millisecond, 1, 2, logger)

	notifier.Start(context.Background())
	notifier.Stop()
	notifier.Stop()
}
