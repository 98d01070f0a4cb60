package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder captures hooks the referral service registers during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation by the test.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records graceful-termination requests.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies tests that the service asked to terminate.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
