package notify

import (
	"context"
	"log/slog"
)

// Dispatcher sends a notice through one delivery channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, notice Notice) error
}

// MultiDispatcher fans a notice out to every configured channel. Delivery is
// best effort: a failing channel is logged and skipped, never fatal.
type MultiDispatcher struct {
	dispatchers []Dispatcher
	log         *slog.Logger
}

// MultiDispatcherOption configures a MultiDispatcher.
type MultiDispatcherOption func(*MultiDispatcher)

// WithMultiDispatcherLogger sets the logger used for delivery failures.
func WithMultiDispatcherLogger(log *slog.Logger) MultiDispatcherOption {
	return func(m *MultiDispatcher) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMultiDispatcher creates a fan-out dispatcher over the given channels.
func NewMultiDispatcher(dispatchers []Dispatcher, opts ...MultiDispatcherOption) *MultiDispatcher {
	m := &MultiDispatcher{
		dispatchers: dispatchers,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MultiDispatcher) Dispatch(ctx context.Context, notice Notice) error {
	for i, d := range m.dispatchers {
		if err := d.Dispatch(ctx, notice); err != nil {
			m.log.LogAttrs(ctx, slog.LevelError, "failed to dispatch notice",
				slog.String("subject", notice.Subject),
				slog.String("severity", string(notice.Severity)),
				slog.Int("dispatcher_index", i),
				slog.Any("error", err),
			)
			continue
		}
	}
	return nil
}

// NoopDispatcher discards notices. Useful in tests and in deployments where
// alerting is handled elsewhere.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, Notice) error {
	return nil
}
