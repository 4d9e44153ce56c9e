package service

import (
	"log/slog"
	"time"

	"bank-ledger/internal/metrics"
)

type settings struct {
	logger   *slog.Logger
	clock    func() time.Time
	recorder *metrics.Recorder
}

// Option configures a service.
type Option func(*settings)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to stamp transactions.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

// WithRecorder counts operations in recorder.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(s *settings) {
		s.recorder = recorder
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// counterparty returns the account number to record on the other side of a
// transfer, or nil for accounts without a number.
func counterparty(number uint64) *uint64 {
	if number == 0 {
		return nil
	}
	return &number
}
