package metrics

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"bank-ledger/internal/errors"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "insufficient_funds", Outcome(errors.ErrInsufficientFunds))
	assert.Equal(t, "transfer_failed", Outcome(errors.ErrTransferFailed.WithDetails("insufficient funds")))
	assert.Equal(t, "internal_error", Outcome(stderrors.New("boom")))
}

func TestRecorderObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.Observe("deposit", nil)
	r.Observe("deposit", nil)
	r.Observe("deposit", errors.ErrInvalidAmount)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("deposit", "invalid_amount")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.operations))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() { r.Observe("deposit", nil) })
}
