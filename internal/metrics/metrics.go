package metrics

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"

	"bank-ledger/internal/errors"
)

// Recorder counts ledger operations by outcome. A nil Recorder records nothing.
type Recorder struct {
	operations *prometheus.CounterVec
}

// NewRecorder registers the ledger collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bank_ledger",
		Name:      "operations_total",
		Help:      "Ledger operations by name and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(operations)

	return &Recorder{operations: operations}
}

// Observe counts one call of operation. The outcome is "ok" or the error code.
func (r *Recorder) Observe(operation string, err error) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome returns the metric label for err.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return string(errors.InternalError)
}
