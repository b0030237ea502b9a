// Package prometheus exposes answer metrics through the Prometheus client.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/asof"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure Answerer implements asof.Answerer.
var _ asof.Answerer = (*Answerer)(nil)

// Answerer wraps an Answerer and records a counter and latency histogram
// for every answered query.
type Answerer struct {
	next     asof.Answerer
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAnswerer creates an Answerer and registers its collectors with reg.
func NewAnswerer(next asof.Answerer, reg prometheus.Registerer) (*Answerer, error) {
	a := &Answerer{
		next: next,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asof_answers_total",
			Help: "Answered queries by mode and status.",
		}, []string{"mode", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asof_answer_duration_seconds",
			Help:    "Time to answer a query, including search and completion.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"mode"}),
	}
	for _, c := range []prometheus.Collector{a.total, a.duration} {
		if err := reg.Register(c); err != nil {
			return nil, asof.Errorf(asof.EINTERNAL, "register metrics: %v", err)
		}
	}
	return a, nil
}

// Answer delegates to the wrapped Answerer and records the outcome.
// Rejected queries are counted with status "invalid".
func (a *Answerer) Answer(ctx context.Context, query string, searchEnabled bool) (answer *asof.Answer, err error) {
	mode := string(asof.ModeFor(searchEnabled))
	defer func(begin time.Time) {
		status := "error"
		switch {
		case err == nil && answer != nil:
			status = string(answer.Status)
		case asof.ErrorCode(err) == asof.EINVALID:
			status = "invalid"
		}
		a.total.WithLabelValues(mode, status).Inc()
		a.duration.WithLabelValues(mode).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return a.next.Answer(ctx, query, searchEnabled)
}
