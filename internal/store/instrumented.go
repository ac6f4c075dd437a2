package store

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

type instrumented struct {
	next    Store
	metrics *metrics.Metrics
}

// Instrumented records operation counts, latency and payload size of next.
func Instrumented(next Store, m *metrics.Metrics) Store {
	if m == nil {
		return next
	}
	return &instrumented{next: next, metrics: m}
}

func (s *instrumented) Get(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Get(ctx, name)
	s.observe("get", name, start, err)
	if err == nil {
		s.metrics.StoreBytes.WithLabelValues(name).Set(float64(len(data)))
	}
	return data, err
}

func (s *instrumented) Put(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	err := s.next.Put(ctx, name, data)
	s.observe("put", name, start, err)
	if err == nil {
		s.metrics.StoreBytes.WithLabelValues(name).Set(float64(len(data)))
	}
	return err
}

func (s *instrumented) observe(op, name string, start time.Time, err error) {
	status := "success"
	switch {
	case errors.Is(err, ErrNoObject):
		status = "miss"
	case err != nil:
		status = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(op, name, status).Inc()
	s.metrics.StoreLatency.WithLabelValues(op, name).Observe(time.Since(start).Seconds())
}
