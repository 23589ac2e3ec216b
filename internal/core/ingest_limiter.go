package core

// ingest_limiter.go bounds how many files are ingested at once.
//
// Each ingestion holds one slot of a semaphore for its whole run. When every
// slot is busy a new ingestion waits up to maxWait and then fails with
// ErrTooManyIngests, which the HTTP layer turns into 429 so the uploader
// retries. WaitForDrain lets shutdown finish running ingestions first.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyIngests is returned when no ingestion slot frees up in time.
var ErrTooManyIngests = errors.New("too many concurrent ingestions, please try again later")

const (
	DefaultMaxConcurrentIngests = 4
	DefaultMaxIngestWait        = 30 * time.Second
)

// IngestLimiter is a counting semaphore over file ingestions.
type IngestLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewIngestLimiter allows maxConcurrent ingestions, each waiting at most
// maxWait for a slot. Non-positive arguments select the defaults.
func NewIngestLimiter(maxConcurrent int, maxWait time.Duration) *IngestLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentIngests
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxIngestWait
	}
	return &IngestLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it.
func (l *IngestLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return ErrTooManyIngests
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (l *IngestLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// WaitForDrain blocks until no ingestion is running or ctx is done.
func (l *IngestLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for l.active.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// IngestLimiterStatus is a snapshot of the limiter.
type IngestLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status reports current usage for health checks.
func (l *IngestLimiter) Status() IngestLimiterStatus {
	return IngestLimiterStatus{
		Active:        int(l.active.Load()),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
