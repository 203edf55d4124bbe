package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles document throughput per source directory, so one
// large corpus cannot starve the others in a mixed batch
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter. A non-positive rate means unlimited.
func NewLimiter(documentsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	limit := rate.Limit(documentsPerSecond)
	if documentsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the source of path may process another document
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(sourceOf(path)).Wait(ctx)
}

// Allow reports whether a document may be processed now, without waiting
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(sourceOf(path)).Allow()
}

func (l *Limiter) getLimiter(source string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[source]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[source]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[source] = limiter

	return limiter
}

// sourceOf returns the directory a document path belongs to
func sourceOf(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
