package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/corefsieve/internal/model"
)

// ReportCache stores resolution reports on top of a byte cache
type ReportCache struct {
	cache Cache
	ttl   time.Duration
}

// NewReportCache wraps c; ttl 0 defers to the cache defaults
func NewReportCache(c Cache, ttl time.Duration) *ReportCache {
	return &ReportCache{cache: c, ttl: ttl}
}

// Load returns the cached report for key. Entries that fail to decode
// are dropped and reported as misses.
func (r *ReportCache) Load(key string) (*model.Report, bool) {
	data, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		_ = r.cache.Delete(key)
		return nil, false
	}
	return &report, true
}

// Store saves report under key
func (r *ReportCache) Store(key string, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := r.cache.Set(key, data, r.ttl); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}

// Clear empties the underlying cache
func (r *ReportCache) Clear() error {
	return r.cache.Clear()
}
