package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingResult struct {
	err error
}

func (r *countingResult) GetError() error {
	return r.err
}

// countingJob records executions and tracks peak concurrency
type countingJob struct {
	executed *int32
	running  *int32
	peak     *int32
	delay    time.Duration
	fail     bool
}

func (j *countingJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.running != nil {
		n := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			p := atomic.LoadInt32(j.peak)
			if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
				break
			}
		}
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &countingResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &countingResult{err: errors.New("job failed")}
	}
	return &countingResult{}
}

func TestNewPool_Workers(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{4, 4},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := NewPool(tt.in).workers; got != tt.want {
			t.Errorf("NewPool(%d): expected %d workers, got %d", tt.in, tt.want, got)
		}
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	for i := 0; i < 6; i++ {
		pool.Submit(&countingJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != 6 {
		t.Errorf("expected 6 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 6 {
		t.Errorf("expected 6 executions, got %d", n)
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start()

	var running, peak int32
	go func() {
		for i := 0; i < 40; i++ {
			pool.Submit(&countingJob{running: &running, peak: &peak, delay: 5 * time.Millisecond})
		}
		pool.Close()
	}()

	results := pool.Collect()
	if len(results) != 40 {
		t.Fatalf("expected 40 results, got %d", len(results))
	}
	if p := atomic.LoadInt32(&peak); p > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_Errors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&countingJob{fail: true})
	pool.Submit(&countingJob{})
	pool.Submit(&countingJob{fail: true})

	failed := 0
	for _, res := range pool.Wait() {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 2 {
		t.Errorf("expected 2 failures, got %d", failed)
	}
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&countingJob{})
	pool.Close()

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestPool_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolWithContext(ctx, 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&startedJob{started: started, delay: time.Second})
	<-started
	cancel()

	done := make(chan []Result)
	go func() { done <- pool.Wait() }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after cancel")
	}
}

type startedJob struct {
	started chan struct{}
	delay   time.Duration
}

func (j *startedJob) Execute(ctx context.Context) Result {
	close(j.started)
	select {
	case <-time.After(j.delay):
		return &countingResult{}
	case <-ctx.Done():
		return &countingResult{err: ctx.Err()}
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&countingJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownClosesResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&startedJob{started: started, delay: 200 * time.Millisecond})
	<-started
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("results channel not closed after shutdown")
	}
}
