package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeResult implements Result
type fakeResult struct {
	err error
}

func (r *fakeResult) GetError() error {
	return r.err
}

// fakeJob implements Job
type fakeJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *fakeJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &fakeResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &fakeResult{err: errors.New("job error")}
	}
	return &fakeResult{}
}

func TestNewPool_MinimumOneWorker(t *testing.T) {
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("Expected 1 worker for size 0, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("Expected 1 worker for negative size, got %d", p.workers)
	}
	if p := NewPool(8); p.workers != 8 {
		t.Errorf("Expected 8 workers, got %d", p.workers)
	}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&fakeJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if atomic.LoadInt32(&executed) != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, executed)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&fakeJob{})
	pool.Submit(&fakeJob{shouldErr: true})
	pool.Submit(&fakeJob{shouldErr: true})

	results := pool.Wait()
	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 2 {
		t.Errorf("Expected 2 failed results, got %d", failed)
	}
}

func TestPool_ShutdownCancelsInFlight(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	pool.Submit(&fakeJob{duration: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not cancel the in-flight job")
	}
}
