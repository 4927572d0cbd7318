package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	err error
}

func (r *mockResult) GetError() error { return r.err }

type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	for i := 0; i < 10; i++ {
		pool.Submit(&mockJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 10 {
		t.Errorf("expected 10 executions, got %d", n)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{shouldErr: false})
	pool.Submit(&mockJob{shouldErr: true})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	errCount := 0
	for _, r := range results {
		if r.GetError() != nil {
			errCount++
		}
	}
	if errCount != 2 {
		t.Errorf("expected 2 errors, got %d", errCount)
	}
}

func TestPoolBacklogExceedsResultBuffer(t *testing.T) {
	// Far more jobs than the workers*2 channel capacity. Submission must
	// not block on results produced before Wait is called.
	pool := NewPool(1)
	pool.Start()

	var executed int32
	const jobs = 100

	done := make(chan []Result)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&mockJob{executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("expected %d results, got %d", jobs, len(results))
		}
		if n := atomic.LoadInt32(&executed); n != jobs {
			t.Errorf("expected %d executions, got %d", jobs, n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pool stalled submitting more jobs than the result buffer holds")
	}
}

func TestPoolShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	pool.Submit(&mockJob{duration: 5 * time.Second, executed: &executed})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return promptly")
	}
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Shutdown()

	// Must not block or panic
	pool.Submit(&mockJob{})
}
