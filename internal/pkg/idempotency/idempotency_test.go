package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupTracker(t *testing.T) *StateTracker {
	t.Helper()

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	opt, err := goredis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}

	client := goredis.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	return New(client)
}

func TestAcquire(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()

	state, err := tracker.Acquire(ctx, "op-1", time.Minute)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if state != StateNone {
		t.Fatalf("first acquire state = %s, want %s", state, StateNone)
	}

	state, err = tracker.Acquire(ctx, "op-1", time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if state != StateInProgress {
		t.Fatalf("second acquire state = %s, want %s", state, StateInProgress)
	}
}

func TestMarkCompletedAndFailed(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()

	if _, err := tracker.Acquire(ctx, "op-done", time.Minute); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := tracker.MarkCompleted(ctx, "op-done", time.Minute); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	state, err := tracker.Acquire(ctx, "op-done", time.Minute)
	if err != nil {
		t.Fatalf("acquire completed: %v", err)
	}
	if state != StateCompleted {
		t.Fatalf("state = %s, want %s", state, StateCompleted)
	}

	if _, err := tracker.Acquire(ctx, "op-bad", time.Minute); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := tracker.MarkFailed(ctx, "op-bad", time.Minute); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	state, err = tracker.Acquire(ctx, "op-bad", time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if state != StateFailed {
		t.Fatalf("state = %s, want %s", state, StateFailed)
	}
}

func TestExec(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	if err := tracker.Exec(ctx, "exec-1", fn); err != nil {
		t.Fatalf("first exec: %v", err)
	}
	if err := tracker.Exec(ctx, "exec-1", fn); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second exec err = %v, want %v", err, ErrAlreadyCompleted)
	}
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if err := tracker.Exec(ctx, "exec-2", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("exec err = %v, want %v", err, boom)
	}
	if err := tracker.Exec(ctx, "exec-2", fn); !errors.Is(err, ErrAlreadyFailed) {
		t.Fatalf("retry exec err = %v, want %v", err, ErrAlreadyFailed)
	}
}
