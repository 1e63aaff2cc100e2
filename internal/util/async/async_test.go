package async

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunParallel_Success(t *testing.T) {
	var count atomic.Int32

	tasks := []Task{
		{Name: "subnet-a", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "subnet-b", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "subnet-c", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
	}

	if err := RunParallel(context.Background(), tasks); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if count.Load() != 3 {
		t.Errorf("expected 3 tasks to run, got %d", count.Load())
	}
}

func TestRunParallel_EmptyTasks(t *testing.T) {
	if err := RunParallel(context.Background(), nil); err != nil {
		t.Errorf("expected no error for nil tasks, got: %v", err)
	}
	if err := RunParallel(context.Background(), []Task{}); err != nil {
		t.Errorf("expected no error for empty tasks, got: %v", err)
	}
}

func TestRunParallel_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")

	tasks := []Task{
		{Name: "ok", Func: func(_ context.Context) error {
			return nil
		}},
		{Name: "broken", Func: func(_ context.Context) error {
			return boom
		}},
	}

	err := RunParallel(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to provision broken") {
		t.Errorf("error should name the failed task, got: %v", err)
	}
}

func TestRunParallel_WaitsForAllTasks(t *testing.T) {
	var finished atomic.Int32

	tasks := []Task{
		{Name: "fails-fast", Func: func(_ context.Context) error {
			return errors.New("immediate failure")
		}},
		{Name: "slow", Func: func(_ context.Context) error {
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
			return nil
		}},
	}

	if err := RunParallel(context.Background(), tasks); err == nil {
		t.Fatal("expected error, got nil")
	}
	if finished.Load() != 1 {
		t.Error("slow task should have completed before RunParallel returned")
	}
}

func TestRunParallel_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	tasks := []Task{
		{Name: "check", Func: func(taskCtx context.Context) error {
			if taskCtx.Value(key{}) != "value" {
				return errors.New("context not threaded through")
			}
			return nil
		}},
	}

	if err := RunParallel(ctx, tasks); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}
