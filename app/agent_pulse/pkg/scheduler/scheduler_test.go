package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_RunsImmediately(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{}, 1)
	s := New("@every 1h", func(ctx context.Context) error {
		runs.Add(1)
		done <- struct{}{}
		return nil
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestScheduler_ErrorDoesNotStop(t *testing.T) {
	var runs atomic.Int32
	s := New("@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("search failed")
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()

	if got := runs.Load(); got < 2 {
		t.Errorf("runs = %d, want at least 2", got)
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New("not a spec", func(context.Context) error { return nil })
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestScheduler_CanceledContextSkipsCycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs atomic.Int32
	s := New("@every 1h", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()

	if got := runs.Load(); got != 0 {
		t.Errorf("runs = %d, want 0", got)
	}
}

func TestScheduler_NoOverlapWithImmediateRun(t *testing.T) {
	var running, maxRunning, runs atomic.Int32
	release := make(chan struct{})
	s := New("@every 1s", func(ctx context.Context) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		runs.Add(1)
		<-release
		return nil
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// 首轮阻塞期间至少经过两次定时触发
	time.Sleep(2500 * time.Millisecond)
	close(release)
	s.Stop()

	if got := maxRunning.Load(); got != 1 {
		t.Errorf("max concurrent cycles = %d, want 1", got)
	}
	if got := runs.Load(); got < 1 {
		t.Errorf("runs = %d, want at least 1", got)
	}
}
