package ui

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopSchedulerPost(t *testing.T) {
	var posted []func()
	s := &LoopScheduler{post: func(fn func()) { posted = append(posted, fn) }}

	s.Post(nil)
	if len(posted) != 0 {
		t.Fatalf("nil functions should not be posted, got %d", len(posted))
	}

	ran := false
	s.Post(func() { ran = true })
	if ran {
		t.Error("Post should not run the function in the calling turn")
	}
	if len(posted) != 1 {
		t.Fatalf("Expected 1 posted function, got %d", len(posted))
	}
	posted[0]()
	if !ran {
		t.Error("Posted function should run when the loop gets to it")
	}
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	var runs int32
	done := make(chan struct{}, 4)
	d := NewDebouncer(30*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
		done <- struct{}{}
	})

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Debounced function did not run")
	}

	// give a stale timer the chance to fire
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("Expected exactly 1 run, got %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var runs int32
	d := NewDebouncer(20*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })

	if d.Stop() {
		t.Error("Stop without a pending run should report false")
	}

	d.Trigger()
	if !d.Stop() {
		t.Error("Stop should report the pending run")
	}

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Errorf("Stopped debouncer should not run, got %d runs", got)
	}
}

func TestDebouncerSetDelay(t *testing.T) {
	d := NewDebouncer(time.Second, nil)
	d.SetDelay(10 * time.Millisecond)
	if d.Delay() != 10*time.Millisecond {
		t.Errorf("Expected delay 10ms, got %v", d.Delay())
	}

	// a nil function is allowed
	d.Trigger()
	time.Sleep(30 * time.Millisecond)
}
