// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sched

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRunnerExecutesInDueOrder(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	var mu sync.Mutex
	var order []int

	record := func(n int) Continuation {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}
	}

	queue.Schedule(60*time.Millisecond, record(3))
	queue.Schedule(0, record(1))
	queue.Schedule(30*time.Millisecond, record(2))

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	})

	mu.Lock()
	defer mu.Unlock()
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestRunnerFIFOAmongSameDelay(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 5; i++ {
		n := i
		queue.Schedule(0, func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		})
	}

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 5
	})

	mu.Lock()
	defer mu.Unlock()
	for i, n := range order {
		if n != i+1 {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestRunnerNeverRunsConcurrently(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var done atomic.Int32

	for i := 0; i < 10; i++ {
		queue.Schedule(0, func() {
			if inFlight.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
			done.Add(1)
		})
	}

	waitFor(t, 3*time.Second, func() bool { return done.Load() == 10 })

	if overlapped.Load() {
		t.Error("continuations ran concurrently")
	}
}

func TestCancelPendingContinuation(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	var ran atomic.Bool
	id := queue.Schedule(80*time.Millisecond, func() { ran.Store(true) })

	if !queue.Cancel(id) {
		t.Fatal("Cancel should succeed for a pending continuation")
	}
	if queue.Cancel(id) {
		t.Error("second Cancel should fail")
	}

	time.Sleep(150 * time.Millisecond)
	if ran.Load() {
		t.Error("cancelled continuation ran")
	}
}

func TestStopPreventsPendingWork(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()

	var ran atomic.Bool
	queue.Schedule(80*time.Millisecond, func() { ran.Store(true) })

	runner.Stop()
	time.Sleep(120 * time.Millisecond)

	if ran.Load() {
		t.Error("continuation ran after Stop")
	}
}

func TestRunnerSurvivesPanic(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	var ran atomic.Bool
	queue.Schedule(0, func() { panic("boom") })
	queue.Schedule(20*time.Millisecond, func() { ran.Store(true) })

	waitFor(t, 2*time.Second, func() bool { return ran.Load() })
}

func TestRescheduleFromContinuation(t *testing.T) {
	queue := NewQueue()
	runner := NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	// A continuation that schedules its own successor, the way the step
	// executor advances.
	var count atomic.Int32
	var tick Continuation
	tick = func() {
		if count.Add(1) < 3 {
			queue.Schedule(10*time.Millisecond, tick)
		}
	}
	queue.Schedule(0, tick)

	waitFor(t, 2*time.Second, func() bool { return count.Load() == 3 })
}
