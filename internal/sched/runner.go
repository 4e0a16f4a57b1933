// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched provides a single-worker scheduler for deferred continuations.
package sched

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// RUNNER
// =============================================================================

// tickInterval is how often the runner polls the queue for due work.
const tickInterval = 10 * time.Millisecond

// Runner drains a Queue on a single goroutine, so scheduled continuations
// never run concurrently with each other.
type Runner struct {
	queue   *Queue
	stop    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewRunner creates a runner for the given queue.
func NewRunner(queue *Queue) *Runner {
	return &Runner{
		queue: queue,
		stop:  make(chan struct{}),
	}
}

// Start begins processing continuations from the queue.
func (r *Runner) Start() {
	r.wg.Add(1)
	go r.processLoop()
}

// Stop halts the runner. The continuation in flight, if any, finishes;
// pending continuations never run. Safe to call once.
func (r *Runner) Stop() {
	r.stopped.Store(true)
	close(r.stop)
	r.wg.Wait()
}

// processLoop runs due continuations one at a time, in due order.
func (r *Runner) processLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			for {
				if r.stopped.Load() {
					return
				}
				it := r.queue.popDue(now)
				if it == nil {
					break
				}
				r.run(it)
			}
		}
	}
}

// run executes one continuation, containing panics so a failing
// continuation cannot take down the runner.
func (r *Runner) run(it *item) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("sched: continuation %s panicked: %v", it.id, rec)
		}
	}()
	it.fn()
}
