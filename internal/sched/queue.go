// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched provides a single-worker scheduler for deferred continuations.
package sched

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONTINUATION
// =============================================================================

// Continuation is a unit of deferred work. It runs to completion on the
// runner goroutine before the next continuation starts.
type Continuation func()

// item is one scheduled continuation.
type item struct {
	id    string
	runAt time.Time
	seq   uint64
	fn    Continuation
}

// =============================================================================
// QUEUE
// =============================================================================

// Queue holds scheduled continuations ordered by due time, FIFO among
// continuations due at the same instant. Thread-safe.
type Queue struct {
	mu    sync.Mutex
	items []*item
	seq   uint64
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues fn to run after delay. Returns an id usable with Cancel.
func (q *Queue) Schedule(delay time.Duration, fn Continuation) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	it := &item{
		id:    uuid.New().String(),
		runAt: time.Now().Add(delay),
		seq:   q.seq,
		fn:    fn,
	}
	q.items = append(q.items, it)
	return it.id
}

// Cancel removes a scheduled continuation that has not yet run.
// Returns false if the id is unknown or the continuation already ran.
func (q *Queue) Cancel(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, it := range q.items {
		if it.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending continuations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// popDue removes and returns the earliest continuation due at or before now,
// or nil if none is due. Among items due at the same time, scheduling order
// wins.
func (q *Queue) popDue(now time.Time) *item {
	q.mu.Lock()
	defer q.mu.Unlock()

	best := -1
	for i, it := range q.items {
		if it.runAt.After(now) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := q.items[best]
		if it.runAt.Before(b.runAt) || (it.runAt.Equal(b.runAt) && it.seq < b.seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}

	it := q.items[best]
	q.items = append(q.items[:best], q.items[best+1:]...)
	return it
}
