// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent orchestrates a task from request to completion.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jeranaias/rigrun-agent/internal/contextset"
	"github.com/jeranaias/rigrun-agent/internal/history"
	"github.com/jeranaias/rigrun-agent/internal/plan"
	"github.com/jeranaias/rigrun-agent/internal/sched"
	"github.com/jeranaias/rigrun-agent/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoCompletionCallback is returned when Run is invoked without a
	// completion callback. Rejected synchronously, before any session
	// state is created.
	ErrNoCompletionCallback = errors.New("completion callback is required")

	// ErrSessionActive is returned when Run is invoked while a session is
	// already active. Concurrent starts are rejected, never silently
	// overwritten.
	ErrSessionActive = errors.New("a session is already active")
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// PlanRequester is the planning collaborator.
type PlanRequester interface {
	RequestPlan(ctx context.Context, task string, set *contextset.Set, onChunk func(string)) (*plan.Plan, error)
}

// Presenter is the presentation collaborator. It renders the plan and
// invokes exactly one of the two callbacks exactly once.
type Presenter interface {
	Present(title, body string, onConfirm, onCancel func())
}

// =============================================================================
// REQUEST
// =============================================================================

// Request is one task invocation.
type Request struct {
	// Prompt is the task description
	Prompt string

	// Primary is the currently-focused artifact, if the host has one
	Primary *contextset.Artifact

	// FilePaths are additional context paths; unreadable or duplicate
	// paths are silently skipped
	FilePaths []string

	// OnLog receives human-readable progress lines in causal order
	OnLog func(line string)

	// OnComplete receives the terminal outcome exactly once: a success
	// message with nil error, or an empty result with a non-nil error.
	// Required.
	OnComplete func(result string, err error)
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Options configures an Orchestrator.
type Options struct {
	// Requester streams planning requests. Required.
	Requester PlanRequester

	// Collector gathers the context set. Required.
	Collector *contextset.Collector

	// Presenter is the confirmation gate. Required.
	Presenter Presenter

	// Queue schedules step continuations. Required; a Runner draining it
	// must be started by the caller.
	Queue *sched.Queue

	// History records terminal runs. Optional.
	History *history.Store

	// StepDelay is the pacing delay between consecutive steps
	// (default: 1s).
	StepDelay time.Duration
}

// Orchestrator coordinates the pipeline: context collection, planning,
// confirmation, and sequential step execution. One session at a time.
type Orchestrator struct {
	requester PlanRequester
	collector *contextset.Collector
	presenter Presenter
	queue     *sched.Queue
	store     *history.Store
	stepDelay time.Duration

	mu      sync.Mutex
	session *Session
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	delay := opts.StepDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &Orchestrator{
		requester: opts.Requester,
		collector: opts.Collector,
		presenter: opts.Presenter,
		queue:     opts.Queue,
		store:     opts.History,
		stepDelay: delay,
	}
}

// Session returns the most recent session, active or not.
func (o *Orchestrator) Session() *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// Cancel requests deferred cancellation of the active session: the active
// flag is cleared and the next scheduled advance terminates the run.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	s := o.session
	o.mu.Unlock()
	if s != nil {
		s.cancel()
	}
}

// Run accepts a task and starts the pipeline. It returns nil once the task
// is accepted; progress and the terminal outcome arrive through the request
// callbacks. It returns ErrNoCompletionCallback when OnComplete is missing
// and ErrSessionActive when a session is already active.
func (o *Orchestrator) Run(ctx context.Context, req Request) error {
	if req.OnComplete == nil {
		return ErrNoCompletionCallback
	}

	o.mu.Lock()
	if o.session != nil && o.session.Active() {
		o.mu.Unlock()
		return ErrSessionActive
	}
	s := newSession(req.Prompt)
	o.session = s
	o.mu.Unlock()

	onLog := req.OnLog
	if onLog == nil {
		onLog = func(string) {}
	}
	done := &completion{
		session:    s,
		store:      o.store,
		onComplete: req.OnComplete,
	}

	o.queue.Schedule(0, func() {
		o.runPipeline(ctx, s, req, onLog, done)
	})
	return nil
}

// runPipeline performs context collection, planning, and confirmation.
func (o *Orchestrator) runPipeline(ctx context.Context, s *Session, req Request, onLog func(string), done *completion) {
	s.setState(StatePlanning)

	onLog("Gathering context...")
	set := o.collector.Collect(req.Primary, req.FilePaths)
	s.setContext(set)
	onLog(fmt.Sprintf("Collected %d context entries", set.Len()))

	onLog("Requesting plan...")
	p, err := o.requester.RequestPlan(ctx, s.Task(), set, nil)
	if err != nil {
		// Fail-fast: no retry, no partial plan.
		done.finish(StateFailed, history.OutcomeFailed, "", fmt.Errorf("Agent planning failed: %w", err))
		return
	}
	s.setPlan(p)
	onLog(fmt.Sprintf("Parsed plan with %d steps (~%d tokens)", len(p.Steps), p.EstimatedTokens))

	s.setState(StateAwaitingConfirm)
	title := "Proposed plan: " + util.TruncateRunes(util.FirstLine(s.Task()), 60)
	o.presenter.Present(title, p.Body(),
		func() {
			s.setState(StateRunning)
			onLog("Plan confirmed")
			o.queue.Schedule(0, func() {
				o.advance(s, onLog, done)
			})
		},
		func() {
			onLog("Plan cancelled by user")
			done.finish(StateCancelled, history.OutcomeCancelled, "Agent run cancelled", nil)
		})
}

// advance executes one step-executor transition:
//
//  1. Inactive session or exhausted cursor: terminate and complete.
//  2. Otherwise: log the step under the cursor, advance the cursor, and
//     schedule the next advance after the step delay.
//
// Each invocation runs on the scheduler, so steps are strictly sequential.
func (o *Orchestrator) advance(s *Session, onLog func(string), done *completion) {
	if !s.Active() {
		onLog("Agent run complete")
		done.finish(StateCompleted, history.OutcomeCompleted, "Agent run complete", nil)
		return
	}

	idx, step, ok := s.nextStep()
	if !ok {
		onLog("Agent run complete")
		done.finish(StateCompleted, history.OutcomeCompleted, "Agent run complete", nil)
		return
	}

	onLog(fmt.Sprintf("Executing step %d: %s", idx, step.Description))

	o.queue.Schedule(o.stepDelay, func() {
		o.advance(s, onLog, done)
	})
}

// =============================================================================
// COMPLETION
// =============================================================================

// completion delivers the terminal outcome exactly once, regardless of
// which terminal path fires.
type completion struct {
	once       sync.Once
	session    *Session
	store      *history.Store
	onComplete func(result string, err error)
}

// finish terminates the session, records history, and fires the completion
// callback with a mutually exclusive success-or-error payload.
func (c *completion) finish(state State, outcome history.Outcome, result string, err error) {
	c.once.Do(func() {
		c.session.terminate(state)
		c.record(outcome)
		c.onComplete(result, err)
	})
}

// record persists the terminal run when a history store is configured.
func (c *completion) record(outcome history.Outcome) {
	if c.store == nil {
		return
	}

	run := history.Run{
		ID:         c.session.ID(),
		Task:       c.session.Task(),
		Outcome:    outcome,
		StartedAt:  c.session.StartedAt(),
		FinishedAt: time.Now(),
	}
	if p := c.session.Plan(); p != nil {
		run.Steps = len(p.Steps)
		run.EstimatedTokens = p.EstimatedTokens
	}
	if err := c.store.Record(run); err != nil {
		log.Printf("agent: failed to record run history: %v", err)
	}
}
