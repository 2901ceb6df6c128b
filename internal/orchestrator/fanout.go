package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/provider"
	"golang.org/x/sync/errgroup"
)

// Invocation pairs an execution-phase agent with the frozen context view it
// will read. Views are value copies, so no invocation can observe another
// invocation's output within the same run.
type Invocation struct {
	Agent agent.Agent
	View  agent.View
}

// FanOut dispatches execution-phase invocations concurrently and collects
// one result per invocation. One agent's failure or timeout never cancels
// its siblings: the phase always waits for the slowest member.
type FanOut struct {
	gen        provider.Generator
	timeout    time.Duration
	limit      int
	onProgress func(ProgressEvent)
}

// NewFanOut creates a FanOut bound to a generator. limit caps concurrent
// invocations; onProgress is called from worker goroutines and may be nil.
func NewFanOut(gen provider.Generator, timeout time.Duration, limit int, onProgress func(ProgressEvent)) *FanOut {
	return &FanOut{
		gen:        gen,
		timeout:    timeout,
		limit:      limit,
		onProgress: onProgress,
	}
}

// Run dispatches every invocation and blocks until all have returned,
// failed, or timed out. Workers never report an error to the group, because
// a sibling failure must not cancel in-flight calls; failures are encoded
// in the returned results instead.
func (f *FanOut) Run(ctx context.Context, invs []Invocation) []agent.Result {
	results := make([]agent.Result, len(invs))

	limit := f.limit
	if limit <= 0 || limit > len(invs) {
		limit = len(invs)
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, inv := range invs {
		f.emit(ProgressEvent{
			Agent:  inv.Agent.Spec().Name,
			Phase:  agent.PhaseExecution,
			Status: ProgressPending,
		})

		g.Go(func() error {
			spec := inv.Agent.Spec()
			f.emit(ProgressEvent{Agent: spec.Name, Phase: spec.Phase, Status: ProgressWorking})

			res := f.invoke(ctx, inv)
			results[i] = res

			switch res.Status {
			case agent.StatusFailed:
				f.emit(ProgressEvent{
					Agent:   spec.Name,
					Phase:   spec.Phase,
					Status:  ProgressFailed,
					Message: res.Err.Error(),
				})
			default:
				f.emit(ProgressEvent{Agent: spec.Name, Phase: spec.Phase, Status: ProgressComplete})
			}
			return nil
		})
	}

	// Workers only return nil; Wait is purely a barrier here.
	_ = g.Wait()
	return results
}

// invoke runs a single agent under the per-agent timeout. The agent call
// happens in its own goroutine so a generator that ignores its context
// cannot hold the phase (or a worker slot) past the deadline.
func (f *FanOut) invoke(ctx context.Context, inv Invocation) agent.Result {
	spec := inv.Agent.Spec()

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan agent.Result, 1)
	start := time.Now()
	go func() {
		done <- inv.Agent.Run(callCtx, inv.View, f.gen)
	}()

	select {
	case res := <-done:
		return res
	case <-callCtx.Done():
		return agent.Result{
			Agent:   spec.Name,
			Status:  agent.StatusFailed,
			Err:     fmt.Errorf("agent %s: deadline %s exceeded: %w", spec.Name, f.timeout, callCtx.Err()),
			Elapsed: time.Since(start),
		}
	}
}

// emit sends a progress event if a callback is registered.
func (f *FanOut) emit(ev ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(ev)
	}
}
