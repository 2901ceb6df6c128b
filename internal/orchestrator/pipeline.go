package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/google/uuid"
)

// Pipeline coordinates one fixed roster of agents through the three run
// phases and assembles their results into a product blueprint. It is safe
// to reuse across runs; each run gets its own context and identifier.
type Pipeline struct {
	cfg      Config
	roster   *agent.Roster
	gen      provider.Generator
	offline  *provider.OfflineGenerator
	progress *ProgressReporter
}

var _ Orchestrator = (*Pipeline)(nil)

// NewPipeline validates the roster and returns a ready coordinator. An
// invalid roster is a configuration error and nothing runs. gen may be nil,
// in which case the backend is resolved per run from the config.
func NewPipeline(cfg Config, roster *agent.Roster, gen provider.Generator) (*Pipeline, error) {
	if roster == nil {
		roster = agent.DefaultRoster()
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg.withDefaults(),
		roster:   roster,
		gen:      gen,
		offline:  provider.NewOfflineGenerator(),
		progress: NewProgressReporter(),
	}, nil
}

// Progress returns the channel of agent-level progress events.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close releases the progress channel. Call after the last run.
func (p *Pipeline) Close() {
	p.progress.Close()
}

// Run executes discovery, execution, and synthesis over the given input and
// assembles the blueprint. The returned outcome is non-nil even on failure
// so callers can persist partial results; the error reports why a run
// aborted or why assembly failed.
func (p *Pipeline) Run(ctx context.Context, input string) (*RunOutcome, error) {
	out := &RunOutcome{
		ID:        uuid.NewString(),
		Input:     input,
		Results:   make(map[agent.Name]agent.Result, len(p.roster.Agents())),
		Status:    RunFailed,
		StartedAt: time.Now(),
	}
	defer func() { out.FinishedAt = time.Now() }()

	state := stateInit
	advanceTo := func(next runState) error {
		s, err := state.advance(next)
		state = s
		return err
	}

	gen := p.gen
	if gen == nil {
		var err error
		gen, err = provider.Resolve(ctx, provider.Options{
			Override: p.cfg.ProviderOverride,
			Model:    p.cfg.Model,
		})
		if err != nil {
			_ = advanceTo(stateAborted)
			return out, err
		}
	}
	out.Provider = gen.Config()

	shared := agent.NewContext(input)

	// Discovery runs sequentially; everything downstream reads its output.
	// A failed discovery agent is replaced by the offline fallback for the
	// same request, so the run continues in degraded form.
	if err := advanceTo(stateDiscovery); err != nil {
		return out, err
	}
	for _, a := range p.roster.Phase(agent.PhaseDiscovery) {
		res := p.runSequential(ctx, a, shared.Snapshot(), gen)
		out.Results[a.Spec().Name] = res
		if res.Status != agent.StatusFailed {
			shared.Set(a.Spec().Produces, res.Payload)
		}
	}

	// Execution agents fan out over one frozen snapshot, so none of them
	// can observe a sibling's output. Failures stay contained per agent.
	if err := advanceTo(stateExecution); err != nil {
		return out, err
	}
	frozen := shared.Snapshot()
	execAgents := p.roster.Phase(agent.PhaseExecution)
	invs := make([]Invocation, 0, len(execAgents))
	for _, a := range execAgents {
		invs = append(invs, Invocation{Agent: a, View: frozen})
	}
	fan := NewFanOut(gen, p.cfg.TimeoutPerAgent, p.cfg.MaxParallel, p.progress.Emit)
	for _, res := range fan.Run(ctx, invs) {
		out.Results[res.Agent] = res
		if res.Status != agent.StatusFailed {
			a, _ := p.roster.ByName(res.Agent)
			shared.Set(a.Spec().Produces, res.Payload)
		}
	}

	// Synthesis runs sequentially over everything produced so far. Slots a
	// failed execution agent left empty are marked unavailable so synthesis
	// prompts name the gap instead of silently omitting it.
	if err := advanceTo(stateSynthesis); err != nil {
		return out, err
	}
	for _, a := range p.roster.Phase(agent.PhaseSynthesis) {
		view := shared.Snapshot().WithUnavailable(p.missingNeeds(shared, a.Spec())...)
		res := p.runSequential(ctx, a, view, gen)
		out.Results[a.Spec().Name] = res
		if res.Status != agent.StatusFailed {
			shared.Set(a.Spec().Produces, res.Payload)
		}
	}

	if err := advanceTo(stateAssembling); err != nil {
		return out, err
	}
	bp, err := blueprint.Assemble(out.Results)
	if err != nil {
		var asmErr *blueprint.AssemblyError
		if errors.As(err, &asmErr) {
			out.MissingSection = asmErr.Section
		}
		_ = advanceTo(stateDone)
		return out, err
	}
	out.Blueprint = bp

	out.Status = RunComplete
	if bp.IsDegraded() || p.anyDegraded(out.Results) {
		out.Status = RunDegraded
	}
	return out, advanceTo(stateDone)
}

// runSequential invokes one discovery or synthesis agent and substitutes a
// deterministic offline payload for the same prompt and shape if the bound
// backend fails. Sequential phases therefore always fill their slot.
func (p *Pipeline) runSequential(ctx context.Context, a agent.Agent, v agent.View, gen provider.Generator) agent.Result {
	spec := a.Spec()
	p.progress.Emit(ProgressEvent{Agent: spec.Name, Phase: spec.Phase, Status: ProgressWorking})

	res := a.Run(ctx, v, gen)
	if res.Status == agent.StatusFailed {
		res = p.substitute(ctx, a, v, res.Err)
	}

	status := ProgressComplete
	msg := ""
	switch res.Status {
	case agent.StatusDegraded:
		status = ProgressDegraded
		msg = res.Reason
	case agent.StatusFailed:
		status = ProgressFailed
		msg = res.Err.Error()
	}
	p.progress.Emit(ProgressEvent{Agent: spec.Name, Phase: spec.Phase, Status: status, Message: msg})
	return res
}

// substitute regenerates an agent's payload with the offline backend after
// a live failure. The offline generator is total, so this only fails if the
// run context is already cancelled.
func (p *Pipeline) substitute(ctx context.Context, a agent.Agent, v agent.View, cause error) agent.Result {
	spec := a.Spec()
	start := time.Now()
	payload, err := p.offline.Generate(ctx, a.Prompt(v), a.Shape())
	if err != nil {
		return agent.Result{
			Agent:   spec.Name,
			Status:  agent.StatusFailed,
			Err:     errors.Join(cause, err),
			Elapsed: time.Since(start),
		}
	}
	return agent.Result{
		Agent:   spec.Name,
		Status:  agent.StatusDegraded,
		Payload: payload,
		Reason:  fmt.Sprintf("offline fallback after %s backend failure: %v", spec.Phase, cause),
		Elapsed: time.Since(start),
	}
}

// missingNeeds lists the declared needs with no value in the shared context.
func (p *Pipeline) missingNeeds(c *agent.Context, spec agent.Spec) []agent.Key {
	var missing []agent.Key
	for _, k := range spec.Needs {
		if _, ok := c.Lookup(k); !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// anyDegraded reports whether any agent fell back to a substitute payload.
func (p *Pipeline) anyDegraded(results map[agent.Name]agent.Result) bool {
	for _, res := range results {
		if res.Status == agent.StatusDegraded {
			return true
		}
	}
	return false
}
