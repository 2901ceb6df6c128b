package agent

import (
	"context"
	"time"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// Phase is one of the three ordered pipeline stages. Discovery and synthesis
// run their agents sequentially in registration order; execution runs its
// agents concurrently over a frozen context snapshot.
type Phase int

const (
	PhaseDiscovery Phase = iota
	PhaseExecution
	PhaseSynthesis
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscovery:
		return "discovery"
	case PhaseExecution:
		return "execution"
	case PhaseSynthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// Name identifies an agent.
type Name string

// Key identifies a context slot produced by exactly one agent.
type Key string

// Payload is the structured output of one agent invocation.
type Payload = map[string]any

// Spec is an agent's identity and wiring: what it needs from the shared
// context and what it produces. Immutable once registered.
type Spec struct {
	// Name is the agent identifier.
	Name Name

	// Capability is a short tag describing what the agent is good at.
	Capability string

	// Phase is the pipeline stage the agent belongs to.
	Phase Phase

	// Needs lists the context keys the agent reads, in declaration order.
	// Every key must be produced by an agent scheduled earlier.
	Needs []Key

	// Produces is the context key this agent fills.
	Produces Key
}

// Status tags the outcome of one agent invocation.
type Status int

const (
	// StatusSuccess means the bound backend produced the payload.
	StatusSuccess Status = iota

	// StatusDegraded means a fallback payload was substituted.
	StatusDegraded

	// StatusFailed means no payload was produced.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of exactly one agent invocation.
type Result struct {
	// Agent names the invoked agent.
	Agent Name

	// Status tags the outcome.
	Status Status

	// Payload is set for success and degraded outcomes.
	Payload Payload

	// Reason explains a degraded outcome.
	Reason string

	// Err is set for failed outcomes.
	Err error

	// Elapsed is how long the invocation took.
	Elapsed time.Duration
}

// Agent is the uniform contract every specialist satisfies. Prompt and Shape
// are exposed separately from Run so the coordinator can regenerate a
// fallback payload for the same request when a live call fails.
type Agent interface {
	// Spec returns the agent's immutable wiring.
	Spec() Spec

	// Prompt builds the backend prompt from a context view.
	Prompt(v View) string

	// Shape declares the structured payload the agent expects back.
	Shape() provider.Shape

	// Run invokes the backend once and reports the tagged outcome.
	Run(ctx context.Context, v View, gen provider.Generator) Result
}

// Compile-time check.
var _ Agent = (*base)(nil)

// base supplies the shared Run implementation. Specialists embed it and
// provide their spec, shape, and prompt builder.
type base struct {
	spec   Spec
	shape  provider.Shape
	prompt func(View) string
}

func (b *base) Spec() Spec {
	return b.spec
}

func (b *base) Shape() provider.Shape {
	return b.shape
}

func (b *base) Prompt(v View) string {
	return b.prompt(v)
}

// Run performs a single backend call. Retry and fallback policy live in the
// coordinator, not here.
func (b *base) Run(ctx context.Context, v View, gen provider.Generator) Result {
	start := time.Now()
	payload, err := gen.Generate(ctx, b.prompt(v), b.shape)
	elapsed := time.Since(start)

	if err != nil {
		return Result{Agent: b.spec.Name, Status: StatusFailed, Err: err, Elapsed: elapsed}
	}
	return Result{Agent: b.spec.Name, Status: StatusSuccess, Payload: payload, Elapsed: elapsed}
}
