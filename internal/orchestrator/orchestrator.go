package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/provider"
)

// RunStatus is the run-level verdict.
type RunStatus string

const (
	// RunComplete means every agent succeeded.
	RunComplete RunStatus = "complete"

	// RunDegraded means at least one agent fell back or failed but every
	// required blueprint section was still assembled.
	RunDegraded RunStatus = "degraded"

	// RunFailed means assembly could not fill a required section.
	RunFailed RunStatus = "failed"
)

// RunOutcome is the full record of one orchestration pass. It is created at
// run start, finalized at run end, and immutable thereafter; ownership
// transfers to the caller once returned.
type RunOutcome struct {
	// ID uniquely identifies the run.
	ID string

	// Input is the raw input text the run was given.
	Input string

	// Provider is the backend configuration resolved for the run.
	Provider provider.Config

	// Results holds exactly one result per registered agent.
	Results map[agent.Name]agent.Result

	// Blueprint is the assembled document, nil when Status is RunFailed.
	Blueprint *blueprint.ProductBlueprint

	// MissingSection names the required section that could not be filled
	// when Status is RunFailed.
	MissingSection blueprint.SectionKey

	// Status is the run-level verdict.
	Status RunStatus

	StartedAt  time.Time
	FinishedAt time.Time
}

// runState tracks coordinator progression through one run.
type runState int

const (
	stateInit runState = iota
	stateDiscovery
	stateExecution
	stateSynthesis
	stateAssembling
	stateDone
	stateAborted
)

func (s runState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateDiscovery:
		return "discovery"
	case stateExecution:
		return "execution"
	case stateSynthesis:
		return "synthesis"
	case stateAssembling:
		return "assembling"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// transitions lists the legal forward edges of the run state machine. Done
// and Aborted are terminal; Aborted is reachable only from Init because
// agent-level failures never abort a run.
var transitions = map[runState][]runState{
	stateInit:       {stateDiscovery, stateAborted},
	stateDiscovery:  {stateExecution},
	stateExecution:  {stateSynthesis},
	stateSynthesis:  {stateAssembling},
	stateAssembling: {stateDone},
}

// advance moves to the next state, rejecting edges outside the machine.
func (s runState) advance(next runState) (runState, error) {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return next, nil
		}
	}
	return s, fmt.Errorf("orchestrator: illegal state transition %s -> %s", s, next)
}

// ProgressStatus is the state of one agent within a run.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressDegraded ProgressStatus = "degraded"
	ProgressFailed   ProgressStatus = "failed"
)

// ProgressEvent is emitted to the user as agents move through the pipeline.
type ProgressEvent struct {
	Agent   agent.Name
	Phase   agent.Phase
	Status  ProgressStatus
	Message string
}

// Orchestrator coordinates one blueprint pipeline.
type Orchestrator interface {
	// Run executes the full pipeline over the input text.
	Run(ctx context.Context, input string) (*RunOutcome, error)

	// Progress returns a channel that emits progress events.
	Progress() <-chan ProgressEvent
}
