package store

import (
	"sort"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/orchestrator"
)

// AgentRecord is the persisted form of one agent result. Errors are stored
// as text so records survive a JSON round trip.
type AgentRecord struct {
	Agent     string        `json:"agent"`
	Status    string        `json:"status"`
	Payload   agent.Payload `json:"payload,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Error     string        `json:"error,omitempty"`
	ElapsedMS int64         `json:"elapsed_ms"`
}

// RunRecord is the persisted form of one run: identity, provenance, the
// per-agent results, and the assembled blueprint if assembly succeeded.
type RunRecord struct {
	ID             string                      `json:"id"`
	Input          string                      `json:"input"`
	Provider       string                      `json:"provider"`
	Model          string                      `json:"model,omitempty"`
	Status         string                      `json:"status"`
	MissingSection string                      `json:"missing_section,omitempty"`
	Agents         []AgentRecord               `json:"agents"`
	Blueprint      *blueprint.ProductBlueprint `json:"blueprint,omitempty"`
	StartedAt      time.Time                   `json:"started_at"`
	FinishedAt     time.Time                   `json:"finished_at"`
}

// RunSummary is the listing view of a persisted run.
type RunSummary struct {
	ID        string    `json:"id"`
	Headline  string    `json:"headline,omitempty"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// NewRunRecord converts a run outcome into its persisted form. Agent
// results are sorted by name so records serialize deterministically.
func NewRunRecord(out *orchestrator.RunOutcome) *RunRecord {
	agents := make([]AgentRecord, 0, len(out.Results))
	for _, res := range out.Results {
		ar := AgentRecord{
			Agent:     string(res.Agent),
			Status:    res.Status.String(),
			Payload:   res.Payload,
			Reason:    res.Reason,
			ElapsedMS: res.Elapsed.Milliseconds(),
		}
		if res.Err != nil {
			ar.Error = res.Err.Error()
		}
		agents = append(agents, ar)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].Agent < agents[j].Agent })

	return &RunRecord{
		ID:             out.ID,
		Input:          out.Input,
		Provider:       string(out.Provider.ID),
		Model:          out.Provider.Model,
		Status:         string(out.Status),
		MissingSection: string(out.MissingSection),
		Agents:         agents,
		Blueprint:      out.Blueprint,
		StartedAt:      out.StartedAt,
		FinishedAt:     out.FinishedAt,
	}
}

// Summary returns the listing view of the record.
func (r *RunRecord) Summary() RunSummary {
	s := RunSummary{
		ID:        r.ID,
		Status:    r.Status,
		StartedAt: r.StartedAt,
	}
	if r.Blueprint != nil {
		s.Headline = r.Blueprint.Headline
	}
	return s
}
