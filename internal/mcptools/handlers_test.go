package mcptools

import (
	"context"
	"testing"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/akcero-labs/blueprint/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrchestrator is a test double for orchestrator.Orchestrator.
type mockOrchestrator struct {
	outcome    *orchestrator.RunOutcome
	runErr     error
	progressCh chan orchestrator.ProgressEvent
}

func newMockOrchestrator() *mockOrchestrator {
	ch := make(chan orchestrator.ProgressEvent)
	close(ch) // immediately closed since we don't need progress
	return &mockOrchestrator{progressCh: ch}
}

func (m *mockOrchestrator) Run(_ context.Context, input string) (*orchestrator.RunOutcome, error) {
	return m.outcome, m.runErr
}

func (m *mockOrchestrator) Progress() <-chan orchestrator.ProgressEvent {
	return m.progressCh
}

func completeOutcome(id string) *orchestrator.RunOutcome {
	return &orchestrator.RunOutcome{
		ID:       id,
		Input:    "an idea",
		Provider: provider.Config{ID: provider.IDOffline},
		Results: map[agent.Name]agent.Result{
			"idea": {Agent: "idea", Status: agent.StatusSuccess, Payload: agent.Payload{"solution": "s"}},
		},
		Blueprint: &blueprint.ProductBlueprint{
			Idea:     agent.Payload{"problem": "p", "solution": "s"},
			Summary:  "A summary.",
			Headline: "A headline",
		},
		Status:     orchestrator.RunComplete,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
}

func TestBlueprintService_RunBlueprint(t *testing.T) {
	mock := newMockOrchestrator()
	mock.outcome = completeOutcome("run-1")
	st := store.NewMemStore()
	svc := NewBlueprintService(mock, st)

	_, out, err := svc.RunBlueprint(context.Background(), nil, RunBlueprintInput{IdeaText: "a dog walking app"})
	require.NoError(t, err)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, "complete", out.Status)
	assert.Equal(t, "A headline", out.Headline)
	assert.True(t, out.Saved)
	assert.Empty(t, out.Warning)

	rec, err := st.LoadRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "an idea", rec.Input)
}

func TestBlueprintService_RunBlueprint_EmptyInput(t *testing.T) {
	svc := NewBlueprintService(newMockOrchestrator(), store.NewMemStore())

	_, _, err := svc.RunBlueprint(context.Background(), nil, RunBlueprintInput{IdeaText: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ideaText is required")
}

func TestBlueprintService_RunBlueprint_StorageLossIsWarning(t *testing.T) {
	mock := newMockOrchestrator()
	mock.outcome = completeOutcome("run-1")
	st := store.NewMemStore()
	st.Unavailable = true
	svc := NewBlueprintService(mock, st)

	_, out, err := svc.RunBlueprint(context.Background(), nil, RunBlueprintInput{IdeaText: "an idea"})
	require.NoError(t, err, "storage loss must not fail the tool call")
	assert.Equal(t, "run-1", out.RunID)
	assert.False(t, out.Saved)
	assert.Contains(t, out.Warning, "not persisted")
}

func TestBlueprintService_RunBlueprint_AssemblyFailureReported(t *testing.T) {
	mock := newMockOrchestrator()
	mock.outcome = &orchestrator.RunOutcome{
		ID:             "run-1",
		Status:         orchestrator.RunFailed,
		MissingSection: blueprint.SectionBusinessModel,
		Results:        map[agent.Name]agent.Result{},
	}
	mock.runErr = &blueprint.AssemblyError{Section: blueprint.SectionBusinessModel}
	svc := NewBlueprintService(mock, store.NewMemStore())

	_, out, err := svc.RunBlueprint(context.Background(), nil, RunBlueprintInput{IdeaText: "an idea"})
	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.Contains(t, out.Warning, "business_model")
	assert.True(t, out.Saved, "failed runs are persisted too")
}

func TestBlueprintService_GetRun(t *testing.T) {
	st := store.NewMemStore()
	rec := store.NewRunRecord(completeOutcome("run-1"))
	require.NoError(t, st.SaveRun(context.Background(), rec))
	svc := NewBlueprintService(newMockOrchestrator(), st)

	_, out, err := svc.GetRun(context.Background(), nil, GetRunInput{RunID: "run-1"})
	require.NoError(t, err)
	require.NotNil(t, out.Run)
	assert.Equal(t, "run-1", out.Run.ID)

	_, _, err = svc.GetRun(context.Background(), nil, GetRunInput{RunID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBlueprintService_ListRuns(t *testing.T) {
	st := store.NewMemStore()
	require.NoError(t, st.SaveRun(context.Background(), store.NewRunRecord(completeOutcome("run-1"))))
	svc := NewBlueprintService(newMockOrchestrator(), st)

	_, out, err := svc.ListRuns(context.Background(), nil, ListRunsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Runs, 1)
	assert.Equal(t, "run-1", out.Runs[0].ID)
}

func TestBlueprintService_RenderReport(t *testing.T) {
	st := store.NewMemStore()
	require.NoError(t, st.SaveRun(context.Background(), store.NewRunRecord(completeOutcome("run-1"))))
	svc := NewBlueprintService(newMockOrchestrator(), st)

	_, out, err := svc.RenderReport(context.Background(), nil, RenderReportInput{RunID: "run-1"})
	require.NoError(t, err)
	assert.Contains(t, out.Document, "# A headline")
	assert.Contains(t, out.Document, "## Idea")

	_, out, err = svc.RenderReport(context.Background(), nil, RenderReportInput{RunID: "run-1", Format: "pitch"})
	require.NoError(t, err)
	assert.Contains(t, out.Document, "**The problem.** p")

	_, _, err = svc.RenderReport(context.Background(), nil, RenderReportInput{RunID: "run-1", Format: "pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestBlueprintService_RenderReport_NoBlueprint(t *testing.T) {
	st := store.NewMemStore()
	rec := store.NewRunRecord(&orchestrator.RunOutcome{
		ID:      "run-1",
		Status:  orchestrator.RunFailed,
		Results: map[agent.Name]agent.Result{},
	})
	require.NoError(t, st.SaveRun(context.Background(), rec))
	svc := NewBlueprintService(newMockOrchestrator(), st)

	_, _, err := svc.RenderReport(context.Background(), nil, RenderReportInput{RunID: "run-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no blueprint")
}
