//go:build e2e

package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/akcero-labs/blueprint/internal/report"
	"github.com/akcero-labs/blueprint/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ideaText = "A subscription service that pairs busy dog owners with vetted local dog walkers, with live walk tracking and automatic payment."

// runOffline executes one full offline run, draining progress like the CLI does.
func runOffline(t *testing.T) *orchestrator.RunOutcome {
	t.Helper()

	pipeline, err := orchestrator.NewPipeline(orchestrator.Config{
		ProviderOverride: provider.IDOffline,
	}, nil, nil)
	require.NoError(t, err)

	progressCh := pipeline.Progress()
	drainDone := make(chan struct{})
	var events []orchestrator.ProgressEvent
	go func() {
		defer close(drainDone)
		for ev := range progressCh {
			events = append(events, ev)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := pipeline.Run(ctx, ideaText)
	require.NoError(t, err)

	pipeline.Close()
	<-drainDone

	assert.NotEmpty(t, events, "progress events should have been emitted")
	return out
}

// TestOfflineJourney runs the whole offline path a user would hit from the
// CLI: pipeline, persistence, reload, and both renderings.
func TestOfflineJourney(t *testing.T) {
	ctx := context.Background()
	out := runOffline(t)

	assert.Equal(t, orchestrator.RunComplete, out.Status)
	require.NotNil(t, out.Blueprint)
	assert.Len(t, out.Results, 7)
	for _, k := range blueprint.RequiredSections {
		assert.NotNilf(t, out.Blueprint.Section(k), "section %s", k)
	}

	// Persist and reload through whichever durable backend is available.
	s, err := store.Open(ctx, t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.SaveRun(ctx, store.NewRunRecord(out)))

	rec, err := s.LoadRun(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, rec.Blueprint)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, out.ID, runs[0].ID)

	// Re-rendering a loaded run must match rendering the live outcome.
	live, err := report.Render(out.Blueprint)
	require.NoError(t, err)
	loaded, err := report.Render(rec.Blueprint)
	require.NoError(t, err)
	assert.Equal(t, live, loaded)

	pitch, err := report.RenderPitch(rec.Blueprint)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pitch), "# "))
}

// TestOfflineRunsAreReproducible runs the pipeline twice on the same input
// and demands identical documents.
func TestOfflineRunsAreReproducible(t *testing.T) {
	first := runOffline(t)
	second := runOffline(t)

	docA, err := report.Render(first.Blueprint)
	require.NoError(t, err)
	docB, err := report.Render(second.Blueprint)
	require.NoError(t, err)
	assert.Equal(t, string(docA), string(docB))
}

// TestExecutionFailureKeepsJourneyAlive drives the pipeline with a backend
// that loses one optional execution agent and checks the degraded document
// still renders with the gap marked.
func TestExecutionFailureKeepsJourneyAlive(t *testing.T) {
	pipeline, err := orchestrator.NewPipeline(orchestrator.Config{
		TimeoutPerAgent: time.Second,
	}, nil, &flakyGenerator{failFirstField: "segment"})
	require.NoError(t, err)
	defer pipeline.Close()

	out, err := pipeline.Run(context.Background(), ideaText)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.RunDegraded, out.Status)
	require.NotNil(t, out.Blueprint)
	assert.Contains(t, out.Blueprint.MissingSections, blueprint.SectionMarketAnalysis)

	doc, err := report.Render(out.Blueprint)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "_Not available for this run._")
}

// flakyGenerator proxies to the offline generator but fails any request
// whose shape starts with failFirstField.
type flakyGenerator struct {
	failFirstField string
}

func (g *flakyGenerator) Config() provider.Config {
	return provider.Config{ID: "flaky", Live: true}
}

func (g *flakyGenerator) Generate(ctx context.Context, prompt string, shape provider.Shape) (map[string]any, error) {
	if len(shape.Fields) > 0 && shape.Fields[0].Name == g.failFirstField {
		return nil, &provider.GenerationError{Provider: "flaky", Op: "generate", Err: context.DeadlineExceeded}
	}
	return provider.NewOfflineGenerator().Generate(ctx, prompt, shape)
}

var _ provider.Generator = (*flakyGenerator)(nil)
