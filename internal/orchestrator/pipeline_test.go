package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akcero-labs/blueprint/internal/agent"
	"github.com/akcero-labs/blueprint/internal/blueprint"
	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = "A mobile app that matches dog owners with trusted local dog walkers and handles booking and payment."

// scriptedGenerator fulfils every request except the agents listed in fail,
// identified by the first field of their declared shape.
type scriptedGenerator struct {
	fail  map[string]error
	delay map[string]time.Duration
}

func (g *scriptedGenerator) Config() provider.Config {
	return provider.Config{ID: "scripted", Model: "scripted", Live: true}
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, shape provider.Shape) (map[string]any, error) {
	key := shape.Fields[0].Name
	if d, ok := g.delay[key]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := g.fail[key]; ok {
		return nil, &provider.GenerationError{Provider: "scripted", Op: "generate", Err: err}
	}
	out := make(map[string]any, len(shape.Fields))
	for _, f := range shape.Fields {
		switch f.Kind {
		case provider.FieldList:
			out[f.Name] = []any{"alpha", "beta"}
		case provider.FieldNumber:
			out[f.Name] = 14.0
		default:
			out[f.Name] = "scripted " + f.Name
		}
	}
	return out, nil
}

func newTestPipeline(t *testing.T, gen provider.Generator) *Pipeline {
	t.Helper()
	p, err := NewPipeline(Config{TimeoutPerAgent: time.Second}, nil, gen)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestPipelineOfflineRunCompletes(t *testing.T) {
	p, err := NewPipeline(Config{ProviderOverride: provider.IDOffline}, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Equal(t, RunComplete, out.Status)
	assert.Equal(t, provider.IDOffline, out.Provider.ID)
	assert.NotEmpty(t, out.ID)
	require.NotNil(t, out.Blueprint)
	assert.Len(t, out.Results, 7)
	for name, res := range out.Results {
		assert.Equalf(t, agent.StatusSuccess, res.Status, "agent %s", name)
	}
	for _, k := range blueprint.RequiredSections {
		assert.NotNilf(t, out.Blueprint.Section(k), "section %s", k)
	}
	assert.False(t, out.FinishedAt.Before(out.StartedAt))
}

func TestPipelineOfflineRunIsDeterministic(t *testing.T) {
	p, err := NewPipeline(Config{ProviderOverride: provider.IDOffline}, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	first, err := p.Run(context.Background(), sampleInput)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), sampleInput)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	for _, k := range blueprint.SectionOrder {
		assert.Equalf(t, first.Blueprint.Section(k), second.Blueprint.Section(k), "section %s", k)
	}
	assert.Equal(t, first.Blueprint.Summary, second.Blueprint.Summary)
}

func TestPipelineDiscoveryFailureFallsBackOffline(t *testing.T) {
	gen := &scriptedGenerator{fail: map[string]error{"problem": errors.New("quota exhausted")}}
	p := newTestPipeline(t, gen)

	out, err := p.Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Equal(t, RunDegraded, out.Status)

	idea := out.Results["idea"]
	assert.Equal(t, agent.StatusDegraded, idea.Status)
	assert.Contains(t, idea.Reason, "offline fallback")
	assert.NotNil(t, idea.Payload)

	// Downstream agents still ran against the substituted discovery output.
	for _, name := range []agent.Name{"business", "tech", "design", "market", "roadmap", "summary"} {
		assert.Equalf(t, agent.StatusSuccess, out.Results[name].Status, "agent %s", name)
	}
	require.NotNil(t, out.Blueprint)
}

func TestPipelineOptionalAgentFailureDegradesRun(t *testing.T) {
	gen := &scriptedGenerator{fail: map[string]error{"experience_principles": errors.New("backend 503")}}
	p := newTestPipeline(t, gen)

	out, err := p.Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Equal(t, RunDegraded, out.Status)
	assert.Equal(t, agent.StatusFailed, out.Results["design"].Status)

	require.NotNil(t, out.Blueprint)
	assert.Nil(t, out.Blueprint.Section(blueprint.SectionUIDesign))
	assert.Contains(t, out.Blueprint.MissingSections, blueprint.SectionUIDesign)
	assert.Equal(t, agent.StatusSuccess, out.Results["summary"].Status)
}

func TestPipelineRequiredAgentFailureFailsRun(t *testing.T) {
	gen := &scriptedGenerator{fail: map[string]error{"model": errors.New("backend 500")}}
	p := newTestPipeline(t, gen)

	out, err := p.Run(context.Background(), sampleInput)

	require.Error(t, err)
	var asmErr *blueprint.AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, blueprint.SectionBusinessModel, asmErr.Section)

	require.NotNil(t, out, "outcome must be returned for persistence even on failure")
	assert.Equal(t, RunFailed, out.Status)
	assert.Equal(t, blueprint.SectionBusinessModel, out.MissingSection)
	assert.Nil(t, out.Blueprint)
	assert.Equal(t, agent.StatusFailed, out.Results["business"].Status)
}

func TestPipelineExecutionTimeoutContained(t *testing.T) {
	gen := &scriptedGenerator{delay: map[string]time.Duration{"segment": 500 * time.Millisecond}}
	p, err := NewPipeline(Config{TimeoutPerAgent: 30 * time.Millisecond}, nil, gen)
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Equal(t, RunDegraded, out.Status)

	market := out.Results["market"]
	assert.Equal(t, agent.StatusFailed, market.Status)
	assert.ErrorIs(t, market.Err, context.DeadlineExceeded)

	assert.Equal(t, agent.StatusSuccess, out.Results["business"].Status)
	assert.Equal(t, agent.StatusSuccess, out.Results["tech"].Status)
	require.NotNil(t, out.Blueprint)
	assert.Contains(t, out.Blueprint.MissingSections, blueprint.SectionMarketAnalysis)
}

func TestPipelineSynthesisFailureFallsBackOffline(t *testing.T) {
	gen := &scriptedGenerator{fail: map[string]error{"executive_summary": errors.New("truncated response")}}
	p := newTestPipeline(t, gen)

	out, err := p.Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Equal(t, RunDegraded, out.Status)
	assert.Equal(t, agent.StatusDegraded, out.Results["summary"].Status)
	require.NotNil(t, out.Blueprint)
	assert.NotEmpty(t, out.Blueprint.Summary)
	assert.Contains(t, out.Blueprint.DegradedSections, blueprint.SectionSummary)
}

func TestPipelineForcedLiveWithoutKeyAborts(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	p, err := NewPipeline(Config{ProviderOverride: provider.IDGemini}, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Run(context.Background(), sampleInput)

	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, RunFailed, out.Status)
	assert.Empty(t, out.Results)
	assert.Nil(t, out.Blueprint)
}

func TestNewPipelineRejectsInvalidRoster(t *testing.T) {
	bad := agent.NewRoster(
		&testAgent{spec: agent.Spec{
			Name:     "lonely",
			Phase:    agent.PhaseExecution,
			Needs:    []agent.Key{"never_produced"},
			Produces: "orphan",
		}},
	)

	_, err := NewPipeline(Config{}, bad, nil)

	require.Error(t, err)
	var cfgErr *agent.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunStateTransitions(t *testing.T) {
	s, err := stateInit.advance(stateDiscovery)
	require.NoError(t, err)
	s, err = s.advance(stateExecution)
	require.NoError(t, err)
	s, err = s.advance(stateSynthesis)
	require.NoError(t, err)
	s, err = s.advance(stateAssembling)
	require.NoError(t, err)
	s, err = s.advance(stateDone)
	require.NoError(t, err)
	assert.Equal(t, stateDone, s)

	_, err = stateExecution.advance(stateDiscovery)
	assert.Error(t, err, "phases never run twice")

	_, err = stateSynthesis.advance(stateAborted)
	assert.Error(t, err, "agent failures never abort a run")

	_, err = stateInit.advance(stateAborted)
	assert.NoError(t, err)
}
