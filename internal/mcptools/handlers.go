package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/report"
	"github.com/akcero-labs/blueprint/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BlueprintService handles MCP tool calls. It wraps an Orchestrator for new
// runs and a Store for history and re-rendering.
type BlueprintService struct {
	pipeline orchestrator.Orchestrator
	runs     store.Store
}

// NewBlueprintService creates a BlueprintService with the given pipeline and store.
func NewBlueprintService(pipeline orchestrator.Orchestrator, runs store.Store) *BlueprintService {
	return &BlueprintService{pipeline: pipeline, runs: runs}
}

// RunBlueprint executes one full run over the given idea text. Assembly
// failure is reported in the output rather than as a protocol error, so the
// caller still sees the run identifier and status. Storage loss downgrades
// to a warning; the run result is already in hand.
func (s *BlueprintService) RunBlueprint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunBlueprintInput,
) (*mcp.CallToolResult, RunBlueprintOutput, error) {
	if strings.TrimSpace(input.IdeaText) == "" {
		return nil, RunBlueprintOutput{}, fmt.Errorf("ideaText is required")
	}

	out, runErr := s.pipeline.Run(ctx, input.IdeaText)
	if out == nil {
		return nil, RunBlueprintOutput{}, runErr
	}

	result := RunBlueprintOutput{
		RunID:  out.ID,
		Status: string(out.Status),
	}
	if out.Blueprint != nil {
		result.Headline = out.Blueprint.Headline
		result.Summary = out.Blueprint.Summary
		for _, k := range out.Blueprint.DegradedSections {
			result.DegradedSections = append(result.DegradedSections, string(k))
		}
		for _, k := range out.Blueprint.MissingSections {
			result.MissingSections = append(result.MissingSections, string(k))
		}
	} else if runErr != nil {
		result.Warning = runErr.Error()
	}

	if err := s.runs.SaveRun(ctx, store.NewRunRecord(out)); err != nil {
		if result.Warning != "" {
			result.Warning += "; "
		}
		result.Warning += fmt.Sprintf("run not persisted: %v", err)
	} else {
		result.Saved = true
	}
	return nil, result, nil
}

// GetRun returns one persisted run record.
func (s *BlueprintService) GetRun(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRunInput,
) (*mcp.CallToolResult, GetRunOutput, error) {
	if input.RunID == "" {
		return nil, GetRunOutput{}, fmt.Errorf("runId is required")
	}
	rec, err := s.runs.LoadRun(ctx, input.RunID)
	if err != nil {
		return nil, GetRunOutput{}, err
	}
	return nil, GetRunOutput{Run: rec}, nil
}

// ListRuns returns summaries of all persisted runs, newest first.
func (s *BlueprintService) ListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	runs, err := s.runs.ListRuns(ctx)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}
	return nil, ListRunsOutput{Runs: runs, Total: len(runs)}, nil
}

// RenderReport re-renders a persisted run as Markdown.
func (s *BlueprintService) RenderReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderReportInput,
) (*mcp.CallToolResult, RenderReportOutput, error) {
	if input.RunID == "" {
		return nil, RenderReportOutput{}, fmt.Errorf("runId is required")
	}
	rec, err := s.runs.LoadRun(ctx, input.RunID)
	if err != nil {
		return nil, RenderReportOutput{}, err
	}
	if rec.Blueprint == nil {
		return nil, RenderReportOutput{}, errors.New("run has no blueprint to render")
	}

	var doc []byte
	switch input.Format {
	case "", "report":
		doc, err = report.Render(rec.Blueprint)
	case "pitch":
		doc, err = report.RenderPitch(rec.Blueprint)
	default:
		return nil, RenderReportOutput{}, fmt.Errorf("unknown format %q (want report or pitch)", input.Format)
	}
	if err != nil {
		return nil, RenderReportOutput{}, err
	}
	return nil, RenderReportOutput{Document: string(doc)}, nil
}
