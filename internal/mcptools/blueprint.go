package mcptools

import "github.com/akcero-labs/blueprint/internal/store"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// RunBlueprintInput is the input for the run_blueprint MCP tool.
type RunBlueprintInput struct {
	IdeaText string `json:"ideaText" jsonschema:"the unstructured product idea to turn into a blueprint"`
}

// RunBlueprintOutput is the result of the run_blueprint MCP tool.
type RunBlueprintOutput struct {
	RunID            string   `json:"runId"`
	Status           string   `json:"status"`
	Headline         string   `json:"headline,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	DegradedSections []string `json:"degradedSections,omitempty"`
	MissingSections  []string `json:"missingSections,omitempty"`
	Saved            bool     `json:"saved"`
	Warning          string   `json:"warning,omitempty"`
}

// GetRunInput is the input for the get_run MCP tool.
type GetRunInput struct {
	RunID string `json:"runId" jsonschema:"identifier of a previously completed run"`
}

// GetRunOutput is the result of the get_run MCP tool.
type GetRunOutput struct {
	Run *store.RunRecord `json:"run"`
}

// ListRunsInput is the input for the list_runs MCP tool.
type ListRunsInput struct{}

// ListRunsOutput is the result of the list_runs MCP tool.
type ListRunsOutput struct {
	Runs  []store.RunSummary `json:"runs"`
	Total int                `json:"total"`
}

// RenderReportInput is the input for the render_report MCP tool.
type RenderReportInput struct {
	RunID  string `json:"runId" jsonschema:"identifier of a previously completed run"`
	Format string `json:"format,omitempty" jsonschema:"report (full Markdown document) or pitch (one-page pitch). Default: report"`
}

// RenderReportOutput is the result of the render_report MCP tool.
type RenderReportOutput struct {
	Document string `json:"document"`
}
