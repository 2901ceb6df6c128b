package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewBlueprintMCPServer creates an MCP server with all blueprint tools registered.
func NewBlueprintMCPServer(svc *BlueprintService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "blueprint",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_blueprint",
		Description: "Turn an unstructured product idea into a full product blueprint. Runs the discovery, execution, and synthesis agents and persists the result.",
	}, svc.RunBlueprint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_run",
		Description: "Return the full record of a previously completed run, including per-agent results and the assembled blueprint.",
	}, svc.GetRun)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List all persisted runs, newest first, with status and headline.",
	}, svc.ListRuns)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_report",
		Description: "Re-render a persisted run as a Markdown document. Formats: report (full document) or pitch (one page).",
	}, svc.RenderReport)

	return server
}

// RunMCPServer starts an HTTP server exposing the blueprint MCP tools.
func RunMCPServer(ctx context.Context, svc *BlueprintService, addr string) error {
	server := NewBlueprintMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
