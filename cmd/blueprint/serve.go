package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akcero-labs/blueprint/internal/mcptools"
	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/store"
)

// runServe exposes the pipeline and run history as MCP tools over HTTP.
func runServe(cfg cliConfig, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := orchestrator.NewPipeline(cfg.Pipeline, nil, nil)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	runs, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer runs.Close()

	svc := mcptools.NewBlueprintService(pipeline, runs)
	fmt.Fprintf(os.Stderr, "blueprint MCP server listening on %s\n", addr)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
