package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/report"
	"github.com/akcero-labs/blueprint/internal/store"
)

// runBlueprint executes one full run, prints the report, and persists the
// outcome. Storage loss is a warning on stderr, never a failed run.
func runBlueprint(cfg cliConfig, input string) error {
	ctx := context.Background()

	pipeline, err := orchestrator.NewPipeline(cfg.Pipeline, nil, nil)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	if cfg.Pipeline.Verbose {
		go func() {
			defer close(done)
			for ev := range pipeline.Progress() {
				fmt.Fprintln(os.Stderr, orchestrator.FormatProgress(ev))
			}
		}()
	} else {
		close(done)
	}

	out, runErr := pipeline.Run(ctx, input)
	pipeline.Close()
	<-done

	if out != nil {
		saveRun(ctx, cfg, out)
	}
	if runErr != nil {
		return runErr
	}

	doc, err := report.Render(out.Blueprint)
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(doc); err != nil {
		return err
	}

	if out.Status == orchestrator.RunDegraded {
		fmt.Fprintln(os.Stderr, "note: run completed in degraded mode, see section markers")
	}
	fmt.Fprintf(os.Stderr, "run %s %s\n", out.ID, out.Status)
	return nil
}

// saveRun persists the outcome, downgrading storage problems to warnings.
func saveRun(ctx context.Context, cfg cliConfig, out *orchestrator.RunOutcome) {
	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not persisted: %v\n", err)
		return
	}
	defer s.Close()

	if err := s.SaveRun(ctx, store.NewRunRecord(out)); err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			fmt.Fprintf(os.Stderr, "warning: run not persisted: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "warning: save run: %v\n", err)
	}
}
