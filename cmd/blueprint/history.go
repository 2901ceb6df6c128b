package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/akcero-labs/blueprint/internal/report"
	"github.com/akcero-labs/blueprint/internal/store"
)

func runList(cfg cliConfig) error {
	ctx := context.Background()
	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		fmt.Println("Run 'blueprint -input \"your idea\"' to create one.")
		return nil
	}

	for _, r := range runs {
		headline := r.Headline
		if headline == "" {
			headline = "(no headline)"
		}
		fmt.Printf("  %s  %s  [%s]  %s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Status, headline)
	}
	return nil
}

func runShow(cfg cliConfig, id string) error {
	ctx := context.Background()
	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.LoadRun(ctx, id)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}

func runRender(cfg cliConfig, id string, pitch bool) error {
	ctx := context.Background()
	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.LoadRun(ctx, id)
	if err != nil {
		return err
	}
	if rec.Blueprint == nil {
		return fmt.Errorf("run %s has no blueprint to render", id)
	}

	var doc []byte
	if pitch {
		doc, err = report.RenderPitch(rec.Blueprint)
	} else {
		doc, err = report.Render(rec.Blueprint)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(doc)
	return err
}
