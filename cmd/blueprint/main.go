package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/akcero-labs/blueprint/internal/config"
	"github.com/akcero-labs/blueprint/internal/orchestrator"
	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/joho/godotenv"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Input       string
	File        string
	Provider    string
	Model       string
	Timeout     int
	MaxParallel int
	DataDir     string
	Verbose     bool
	List        bool
	Show        string
	Report      string
	Pitch       string
	ServeMCP    bool
	Addr        string
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("blueprint", flag.ContinueOnError)
	fs.StringVar(&flags.Input, "input", "", "product idea text to analyze")
	fs.StringVar(&flags.File, "file", "", "read the product idea from a file")
	fs.StringVar(&flags.Provider, "provider", "", "generation backend: gemini or offline (default: auto-detect)")
	fs.StringVar(&flags.Model, "model", "", "model for the live backend")
	fs.IntVar(&flags.Timeout, "timeout", 0, "per-agent timeout in seconds")
	fs.IntVar(&flags.MaxParallel, "max-parallel", 0, "maximum concurrent analysis agents")
	fs.StringVar(&flags.DataDir, "data-dir", "", "directory for persisted runs (default: .blueprint)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable per-agent progress output")
	fs.BoolVar(&flags.List, "list", false, "list persisted runs")
	fs.StringVar(&flags.Show, "show", "", "print a persisted run record as JSON")
	fs.StringVar(&flags.Report, "report", "", "render a persisted run as a Markdown report")
	fs.StringVar(&flags.Pitch, "pitch", "", "render a persisted run as a one-page pitch")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server for agent integration")
	fs.StringVar(&flags.Addr, "addr", ":8632", "listen address for the MCP server")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	// Secrets come from the environment; a local .env is a convenience.
	godotenv.Load()

	fileCfg, err := config.Load(".")
	if err != nil {
		return err
	}
	cfg := mergeConfig(fileCfg, flags)

	switch {
	case flags.ServeMCP:
		return runServe(cfg, flags.Addr)
	case flags.List:
		return runList(cfg)
	case flags.Show != "":
		return runShow(cfg, flags.Show)
	case flags.Report != "":
		return runRender(cfg, flags.Report, false)
	case flags.Pitch != "":
		return runRender(cfg, flags.Pitch, true)
	}

	input, err := readInput(flags, fs.Args())
	if err != nil {
		return err
	}
	return runBlueprint(cfg, input)
}

// cliConfig is the merged runtime configuration: file values overridden by
// flags, defaults filled last.
type cliConfig struct {
	Pipeline orchestrator.Config
	DataDir  string
}

func mergeConfig(file *config.ProjectConfig, flags cliFlags) cliConfig {
	cfg := cliConfig{
		Pipeline: orchestrator.Config{
			ProviderOverride: provider.ID(file.Provider),
			Model:            file.Model,
			MaxParallel:      file.MaxParallel,
			Verbose:          file.Verbose,
		},
		DataDir: file.DataDir,
	}
	if file.TimeoutSeconds > 0 {
		cfg.Pipeline.TimeoutPerAgent = time.Duration(file.TimeoutSeconds) * time.Second
	}

	if flags.Provider != "" {
		cfg.Pipeline.ProviderOverride = provider.ID(flags.Provider)
	}
	if flags.Model != "" {
		cfg.Pipeline.Model = flags.Model
	}
	if flags.Timeout > 0 {
		cfg.Pipeline.TimeoutPerAgent = time.Duration(flags.Timeout) * time.Second
	}
	if flags.MaxParallel > 0 {
		cfg.Pipeline.MaxParallel = flags.MaxParallel
	}
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.Verbose {
		cfg.Pipeline.Verbose = true
	}
	if cfg.DataDir == "" {
		cfg.DataDir = ".blueprint"
	}
	return cfg
}

// readInput resolves the idea text from -input, -file, or a positional
// argument, in that order.
func readInput(flags cliFlags, rest []string) (string, error) {
	if flags.Input != "" {
		return flags.Input, nil
	}
	if flags.File != "" {
		data, err := os.ReadFile(flags.File)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(rest) > 0 {
		return rest[0], nil
	}
	return "", fmt.Errorf("no idea given: use -input, -file, or a positional argument")
}
