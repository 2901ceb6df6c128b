package orchestrator

import (
	"time"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// DefaultTimeoutPerAgent bounds each execution-phase backend call.
const DefaultTimeoutPerAgent = 30 * time.Second

// DefaultMaxParallel caps the execution-phase worker pool.
const DefaultMaxParallel = 4

// Config holds runtime configuration for blueprint runs.
type Config struct {
	// ProviderOverride forces a specific backend; empty means auto-detect.
	// Forcing the offline backend makes the whole pipeline deterministic.
	ProviderOverride provider.ID

	// Model overrides the live backend model.
	Model string

	// TimeoutPerAgent bounds each execution-phase agent call.
	TimeoutPerAgent time.Duration

	// MaxParallel caps concurrent execution-phase agents. The effective
	// pool size is the smaller of this and the number of execution agents.
	MaxParallel int

	// Verbose enables agent-level progress logging.
	Verbose bool
}

// withDefaults fills unset knobs.
func (c Config) withDefaults() Config {
	if c.TimeoutPerAgent <= 0 {
		c.TimeoutPerAgent = DefaultTimeoutPerAgent
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = DefaultMaxParallel
	}
	return c
}
