package provider

import (
	"context"
	"fmt"
	"os"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Options controls backend resolution for a run.
type Options struct {
	// Override forces a specific backend. Empty means auto-detect.
	Override ID

	// Model overrides the live backend model.
	Model string

	// APIKey overrides the GEMINI_API_KEY environment variable.
	APIKey string
}

// Resolve selects the generation backend for one run. With no override it
// prefers the live Gemini backend when a key is configured and otherwise
// falls back to the deterministic offline generator, so the pipeline always
// has a working backend. Forcing the live backend without credentials is a
// configuration mistake and fails here, before any agent runs.
func Resolve(ctx context.Context, opts Options) (Generator, error) {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	switch opts.Override {
	case IDOffline:
		return NewOfflineGenerator(), nil
	case IDGemini:
		if key == "" {
			return nil, fmt.Errorf("provider: %s forced but no API key configured", IDGemini)
		}
		return NewGeminiGenerator(ctx, key, model)
	case "":
		if key == "" {
			return NewOfflineGenerator(), nil
		}
		gen, err := NewGeminiGenerator(ctx, key, model)
		if err != nil {
			// Client construction failed; offline keeps the run usable.
			return NewOfflineGenerator(), nil
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("provider: unknown backend %q", opts.Override)
	}
}
