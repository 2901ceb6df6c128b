package provider

import (
	"context"
	"fmt"
)

// ID identifies a generation backend.
type ID string

const (
	// IDGemini is the live Gemini backend.
	IDGemini ID = "gemini"

	// IDOffline is the deterministic offline generator.
	IDOffline ID = "offline"
)

// Config describes the backend bound to a single run. It is resolved once
// per run and reused by every agent in that run so the generated voice stays
// consistent. Never mutated after Resolve.
type Config struct {
	// ID names the backend.
	ID ID

	// Model is the backend model identifier. Empty for the offline generator.
	Model string

	// Live is true when the backend performs network I/O.
	Live bool
}

func (c Config) String() string {
	if c.Model == "" {
		return string(c.ID)
	}
	return fmt.Sprintf("%s:%s", c.ID, c.Model)
}

// FieldKind is the value type a shape field expects.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldList   FieldKind = "list"
	FieldNumber FieldKind = "number"
)

// Field is one named slot in an output shape.
type Field struct {
	// Name is the JSON key the backend must fill.
	Name string

	// Kind is the expected value type.
	Kind FieldKind

	// Hint guides the backend on what the field should contain.
	Hint string
}

// Shape describes the structured payload an agent expects back from a
// backend. Field order is significant: the offline generator and prompt
// builders walk fields in declaration order.
type Shape struct {
	Fields []Field
}

// Generator produces a structured payload from a prompt and an output shape.
// Implementations: GeminiGenerator (live), OfflineGenerator (deterministic).
type Generator interface {
	// Config returns the backend configuration this generator is bound to.
	Config() Config

	// Generate fills the shape from the prompt. Live backends surface any
	// transport error, timeout, or malformed response as *GenerationError;
	// no retries happen at this layer. The offline generator is total and
	// never returns an error.
	Generate(ctx context.Context, prompt string, shape Shape) (map[string]any, error)
}

// GenerationError reports a single failed backend call. The coordinator
// decides whether to substitute a fallback payload or record the failure;
// this layer only describes what went wrong.
type GenerationError struct {
	Provider ID
	Op       string // "call", "decode", "resolve"
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
