package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned inside a GenerationError when the model
// produced no candidates.
var ErrEmptyResponse = errors.New("model returned no candidates")

// Compile-time check.
var _ Generator = (*GeminiGenerator)(nil)

// GeminiGenerator is a thin wrapper around the official genai client. Each
// Generate call is a single attempt; any transport error, timeout, or
// malformed response is surfaced as *GenerationError and never retried here.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator creates a GeminiGenerator bound to the given API key
// and model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &GenerationError{Provider: IDGemini, Op: "resolve", Err: err}
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

// Config reports the live backend identity.
func (g *GeminiGenerator) Config() Config {
	return Config{ID: IDGemini, Model: g.model, Live: true}
}

// Generate sends the prompt with a shape directive and requests
// application/json, then decodes the response into the shaped payload.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, shape Shape) (map[string]any, error) {
	full := prompt + "\n\n" + shapeDirective(shape)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, &GenerationError{Provider: IDGemini, Op: "call", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationError{Provider: IDGemini, Op: "decode", Err: ErrEmptyResponse}
	}

	var payload map[string]any
	text := resp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &GenerationError{Provider: IDGemini, Op: "decode", Err: err}
	}

	// A response missing shaped fields is malformed, same as invalid JSON.
	for _, f := range shape.Fields {
		if _, ok := payload[f.Name]; !ok {
			return nil, &GenerationError{
				Provider: IDGemini,
				Op:       "decode",
				Err:      fmt.Errorf("response missing field %q", f.Name),
			}
		}
	}
	return payload, nil
}

// shapeDirective renders the shape as instructions appended to the prompt.
func shapeDirective(shape Shape) string {
	var b strings.Builder
	b.WriteString("Respond with a single JSON object containing exactly these keys:\n")
	for _, f := range shape.Fields {
		switch f.Kind {
		case FieldList:
			fmt.Fprintf(&b, "- %q: array of short strings", f.Name)
		case FieldNumber:
			fmt.Fprintf(&b, "- %q: number", f.Name)
		default:
			fmt.Fprintf(&b, "- %q: string", f.Name)
		}
		if f.Hint != "" {
			fmt.Fprintf(&b, " (%s)", f.Hint)
		}
		b.WriteString("\n")
	}
	return b.String()
}
