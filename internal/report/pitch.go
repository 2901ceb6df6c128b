package report

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/blueprint"
)

// RenderPitch produces a one-page elevator pitch from a blueprint. Like
// Render it is pure: everything comes from section content, nothing is
// generated fresh.
func RenderPitch(bp *blueprint.ProductBlueprint) ([]byte, error) {
	if bp == nil {
		return nil, fmt.Errorf("report: nil blueprint")
	}

	var sb strings.Builder
	if bp.Headline != "" {
		fmt.Fprintf(&sb, "# %s\n\n", bp.Headline)
	} else {
		sb.WriteString("# Pitch\n\n")
	}

	if problem := text(bp.Idea, "problem"); problem != "" {
		fmt.Fprintf(&sb, "**The problem.** %s\n\n", problem)
	}
	if solution := text(bp.Idea, "solution"); solution != "" {
		fmt.Fprintf(&sb, "**Our answer.** %s\n\n", solution)
	}
	if audience := text(bp.Idea, "target_audience"); audience != "" {
		fmt.Fprintf(&sb, "**Who it serves.** %s\n\n", audience)
	}

	if props := list(bp.Idea, "value_propositions"); len(props) > 0 {
		sb.WriteString("**Why it wins.**\n")
		for _, p := range props {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
		sb.WriteString("\n")
	}

	if positioning := text(bp.MarketAnalysis, "positioning_statement"); positioning != "" {
		fmt.Fprintf(&sb, "**Positioning.** %s\n\n", positioning)
	}
	if model := text(bp.BusinessModel, "model"); model != "" {
		fmt.Fprintf(&sb, "**How it earns.** %s\n\n", model)
	}

	if bp.Summary != "" {
		fmt.Fprintf(&sb, "---\n\n%s\n", bp.Summary)
	}
	return []byte(sb.String()), nil
}

func text(p map[string]any, field string) string {
	s, _ := p[field].(string)
	return s
}

func list(p map[string]any, field string) []string {
	switch v := p[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
