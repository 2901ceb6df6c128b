// Package report renders assembled blueprints for humans. Rendering is pure
// and deterministic: the same blueprint always produces the same bytes, so
// re-rendering a persisted run never drifts from the original document.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akcero-labs/blueprint/internal/blueprint"
)

// sectionTitles maps section keys to document headings in display form.
var sectionTitles = map[blueprint.SectionKey]string{
	blueprint.SectionIdea:           "Idea",
	blueprint.SectionBusinessModel:  "Business Model",
	blueprint.SectionTechStack:      "Tech Stack",
	blueprint.SectionUIDesign:       "UI & Design",
	blueprint.SectionMarketAnalysis: "Market Analysis",
	blueprint.SectionRoadmap:        "Roadmap",
}

// Render produces the full Markdown report for a blueprint.
func Render(bp *blueprint.ProductBlueprint) ([]byte, error) {
	if bp == nil {
		return nil, fmt.Errorf("report: nil blueprint")
	}

	var sb strings.Builder
	if bp.Headline != "" {
		fmt.Fprintf(&sb, "# %s\n\n", bp.Headline)
	} else {
		sb.WriteString("# Product Blueprint\n\n")
	}
	if bp.Summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", bp.Summary)
	}

	degraded := make(map[blueprint.SectionKey]bool, len(bp.DegradedSections))
	for _, k := range bp.DegradedSections {
		degraded[k] = true
	}
	missing := make(map[blueprint.SectionKey]bool, len(bp.MissingSections))
	for _, k := range bp.MissingSections {
		missing[k] = true
	}

	for _, k := range blueprint.SectionOrder {
		if k == blueprint.SectionSummary {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", sectionTitles[k])
		switch {
		case missing[k]:
			sb.WriteString("_Not available for this run._\n\n")
		default:
			if degraded[k] {
				sb.WriteString("_Generated by the offline fallback._\n\n")
			}
			writePayload(&sb, bp.Section(k))
		}
	}

	if degraded[blueprint.SectionSummary] {
		sb.WriteString("---\n\n_The executive summary was derived from section content._\n")
	}
	return []byte(sb.String()), nil
}

// writePayload renders one section payload as a bullet list. Fields are
// sorted by name so output is stable regardless of map iteration order.
func writePayload(sb *strings.Builder, p map[string]any) {
	if len(p) == 0 {
		sb.WriteString("_Empty section._\n\n")
		return
	}
	fields := make([]string, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		switch v := p[f].(type) {
		case string:
			fmt.Fprintf(sb, "- **%s:** %s\n", fieldLabel(f), v)
		case []string:
			fmt.Fprintf(sb, "- **%s:**\n", fieldLabel(f))
			for _, e := range v {
				fmt.Fprintf(sb, "  - %s\n", e)
			}
		case []any:
			fmt.Fprintf(sb, "- **%s:**\n", fieldLabel(f))
			for _, e := range v {
				fmt.Fprintf(sb, "  - %v\n", e)
			}
		case float64:
			if v == float64(int64(v)) {
				fmt.Fprintf(sb, "- **%s:** %d\n", fieldLabel(f), int64(v))
			} else {
				fmt.Fprintf(sb, "- **%s:** %.1f\n", fieldLabel(f), v)
			}
		default:
			fmt.Fprintf(sb, "- **%s:** %v\n", fieldLabel(f), v)
		}
	}
	sb.WriteString("\n")
}

// fieldLabel turns a snake_case field name into a display label.
func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if upper := strings.ToUpper(w); upper == "AI" || upper == "UI" {
			words[i] = upper
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
