package blueprint

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/agent"
)

// AssemblyError reports that a required blueprint section could not be
// filled. It names the section so the caller can present a specific failure
// instead of a generic crash.
type AssemblyError struct {
	Section SectionKey
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("blueprint: required section %q could not be filled", e.Section)
}

// Assemble merges per-agent results into the composite blueprint. It walks
// the fixed section set, takes each producing agent's payload, and fails
// with *AssemblyError when a required section's producer failed with no
// usable substitute. Degraded payloads are used as-is and recorded so the
// caller can surface them. Assemble performs no I/O and is deterministic
// given its inputs.
func Assemble(results map[agent.Name]agent.Result) (*ProductBlueprint, error) {
	bp := &ProductBlueprint{}

	for _, section := range SectionOrder {
		res, ok := results[producedBy[section]]
		usable := ok && res.Status != agent.StatusFailed && res.Payload != nil

		if !usable {
			switch {
			case section == SectionSummary:
				// The summary has a pure substitute: a digest of the
				// sections already assembled.
				bp.Summary = deriveSummary(bp)
				bp.DegradedSections = append(bp.DegradedSections, section)
				continue
			case isRequired(section):
				return nil, &AssemblyError{Section: section}
			default:
				bp.MissingSections = append(bp.MissingSections, section)
				continue
			}
		}

		if section == SectionSummary {
			bp.Summary, _ = res.Payload["executive_summary"].(string)
			if bp.Summary == "" {
				bp.Summary = deriveSummary(bp)
			}
			bp.Headline, _ = res.Payload["headline"].(string)
		} else {
			setSection(bp, section, res.Payload)
		}

		if res.Status == agent.StatusDegraded {
			bp.DegradedSections = append(bp.DegradedSections, section)
		}
	}

	if bp.Headline == "" {
		bp.Headline = deriveHeadline(bp)
	}
	return bp, nil
}

func isRequired(k SectionKey) bool {
	for _, r := range RequiredSections {
		if r == k {
			return true
		}
	}
	return false
}

func setSection(bp *ProductBlueprint, k SectionKey, p agent.Payload) {
	switch k {
	case SectionIdea:
		bp.Idea = p
	case SectionBusinessModel:
		bp.BusinessModel = p
	case SectionTechStack:
		bp.TechStack = p
	case SectionUIDesign:
		bp.UIDesign = p
	case SectionMarketAnalysis:
		bp.MarketAnalysis = p
	case SectionRoadmap:
		bp.Roadmap = p
	}
}

// deriveHeadline builds the headline purely from the idea section.
func deriveHeadline(bp *ProductBlueprint) string {
	solution, _ := bp.Idea["solution"].(string)
	audience, _ := bp.Idea["target_audience"].(string)
	switch {
	case solution != "" && audience != "":
		return fmt.Sprintf("%s — built for %s", strings.TrimSuffix(solution, "."), strings.ToLower(audience))
	case solution != "":
		return strings.TrimSuffix(solution, ".")
	default:
		return "Product blueprint"
	}
}

// deriveSummary builds a substitute executive summary from the sections
// assembled so far. Pure, so the assembler stays free of I/O.
func deriveSummary(bp *ProductBlueprint) string {
	var parts []string
	appendPart := func(label string, p agent.Payload, field string) {
		if s, _ := p[field].(string); s != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, strings.TrimSuffix(s, ".")))
		}
	}

	appendPart("Problem", bp.Idea, "problem")
	appendPart("Solution", bp.Idea, "solution")
	appendPart("Business model", bp.BusinessModel, "model")
	appendPart("Architecture", bp.TechStack, "architecture")
	appendPart("Positioning", bp.MarketAnalysis, "positioning_statement")
	appendPart("Risk watchlist", bp.Roadmap, "risk_watchlist")

	if len(parts) == 0 {
		return "Executive summary unavailable."
	}
	return strings.Join(parts, ". ") + "."
}
