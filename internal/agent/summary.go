package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// SummaryAgent writes the executive summary over everything produced so
// far, including the roadmap. It is registered after the roadmap agent, so
// it may depend on the roadmap key.
type SummaryAgent struct {
	*base
}

// NewSummaryAgent creates the executive-summary synthesis agent.
func NewSummaryAgent() *SummaryAgent {
	return &SummaryAgent{base: &base{
		spec: Spec{
			Name:       "summary",
			Capability: "editorial synthesis",
			Phase:      PhaseSynthesis,
			Needs:      []Key{KeyIdea, KeyBusiness, KeyTech, KeyMarket, KeyRoadmap},
			Produces:   KeySummary,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "executive_summary", Kind: provider.FieldText, Hint: "confident summary under 130 words"},
			{Name: "headline", Kind: provider.FieldText, Hint: "one punchy headline for the blueprint"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are an editor. Write a confident executive summary of this " +
				"product blueprint: problem, solution, business model, technical " +
				"advantage, positioning, and launch momentum. Treat sections marked " +
				"unavailable as open questions, not blockers.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Problem: %s\n", v.Text(KeyIdea, "problem"))
			fmt.Fprintf(&b, "Solution: %s\n", v.Text(KeyIdea, "solution"))
			writeSectionSummary(&b, v, KeyBusiness, "Business model", "model")
			writeSectionSummary(&b, v, KeyTech, "Architecture", "architecture")
			writeSectionSummary(&b, v, KeyMarket, "Positioning", "positioning_statement")
			writeSectionSummary(&b, v, KeyRoadmap, "Risk watchlist", "risk_watchlist")
			return b.String()
		},
	}}
}
