package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// RoadmapAgent composes the execution roadmap from the union of discovery
// and execution outputs. Synthesis phase: it runs after every specialist has
// returned and must tolerate unavailable inputs.
type RoadmapAgent struct {
	*base
}

// NewRoadmapAgent creates the roadmap synthesis agent.
func NewRoadmapAgent() *RoadmapAgent {
	return &RoadmapAgent{base: &base{
		spec: Spec{
			Name:       "roadmap",
			Capability: "delivery planning",
			Phase:      PhaseSynthesis,
			Needs:      []Key{KeyIdea, KeyBusiness, KeyTech},
			Produces:   KeyRoadmap,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "phases", Kind: provider.FieldList, Hint: "ordered delivery phases with focus and duration"},
			{Name: "milestones", Kind: provider.FieldList, Hint: "the milestones that prove momentum"},
			{Name: "total_duration_weeks", Kind: provider.FieldNumber, Hint: "total weeks to launch"},
			{Name: "risk_watchlist", Kind: provider.FieldText, Hint: "the top risk to watch"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are a delivery lead. Compose a time-phased roadmap for this " +
				"product from the analysis below. Where an input is marked unavailable, " +
				"plan conservatively around the gap.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Complexity: %s\n", v.Text(KeyIdea, "execution_complexity"))
			writeSectionSummary(&b, v, KeyBusiness, "Business model", "model")
			writeSectionSummary(&b, v, KeyTech, "Architecture", "architecture")
			return b.String()
		},
	}}
}

// writeSectionSummary appends one line summarizing an upstream output,
// noting explicitly when the output is an unavailable marker.
func writeSectionSummary(b *strings.Builder, v View, k Key, label, field string) {
	p, ok := v.Lookup(k)
	if !ok {
		return
	}
	if IsUnavailable(p) {
		fmt.Fprintf(b, "%s: (unavailable)\n", label)
		return
	}
	if s, ok := p[field].(string); ok {
		fmt.Fprintf(b, "%s: %s\n", label, s)
	}
}
