package agent

import (
	"fmt"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// IdeaAgent derives the foundational understanding of the input idea: the
// problem, the solution, the audience, and the domain everything downstream
// builds on. It is the only discovery agent, so it reads nothing but the raw
// input text.
type IdeaAgent struct {
	*base
}

// NewIdeaAgent creates the idea discovery agent.
func NewIdeaAgent() *IdeaAgent {
	return &IdeaAgent{base: &base{
		spec: Spec{
			Name:       "idea",
			Capability: "concept analysis",
			Phase:      PhaseDiscovery,
			Produces:   KeyIdea,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "problem", Kind: provider.FieldText, Hint: "the core problem the idea addresses"},
			{Name: "solution", Kind: provider.FieldText, Hint: "the signature solution in one sentence"},
			{Name: "target_audience", Kind: provider.FieldText, Hint: "who the product serves"},
			{Name: "domain", Kind: provider.FieldText, Hint: "the market domain"},
			{Name: "keywords", Kind: provider.FieldList, Hint: "up to ten topical keywords"},
			{Name: "value_propositions", Kind: provider.FieldList, Hint: "why users will care"},
			{Name: "success_metrics", Kind: provider.FieldList, Hint: "how success will be measured"},
			{Name: "execution_complexity", Kind: provider.FieldText, Hint: "lean, standard, or complex"},
			{Name: "narrative", Kind: provider.FieldText, Hint: "a bold two-sentence product narrative"},
		}},
		prompt: func(v View) string {
			return fmt.Sprintf(
				"You are a product strategist. Analyze this startup idea and extract "+
					"its foundational understanding: the crisp problem, the signature "+
					"solution, the audience, and the domain.\n\nIdea: %s", v.Input())
		},
	}}
}
