package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// TechAgent proposes the technology stack and reference architecture aligned
// with the discovered complexity of the idea.
type TechAgent struct {
	*base
}

// NewTechAgent creates the tech-stack execution agent.
func NewTechAgent() *TechAgent {
	return &TechAgent{base: &base{
		spec: Spec{
			Name:       "tech",
			Capability: "architecture",
			Phase:      PhaseExecution,
			Needs:      []Key{KeyIdea},
			Produces:   KeyTech,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "architecture", Kind: provider.FieldText, Hint: "reference architecture in one vivid sentence"},
			{Name: "stack", Kind: provider.FieldList, Hint: "concrete technologies"},
			{Name: "ai_components", Kind: provider.FieldList, Hint: "AI capabilities that give the product an edge"},
			{Name: "scalability", Kind: provider.FieldText, Hint: "how the system grows with load"},
			{Name: "resilience_notes", Kind: provider.FieldText, Hint: "reliability and risk mitigation priorities"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are a principal engineer. Define the technology foundation " +
				"for this product: architecture, stack, and AI components.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Solution: %s\n", v.Text(KeyIdea, "solution"))
			fmt.Fprintf(&b, "Domain: %s\n", v.Text(KeyIdea, "domain"))
			fmt.Fprintf(&b, "Complexity: %s\n", v.Text(KeyIdea, "execution_complexity"))
			return b.String()
		},
	}}
}
