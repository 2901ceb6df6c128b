package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// BusinessAgent proposes the business model, pricing, and go-to-market
// motion. Execution phase: it reads the discovery context and runs
// concurrently with the other specialists.
type BusinessAgent struct {
	*base
}

// NewBusinessAgent creates the business-model execution agent.
func NewBusinessAgent() *BusinessAgent {
	return &BusinessAgent{base: &base{
		spec: Spec{
			Name:       "business",
			Capability: "business modeling",
			Phase:      PhaseExecution,
			Needs:      []Key{KeyIdea},
			Produces:   KeyBusiness,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "model", Kind: provider.FieldText, Hint: "the revenue model"},
			{Name: "revenue_streams", Kind: provider.FieldList, Hint: "distinct revenue streams"},
			{Name: "pricing_strategy", Kind: provider.FieldText, Hint: "pricing and packaging"},
			{Name: "go_to_market", Kind: provider.FieldText, Hint: "the launch motion"},
			{Name: "partners", Kind: provider.FieldList, Hint: "key partners"},
			{Name: "key_metrics", Kind: provider.FieldList, Hint: "metrics the business lives by"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are a business model strategist. Design the business model " +
				"for this product, grounded in the discovery context below.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Problem: %s\n", v.Text(KeyIdea, "problem"))
			fmt.Fprintf(&b, "Solution: %s\n", v.Text(KeyIdea, "solution"))
			fmt.Fprintf(&b, "Audience: %s\n", v.Text(KeyIdea, "target_audience"))
			fmt.Fprintf(&b, "Domain: %s\n", v.Text(KeyIdea, "domain"))
			return b.String()
		},
	}}
}
