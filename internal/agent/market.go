package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// MarketAgent maps the competitive landscape and positioning.
type MarketAgent struct {
	*base
}

// NewMarketAgent creates the market-analysis execution agent.
func NewMarketAgent() *MarketAgent {
	return &MarketAgent{base: &base{
		spec: Spec{
			Name:       "market",
			Capability: "market analysis",
			Phase:      PhaseExecution,
			Needs:      []Key{KeyIdea},
			Produces:   KeyMarket,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "segment", Kind: provider.FieldText, Hint: "the market segment"},
			{Name: "competitors", Kind: provider.FieldList, Hint: "closest competitors"},
			{Name: "differentiators", Kind: provider.FieldList, Hint: "what sets this product apart"},
			{Name: "positioning_statement", Kind: provider.FieldText, Hint: "one-sentence positioning"},
			{Name: "marketing_channels", Kind: provider.FieldList, Hint: "channels for launch"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are a market analyst. Map the competitive landscape and " +
				"positioning for this product.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Problem: %s\n", v.Text(KeyIdea, "problem"))
			fmt.Fprintf(&b, "Audience: %s\n", v.Text(KeyIdea, "target_audience"))
			fmt.Fprintf(&b, "Domain: %s\n", v.Text(KeyIdea, "domain"))
			return b.String()
		},
	}}
}
