package agent

import (
	"fmt"
	"strings"

	"github.com/akcero-labs/blueprint/internal/provider"
)

// DesignAgent shapes the product experience: principles, key screens, and
// brand voice.
type DesignAgent struct {
	*base
}

// NewDesignAgent creates the UI/UX execution agent.
func NewDesignAgent() *DesignAgent {
	return &DesignAgent{base: &base{
		spec: Spec{
			Name:       "design",
			Capability: "experience design",
			Phase:      PhaseExecution,
			Needs:      []Key{KeyIdea},
			Produces:   KeyDesign,
		},
		shape: provider.Shape{Fields: []provider.Field{
			{Name: "experience_principles", Kind: provider.FieldList, Hint: "principles the experience follows"},
			{Name: "key_screens", Kind: provider.FieldList, Hint: "the screens that matter most"},
			{Name: "brand_voice", Kind: provider.FieldText, Hint: "how the product speaks"},
			{Name: "visual_language", Kind: provider.FieldText, Hint: "the visual direction"},
		}},
		prompt: func(v View) string {
			var b strings.Builder
			b.WriteString("You are a product designer. Shape the experience for this " +
				"product: principles, key screens, and voice.\n\n")
			fmt.Fprintf(&b, "Idea: %s\n", v.Input())
			fmt.Fprintf(&b, "Audience: %s\n", v.Text(KeyIdea, "target_audience"))
			fmt.Fprintf(&b, "Domain: %s\n", v.Text(KeyIdea, "domain"))
			return b.String()
		},
	}}
}
