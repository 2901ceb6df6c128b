package blueprint

import (
	"github.com/akcero-labs/blueprint/internal/agent"
)

// SectionKey names one section of the composite blueprint.
type SectionKey string

const (
	SectionIdea           SectionKey = "idea"
	SectionBusinessModel  SectionKey = "business_model"
	SectionTechStack      SectionKey = "tech_stack"
	SectionUIDesign       SectionKey = "ui_design"
	SectionMarketAnalysis SectionKey = "market_analysis"
	SectionRoadmap        SectionKey = "roadmap"
	SectionSummary        SectionKey = "summary"
)

// SectionOrder is the fixed document order of blueprint sections.
var SectionOrder = []SectionKey{
	SectionIdea,
	SectionBusinessModel,
	SectionTechStack,
	SectionUIDesign,
	SectionMarketAnalysis,
	SectionRoadmap,
	SectionSummary,
}

// RequiredSections must all be present after assembly; a gap here is a
// failed run. UI design and market analysis are enriching but optional, so
// losing their producing agent degrades the run instead of failing it.
var RequiredSections = []SectionKey{
	SectionIdea,
	SectionBusinessModel,
	SectionTechStack,
	SectionRoadmap,
	SectionSummary,
}

// producedBy maps each section to the agent whose result fills it.
var producedBy = map[SectionKey]agent.Name{
	SectionIdea:           "idea",
	SectionBusinessModel:  "business",
	SectionTechStack:      "tech",
	SectionUIDesign:       "design",
	SectionMarketAnalysis: "market",
	SectionRoadmap:        "roadmap",
	SectionSummary:        "summary",
}

// ProducerOf returns the agent that fills the given section.
func ProducerOf(k SectionKey) agent.Name {
	return producedBy[k]
}

// ProductBlueprint is the composite output document: one section per
// contributing agent plus the synthesized executive summary and a derived
// headline. Immutable once assembled.
type ProductBlueprint struct {
	Idea           agent.Payload `json:"idea"`
	BusinessModel  agent.Payload `json:"business_model"`
	TechStack      agent.Payload `json:"tech_stack"`
	UIDesign       agent.Payload `json:"ui_design,omitempty"`
	MarketAnalysis agent.Payload `json:"market_analysis,omitempty"`
	Roadmap        agent.Payload `json:"roadmap"`

	// Summary is the executive summary text.
	Summary string `json:"summary"`

	// Headline is derived by the assembler from the idea section.
	Headline string `json:"headline,omitempty"`

	// DegradedSections lists sections filled with fallback or derived
	// content; the presentation layer surfaces these as indicators.
	DegradedSections []SectionKey `json:"degraded_sections,omitempty"`

	// MissingSections lists optional sections whose producing agent failed.
	MissingSections []SectionKey `json:"missing_sections,omitempty"`
}

// Section returns the payload for a section key, or nil for the summary
// (which is text, not a payload) and for missing optional sections.
func (bp *ProductBlueprint) Section(k SectionKey) agent.Payload {
	switch k {
	case SectionIdea:
		return bp.Idea
	case SectionBusinessModel:
		return bp.BusinessModel
	case SectionTechStack:
		return bp.TechStack
	case SectionUIDesign:
		return bp.UIDesign
	case SectionMarketAnalysis:
		return bp.MarketAnalysis
	case SectionRoadmap:
		return bp.Roadmap
	default:
		return nil
	}
}

// IsDegraded reports whether any section carries fallback or derived
// content or is missing.
func (bp *ProductBlueprint) IsDegraded() bool {
	return len(bp.DegradedSections) > 0 || len(bp.MissingSections) > 0
}
