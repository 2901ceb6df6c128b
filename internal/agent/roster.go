package agent

import "fmt"

// Context keys produced by the fixed roster.
const (
	KeyIdea     Key = "idea"
	KeyBusiness Key = "business_model"
	KeyTech     Key = "tech_stack"
	KeyDesign   Key = "ui_design"
	KeyMarket   Key = "market_analysis"
	KeyRoadmap  Key = "roadmap"
	KeySummary  Key = "summary"
)

// ConfigurationError reports a roster that cannot be scheduled. It is raised
// at startup, before any run, and is fatal.
type ConfigurationError struct {
	Agent  Name
	Key    Key
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("agent roster: %s: key %q: %s", e.Agent, e.Key, e.Detail)
	}
	return fmt.Sprintf("agent roster: %s: %s", e.Agent, e.Detail)
}

// Roster is the fixed, ordered set of agents for the pipeline, grouped by
// phase. Registration order within a phase is execution order for the
// sequential phases.
type Roster struct {
	agents []Agent
}

// NewRoster creates a roster with the given agents in registration order.
func NewRoster(agents ...Agent) *Roster {
	return &Roster{agents: agents}
}

// DefaultRoster returns the production roster: idea discovery, four parallel
// specialists, then roadmap and summary synthesis.
func DefaultRoster() *Roster {
	return NewRoster(
		NewIdeaAgent(),
		NewBusinessAgent(),
		NewTechAgent(),
		NewDesignAgent(),
		NewMarketAgent(),
		NewRoadmapAgent(),
		NewSummaryAgent(),
	)
}

// Agents returns all agents in registration order.
func (r *Roster) Agents() []Agent {
	return r.agents
}

// Phase returns the agents of one phase, preserving registration order.
func (r *Roster) Phase(p Phase) []Agent {
	var out []Agent
	for _, a := range r.agents {
		if a.Spec().Phase == p {
			out = append(out, a)
		}
	}
	return out
}

// ByName returns the agent with the given name.
func (r *Roster) ByName(n Name) (Agent, bool) {
	for _, a := range r.agents {
		if a.Spec().Name == n {
			return a, true
		}
	}
	return nil, false
}

// Validate enforces the acyclic dependency invariant: discovery agents
// declare no needs, execution agents may need only discovery outputs, and
// synthesis agents may need discovery outputs, execution outputs, and the
// outputs of synthesis agents registered earlier. It also rejects duplicate
// names and duplicate produced keys. A violation means the roster can never
// be scheduled, so callers treat the returned *ConfigurationError as fatal.
func (r *Roster) Validate() error {
	names := make(map[Name]bool, len(r.agents))
	producers := make(map[Key]Name, len(r.agents))
	for _, a := range r.agents {
		spec := a.Spec()
		if spec.Name == "" {
			return &ConfigurationError{Agent: spec.Name, Detail: "agent has no name"}
		}
		if names[spec.Name] {
			return &ConfigurationError{Agent: spec.Name, Detail: "duplicate agent name"}
		}
		names[spec.Name] = true

		if spec.Produces == "" {
			return &ConfigurationError{Agent: spec.Name, Detail: "agent produces no key"}
		}
		if owner, ok := producers[spec.Produces]; ok {
			return &ConfigurationError{
				Agent:  spec.Name,
				Key:    spec.Produces,
				Detail: fmt.Sprintf("already produced by %s", owner),
			}
		}
		producers[spec.Produces] = spec.Name
	}

	// available accumulates the keys producible before each agent runs,
	// walking phases in order and synthesis agents in registration order.
	available := make(map[Key]bool, len(r.agents))

	for _, a := range r.Phase(PhaseDiscovery) {
		if len(a.Spec().Needs) > 0 {
			return &ConfigurationError{
				Agent:  a.Spec().Name,
				Key:    a.Spec().Needs[0],
				Detail: "discovery agents must declare no dependencies",
			}
		}
	}
	for _, a := range r.Phase(PhaseDiscovery) {
		available[a.Spec().Produces] = true
	}

	for _, a := range r.Phase(PhaseExecution) {
		for _, need := range a.Spec().Needs {
			if !available[need] {
				return &ConfigurationError{
					Agent:  a.Spec().Name,
					Key:    need,
					Detail: "execution agents may depend only on discovery outputs",
				}
			}
		}
	}
	for _, a := range r.Phase(PhaseExecution) {
		available[a.Spec().Produces] = true
	}

	for _, a := range r.Phase(PhaseSynthesis) {
		for _, need := range a.Spec().Needs {
			if !available[need] {
				return &ConfigurationError{
					Agent:  a.Spec().Name,
					Key:    need,
					Detail: "synthesis agents may depend only on outputs of agents scheduled earlier",
				}
			}
		}
		available[a.Spec().Produces] = true
	}

	return nil
}
