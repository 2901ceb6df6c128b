package agent

import (
	"testing"

	"github.com/akcero-labs/blueprint/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// specAgent builds a minimal agent from a bare Spec for validation tests.
func specAgent(spec Spec) Agent {
	return &base{
		spec:   spec,
		shape:  provider.Shape{},
		prompt: func(View) string { return string(spec.Name) },
	}
}

func TestValidate_DefaultRoster(t *testing.T) {
	require.NoError(t, DefaultRoster().Validate())
}

func TestValidate_DiscoveryWithDependency(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "a", Phase: PhaseDiscovery, Needs: []Key{"x"}, Produces: "a"}),
	)

	err := roster.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Name("a"), cfgErr.Agent)
	assert.Contains(t, cfgErr.Detail, "no dependencies")
}

func TestValidate_ExecutionDependsOnExecution(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "seed", Phase: PhaseDiscovery, Produces: "seed"}),
		specAgent(Spec{Name: "e1", Phase: PhaseExecution, Needs: []Key{"seed"}, Produces: "one"}),
		specAgent(Spec{Name: "e2", Phase: PhaseExecution, Needs: []Key{"one"}, Produces: "two"}),
	)

	err := roster.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Name("e2"), cfgErr.Agent)
	assert.Equal(t, Key("one"), cfgErr.Key)
}

// A synthesis agent may read earlier synthesis outputs but never later ones.
func TestValidate_SynthesisForwardDependency(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "seed", Phase: PhaseDiscovery, Produces: "seed"}),
		specAgent(Spec{Name: "s1", Phase: PhaseSynthesis, Needs: []Key{"late"}, Produces: "early"}),
		specAgent(Spec{Name: "s2", Phase: PhaseSynthesis, Needs: []Key{"seed"}, Produces: "late"}),
	)

	err := roster.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Name("s1"), cfgErr.Agent)
	assert.Equal(t, Key("late"), cfgErr.Key)
}

func TestValidate_SynthesisBackwardDependencyAllowed(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "seed", Phase: PhaseDiscovery, Produces: "seed"}),
		specAgent(Spec{Name: "s1", Phase: PhaseSynthesis, Needs: []Key{"seed"}, Produces: "early"}),
		specAgent(Spec{Name: "s2", Phase: PhaseSynthesis, Needs: []Key{"early"}, Produces: "late"}),
	)

	require.NoError(t, roster.Validate())
}

func TestValidate_DuplicateProducedKey(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "a", Phase: PhaseDiscovery, Produces: "same"}),
		specAgent(Spec{Name: "b", Phase: PhaseDiscovery, Produces: "same"}),
	)

	err := roster.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Key("same"), cfgErr.Key)
	assert.Contains(t, cfgErr.Detail, "already produced")
}

func TestValidate_DuplicateName(t *testing.T) {
	roster := NewRoster(
		specAgent(Spec{Name: "twin", Phase: PhaseDiscovery, Produces: "one"}),
		specAgent(Spec{Name: "twin", Phase: PhaseDiscovery, Produces: "two"}),
	)

	err := roster.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate agent name")
}

func TestRoster_PhasePreservesRegistrationOrder(t *testing.T) {
	roster := DefaultRoster()

	var names []Name
	for _, ag := range roster.Phase(PhaseExecution) {
		names = append(names, ag.Spec().Name)
	}
	assert.Equal(t, []Name{"business", "tech", "design", "market"}, names)
}
