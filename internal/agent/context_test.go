package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_SnapshotIsFrozen(t *testing.T) {
	ec := NewContext("idea text")
	ec.Set(KeyIdea, Payload{"problem": "p1"})

	snap := ec.Snapshot()

	// Writes after the snapshot must be invisible through it.
	ec.Set(KeyBusiness, Payload{"model": "subscriptions"})

	_, ok := snap.Lookup(KeyBusiness)
	assert.False(t, ok, "snapshot must not observe later coordinator writes")

	p, ok := snap.Lookup(KeyIdea)
	require.True(t, ok)
	assert.Equal(t, "p1", p["problem"])
	assert.Equal(t, "idea text", snap.Input())
}

func TestView_TextAndListHelpers(t *testing.T) {
	ec := NewContext("x")
	ec.Set(KeyIdea, Payload{
		"problem":  "hard to book",
		"keywords": []any{"dogs", "walks", 42},
	})
	v := ec.Snapshot()

	assert.Equal(t, "hard to book", v.Text(KeyIdea, "problem"))
	assert.Equal(t, "", v.Text(KeyIdea, "missing"))
	assert.Equal(t, "", v.Text(KeyBusiness, "model"), "absent key degrades to empty string")

	assert.Equal(t, []string{"dogs", "walks"}, v.List(KeyIdea, "keywords"), "non-string entries are skipped")
	assert.Nil(t, v.List(KeyBusiness, "anything"))
}

func TestView_WithUnavailable(t *testing.T) {
	ec := NewContext("x")
	ec.Set(KeyIdea, Payload{"problem": "p"})
	v := ec.Snapshot().WithUnavailable(KeyIdea, KeyBusiness)

	// Present keys keep their payloads.
	p, ok := v.Lookup(KeyIdea)
	require.True(t, ok)
	assert.False(t, IsUnavailable(p))

	// Missing keys get an explicit marker.
	m, ok := v.Lookup(KeyBusiness)
	require.True(t, ok)
	assert.True(t, IsUnavailable(m))
	assert.Equal(t, string(KeyBusiness), m["section"])

	// The marker lives only in the derived view, not the context.
	_, ok = ec.Lookup(KeyBusiness)
	assert.False(t, ok)
}
