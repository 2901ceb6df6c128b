package agent

// Context is the shared key/value state built up during one run. It is owned
// exclusively by the coordinator: discovery results are appended one at a
// time, execution agents only ever see a Snapshot, and synthesis merges
// happen serially. Mutual exclusion is structural, so no lock is needed.
// A Context is never shared across runs.
type Context struct {
	input  string
	values map[Key]Payload
}

// NewContext creates a Context seeded with the raw input text.
func NewContext(input string) *Context {
	return &Context{
		input:  input,
		values: make(map[Key]Payload),
	}
}

// Input returns the raw input text for the run.
func (c *Context) Input() string {
	return c.input
}

// Set stores a produced payload under its key.
func (c *Context) Set(k Key, p Payload) {
	c.values[k] = p
}

// Lookup returns the payload for a key if one has been produced.
func (c *Context) Lookup(k Key) (Payload, bool) {
	p, ok := c.values[k]
	return p, ok
}

// Snapshot returns a read-only view of the context as it stands. The view
// holds its own shallow copy of the key map, so later coordinator writes are
// invisible to holders of the view.
func (c *Context) Snapshot() View {
	values := make(map[Key]Payload, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return View{input: c.input, values: values}
}

// View is a read-only window over a Context. Execution-phase agents receive
// a View frozen at the end of discovery; synthesis agents receive a View
// that additionally carries unavailable markers for missing dependencies.
type View struct {
	input  string
	values map[Key]Payload
}

// Input returns the raw input text for the run.
func (v View) Input() string {
	return v.input
}

// Lookup returns the payload for a key if present in the view.
func (v View) Lookup(k Key) (Payload, bool) {
	p, ok := v.values[k]
	return p, ok
}

// Text returns a string field from the payload at key, or "" when the key,
// the field, or the expected type is absent. Prompt builders use it so a
// missing upstream output degrades to an empty fragment instead of a panic.
func (v View) Text(k Key, field string) string {
	p, ok := v.values[k]
	if !ok {
		return ""
	}
	s, _ := p[field].(string)
	return s
}

// List returns a string-list field from the payload at key. Entries of other
// types are skipped.
func (v View) List(k Key, field string) []string {
	p, ok := v.values[k]
	if !ok {
		return nil
	}
	raw, ok := p[field].([]any)
	if !ok {
		if direct, ok := p[field].([]string); ok {
			return direct
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// WithUnavailable returns a copy of the view in which every listed key that
// has no payload carries an explicit unavailable marker. Synthesis agents
// must tolerate these markers by contract.
func (v View) WithUnavailable(keys ...Key) View {
	values := make(map[Key]Payload, len(v.values)+len(keys))
	for k, p := range v.values {
		values[k] = p
	}
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			values[k] = Unavailable(k)
		}
	}
	return View{input: v.input, values: values}
}

const unavailableField = "unavailable"

// Unavailable builds the marker payload used in place of an output whose
// producing agent failed.
func Unavailable(k Key) Payload {
	return Payload{
		unavailableField: true,
		"section":        string(k),
	}
}

// IsUnavailable reports whether a payload is an unavailable marker.
func IsUnavailable(p Payload) bool {
	v, ok := p[unavailableField].(bool)
	return ok && v
}
