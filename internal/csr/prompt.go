package csr

import "strings"

// BlankValue is the input that clears a field instead of taking its default.
const BlankValue = "."

// Prompt walks through Fields one commit at a time. The zero value is not
// usable; create one with NewPrompt.
type Prompt struct {
	cursor int
	values Values
}

// NewPrompt returns a prompt positioned on the first field.
func NewPrompt() *Prompt {
	return &Prompt{values: make(Values, len(Fields))}
}

// Current returns the field awaiting input. ok is false once every field
// has been committed.
func (p *Prompt) Current() (f Field, ok bool) {
	if p.Done() {
		return Field{}, false
	}
	return Fields[p.cursor], true
}

// Commit stores input for the current field and advances the cursor.
// A blank line takes the field default and "." leaves the field empty.
// Commit after Done is a no-op.
func (p *Prompt) Commit(input string) {
	f, ok := p.Current()
	if !ok {
		return
	}

	v := strings.TrimSpace(input)
	switch v {
	case "":
		v = f.Default
	case BlankValue:
		v = ""
	}
	p.values[f.ID] = v
	p.cursor++
}

// Done reports whether every field has been answered.
func (p *Prompt) Done() bool {
	return p.cursor >= len(Fields)
}

// Answered returns the committed fields paired with their values, in order.
func (p *Prompt) Answered() []Answer {
	out := make([]Answer, 0, p.cursor)
	for _, f := range Fields[:p.cursor] {
		out = append(out, Answer{Field: f, Value: p.values[f.ID]})
	}
	return out
}

// Values returns a copy of the collected values.
func (p *Prompt) Values() Values {
	return p.values.Clone()
}

// Answer is a committed field and the value it received.
type Answer struct {
	Field Field
	Value string
}
