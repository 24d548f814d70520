package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single command line: a bubbles textinput with a prompt
// and the line history of the current screen.
type TextInput struct {
	Model textinput.Model

	history []string
	cursor  int
}

// NewTextInput creates a focused input showing prompt before the cursor.
func NewTextInput(prompt, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Up and down walk back through submitted lines.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && len(t.history) > 0 {
		switch kmsg.String() {
		case "up":
			t.cursor = max(t.cursor-1, 0)
			t.Model.SetValue(t.history[t.cursor])
			t.Model.CursorEnd()
			return t, nil
		case "down":
			t.cursor = min(t.cursor+1, len(t.history))
			if t.cursor == len(t.history) {
				t.Model.SetValue("")
			} else {
				t.Model.SetValue(t.history[t.cursor])
			}
			t.Model.CursorEnd()
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input line.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetPrompt changes the text shown before the cursor.
func (t *TextInput) SetPrompt(prompt string) {
	t.Model.Prompt = prompt
}

// Take returns the current line and clears the input. Non-blank lines are
// added to the history.
func (t *TextInput) Take() string {
	v := t.Model.Value()
	t.Model.SetValue("")
	if strings.TrimSpace(v) != "" {
		t.history = append(t.history, v)
	}
	t.cursor = len(t.history)
	return v
}
