package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certlab/internal/ui/layout"
)

// Screen is one page of the app, managed by the router stack.
type Screen interface {
	// Init returns a command to run when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with custom footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that use Esc themselves, such as
// a lab cancelling an open prompt. When CapturesEscape returns true the app
// forwards Esc to the screen instead of going back.
type EscapeHandler interface {
	CapturesEscape() bool
}
