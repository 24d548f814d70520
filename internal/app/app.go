// Package app wires the screens into the Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/router"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/screens/home"
	"github.com/abhisek/certlab/internal/screens/welcome"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/terminal"
	"github.com/abhisek/certlab/internal/tutor"
	"github.com/abhisek/certlab/internal/ui/layout"
)

// Options holds the dependencies injected into the app.
type Options struct {
	// Catalog defaults to the embedded lab catalog.
	Catalog *catalog.Catalog

	// Events journals lab commands and quiz answers; may be nil.
	Events store.EventRepo

	// Tutor enables the AI terminal; may be nil.
	Tutor *tutor.Tutor

	// SkipWelcome starts on the lesson list.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *screen.Deps
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	deps := &screen.Deps{
		Resolver: terminal.NewResolver(cat),
		Checker:  terminal.NewChecker(),
		Progress: course.NewProgress(),
		Events:   opts.Events,
		Tutor:    opts.Tutor,
	}

	var first screen.Screen = home.New(deps)
	if !opts.SkipWelcome {
		first = welcome.New(func() screen.Screen { return home.New(deps) })
	}
	return AppModel{
		router: router.New(first),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	done, total := m.deps.Progress.Counts()
	header := layout.RenderHeader(active.Title(), done, total, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
