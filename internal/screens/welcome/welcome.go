// Package welcome is the splash screen shown before the lesson list.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/router"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	taglineAt    = 1200 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

// bootLines are typed out one per tick, like a shell session.
var bootLines = []string{
	"$ openssl version",
	"OpenSSL 3.0.2 15 Mar 2022",
	"$ openssl genrsa -out private_key.pem 2048",
	"$ openssl req -new -key private_key.pem -out request.csr",
}

const tagline = "Certificates, keys and CSRs, one command at a time."

type tickMsg time.Time

// WelcomeScreen shows the banner and replaces itself with the screen made
// by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen made by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")

		shown := min(int((w.elapsed-bannerAt)/tickInterval/3)+1, len(bootLines))
		var boot []string
		for _, l := range bootLines[:shown] {
			style := theme.Output
			if strings.HasPrefix(l, "$ ") {
				style = theme.PromptSign
			}
			boot = append(boot, style.Render(l))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, boot...))
	}

	if w.elapsed >= taglineAt {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
