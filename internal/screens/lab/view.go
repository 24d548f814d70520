package lab

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/csr"
	"github.com/abhisek/certlab/internal/terminal"
	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/theme"
)

func (s *LabScreen) View(width, height int) string {
	status := s.renderStatus(width)
	inputLine := s.input.View()

	body := renderTranscript(s.session.Transcript(), width-2)
	if s.prompt != nil {
		body += "\n" + renderPrompt(s.prompt)
	}

	room := height - lipgloss.Height(status) - lipgloss.Height(inputLine) - 1
	body = layout.TailLines(strings.TrimRight(body, "\n"), room)

	return status + "\n" + body + "\n" + inputLine
}

// renderStatus shows the step counter and, once finished, the badge.
func (s *LabScreen) renderStatus(width int) string {
	done, total := s.session.Progress()
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf(" Steps %d/%d", done, total))

	right := ""
	if s.session.Completed() {
		right = theme.Badge.Render("COMPLETED")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
	line := left + strings.Repeat(" ", gap) + right
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return line + "\n" + rule
}

func renderTranscript(entries []terminal.Entry, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 10))

	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case terminal.EntryInput:
			b.WriteString(theme.PromptSign.Render(shellPrompt))
			b.WriteString(theme.Echo.Render(e.Text))
		default:
			style := theme.Output
			if terminal.IsFailure(e.Text) {
				style = theme.FailedOutput
			}
			b.WriteString(wrap.Inherit(style).Render(e.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPrompt shows the banner and the fields answered so far.
func renderPrompt(p *csr.Prompt) string {
	var b strings.Builder
	b.WriteString(theme.Output.Render(csr.Banner))
	b.WriteString("\n")
	for _, a := range p.Answered() {
		b.WriteString(theme.FieldPrompt.Render(a.Field.PromptLine()))
		b.WriteString(" ")
		b.WriteString(theme.Echo.Render(a.Value))
		b.WriteString("\n")
	}
	return b.String()
}
