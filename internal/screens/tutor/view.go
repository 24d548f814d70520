package tutor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/markdown"
	"github.com/abhisek/certlab/internal/ui/theme"
)

func (s *TutorScreen) View(width, height int) string {
	textWidth := max(min(width-4, 100), 10)
	wrap := lipgloss.NewStyle().Width(textWidth)

	var b strings.Builder
	for _, l := range s.lines {
		switch l.kind {
		case lineUser:
			b.WriteString(wrap.Inherit(theme.Echo).Render("you: " + l.text))
		case lineCommand:
			b.WriteString(theme.PromptSign.Render("$ ") + theme.Echo.Render(l.text))
		case lineOutput:
			b.WriteString(wrap.Inherit(theme.Output).Render(l.text))
		case lineError:
			b.WriteString(wrap.Inherit(theme.FailedOutput).Render(l.text))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("tutor:") + "\n")
			b.WriteString(markdown.Render(l.text, textWidth, markdown.Dark))
		}
		b.WriteString("\n\n")
	}

	if s.waiting {
		b.WriteString(theme.Hint.Render(spinnerFrames[s.frame] + " thinking..."))
		b.WriteString("\n")
	}
	for i, c := range s.suggestions {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("  %d) ", i+1)))
		b.WriteString(theme.Body.Render(c))
		b.WriteString("\n")
	}

	inputLine := s.input.View()
	room := height - lipgloss.Height(inputLine) - 1
	body := layout.TailLines(strings.TrimRight(b.String(), "\n"), room)

	return lipgloss.NewStyle().PaddingLeft(1).Render(body + "\n" + inputLine)
}
