package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// MultiChoice asks one quiz question. Answers are picked with the arrows
// and Enter, or directly by their letter.
type MultiChoice struct {
	Question  course.Question
	Selected  int
	Submitted bool
	Chosen    string
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q course.Question) MultiChoice {
	return MultiChoice{Question: q}
}

// Update handles navigation and selection. Once submitted the choice is
// final.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Question.Answers)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		for i, a := range m.Question.Answers {
			if strings.EqualFold(key, a.ID) {
				m.Selected = i
				m.submit(i)
				break
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	if i < 0 || i >= len(m.Question.Answers) {
		return
	}
	m.Submitted = true
	m.Chosen = m.Question.Answers[i].ID
}

// View renders the question, its answers and, once submitted, the
// explanation.
func (m MultiChoice) View(width int) string {
	wrap := lipgloss.NewStyle().Width(min(width-4, 76))

	var b strings.Builder
	b.WriteString(wrap.Inherit(theme.Title).Render(m.Question.Prompt))
	b.WriteString("\n\n")

	correct := m.Question.CorrectAnswer()
	for i, a := range m.Question.Answers {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, strings.ToUpper(a.ID), a.Text)

		var style lipgloss.Style
		switch {
		case m.Submitted && a.ID == correct:
			style = theme.Correct
		case m.Submitted && a.ID == m.Chosen:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(wrap.Inherit(style).Render(line))
		b.WriteString("\n")
	}

	if m.Submitted {
		b.WriteString("\n")
		if m.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
		if m.Question.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(wrap.Inherit(theme.Body).Render(m.Question.Explanation))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the learner chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.Question.CorrectAnswer()
}
