// Package lesson shows one lesson of the course and links to its lab and
// quiz.
package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/router"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/screens/lab"
	"github.com/abhisek/certlab/internal/screens/quiz"
	"github.com/abhisek/certlab/internal/ui/components"
	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/theme"
)

const (
	actionLab = iota
	actionQuiz
	actionNext
	actionPrev
)

// LessonScreen renders a lesson's summary and diagram.
type LessonScreen struct {
	deps    *screen.Deps
	lesson  course.Lesson
	menu    components.Menu
	actions []int
	errMsg  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the screen for l.
func New(deps *screen.Deps, l course.Lesson) *LessonScreen {
	s := &LessonScreen{deps: deps, lesson: l}

	var items []components.MenuItem
	add := func(action int, label string) {
		s.actions = append(s.actions, action)
		items = append(items, components.MenuItem{Label: label, Action: s.action(action)})
	}
	if l.HasTerminal() {
		add(actionLab, "Open the terminal lab")
	}
	if l.HasQuiz() {
		add(actionQuiz, "Take the quiz")
	}
	if _, ok := course.Next(l.ID); ok {
		add(actionNext, "Next lesson →")
	}
	if _, ok := course.Prev(l.ID); ok {
		add(actionPrev, "← Previous lesson")
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *LessonScreen) action(a int) func() tea.Cmd {
	return func() tea.Cmd {
		switch a {
		case actionLab:
			scr, err := lab.New(s.deps, s.lesson.ID)
			if err != nil {
				logger.Logger.Error("open lab", "lesson", s.lesson.ID, "err", err)
				s.errMsg = err.Error()
				return nil
			}
			return router.Push(scr)
		case actionQuiz:
			return router.Push(quiz.New(s.deps, s.lesson))
		case actionNext:
			next, _ := course.Next(s.lesson.ID)
			return replace(New(s.deps, next))
		case actionPrev:
			prev, _ := course.Prev(s.lesson.ID)
			return replace(New(s.deps, prev))
		}
		return nil
	}
}

func replace(scr screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

func (s *LessonScreen) Init() tea.Cmd { return nil }

func (s *LessonScreen) Title() string {
	return fmt.Sprintf("Lesson %d", s.lesson.Number)
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Lessons"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	s.refreshBadges()
	cw := min(width-4, 96)
	wrap := lipgloss.NewStyle().Width(cw)

	var sections []string
	sections = append(sections, theme.Title.Render(s.lesson.Title))
	sections = append(sections, wrap.Inherit(theme.Body).Render(s.lesson.Summary))

	if d := s.lesson.Diagram; d != nil {
		diagram := theme.Subtitle.Render(d.Title) + "\n" + theme.Diagram.Render(d.Body)
		sections = append(sections, diagram)
	}

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}

	menu := s.menu.View(0)
	body := strings.Join(sections, "\n\n")

	// The menu stays visible; long summaries are cut from the bottom.
	room := height - lipgloss.Height(menu) - 3
	lines := strings.Split(body, "\n")
	if room > 0 && len(lines) > room {
		body = strings.Join(lines[:room], "\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body + "\n\n" + menu)
}

// refreshBadges marks the lab and quiz entries that are already finished.
func (s *LessonScreen) refreshBadges() {
	for i, a := range s.actions {
		done := false
		switch a {
		case actionLab:
			done = s.deps.Progress.TerminalDone(s.lesson.ID)
		case actionQuiz:
			done = s.deps.Progress.QuizDone(s.lesson.ID)
		}
		s.menu.Items[i].Badge = ""
		if done {
			s.menu.Items[i].Badge = "✔ done"
		}
	}
}
