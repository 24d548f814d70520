// Package quiz is the multiple-choice quiz at the end of a lesson.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/ui/components"
	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// QuizScreen asks a lesson's questions one at a time and grades the set
// when the last one is answered.
type QuizScreen struct {
	deps   *screen.Deps
	lesson course.Lesson

	index    int
	choice   components.MultiChoice
	selected map[string]string

	// grade is set once every question has been answered.
	grade *course.Grade
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz for lesson. The lesson must have questions.
func New(deps *screen.Deps, lesson course.Lesson) *QuizScreen {
	s := &QuizScreen{deps: deps, lesson: lesson}
	s.start()
	return s
}

func (s *QuizScreen) start() {
	s.index = 0
	s.selected = make(map[string]string, len(s.lesson.Quiz))
	s.grade = nil
	if len(s.lesson.Quiz) > 0 {
		s.choice = components.NewMultiChoice(s.lesson.Quiz[0])
	}
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.lesson.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.grade != nil && !s.grade.AllCorrect:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	case s.grade != nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.choice.Submitted:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.lesson.Quiz) == 0 {
		return s, nil
	}

	if s.grade != nil {
		if !s.grade.AllCorrect && strings.EqualFold(kmsg.String(), "r") {
			s.start()
		}
		return s, nil
	}

	if s.choice.Submitted {
		if kmsg.String() == "enter" {
			s.advance()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.record()
	}
	return s, nil
}

// record stores and journals the answer just given.
func (s *QuizScreen) record() {
	q := s.choice.Question
	s.selected[q.ID] = s.choice.Chosen

	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendQuizAnswer(context.Background(), store.QuizAnswerEventData{
		LessonID:   s.lesson.ID,
		QuestionID: q.ID,
		AnswerID:   s.choice.Chosen,
		Correct:    s.choice.IsCorrect(),
	})
	if err != nil {
		logger.Logger.Warn("journal quiz answer failed", "lesson", s.lesson.ID, "err", err)
	}
}

func (s *QuizScreen) advance() {
	s.index++
	if s.index < len(s.lesson.Quiz) {
		s.choice = components.NewMultiChoice(s.lesson.Quiz[s.index])
		return
	}

	g := s.lesson.Grade(s.selected)
	s.grade = &g
	if g.AllCorrect {
		s.deps.Progress.MarkQuiz(s.lesson.ID)
	}
	correct, total := g.Score()
	logger.Logger.Info("quiz graded", "lesson", s.lesson.ID, "correct", correct, "total", total)
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.lesson.Quiz) == 0 {
		return theme.Hint.Render("\n  This lesson has no quiz.")
	}
	if s.grade != nil {
		return s.renderResult(width)
	}

	header := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.index+1, len(s.lesson.Quiz)))
	body := lipgloss.JoinVertical(lipgloss.Left, header, "", s.choice.View(width))
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (s *QuizScreen) renderResult(width int) string {
	correct, total := s.grade.Score()

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("You scored %d out of %d", correct, total)))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", correct, total, min(width-8, 50)).View())
	b.WriteString("\n\n")

	if s.grade.AllCorrect {
		b.WriteString(theme.Correct.Render("Quiz passed. This lesson's quiz is complete."))
	} else {
		b.WriteString(theme.Incorrect.Render("Every answer must be correct to pass."))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press R to try again."))
	}
	b.WriteString("\n\n")

	for i, r := range s.grade.Results {
		mark := theme.Correct.Render("✔")
		if !r.Correct {
			mark = theme.Incorrect.Render("✘")
		}
		b.WriteString(fmt.Sprintf("%s  %d. %s\n", mark, i+1, s.lesson.Quiz[i].Prompt))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
