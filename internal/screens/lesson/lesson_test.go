package lesson

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/router"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/screens/lab"
	"github.com/abhisek/certlab/internal/screens/quiz"
	"github.com/abhisek/certlab/internal/terminal"
)

func testDeps() *screen.Deps {
	return &screen.Deps{
		Resolver: terminal.NewResolver(catalog.Default()),
		Checker:  terminal.NewChecker(),
		Progress: course.NewProgress(),
	}
}

func mustLesson(t *testing.T, id string) course.Lesson {
	t.Helper()
	l, ok := course.GetLesson(id)
	if !ok {
		t.Fatalf("lesson %q not found", id)
	}
	return l
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// selectLabel moves the menu to label and presses Enter.
func selectLabel(t *testing.T, s *LessonScreen, label string) tea.Msg {
	t.Helper()
	for i, item := range s.menu.Items {
		if item.Label == label {
			s.menu.Selected = i
			_, cmd := s.Update(key(tea.KeyEnter))
			if cmd == nil {
				t.Fatalf("%q produced no command", label)
			}
			return cmd()
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestFirstLessonHasNoPrevious(t *testing.T) {
	s := New(testDeps(), course.Lessons()[0])
	for _, item := range s.menu.Items {
		if strings.Contains(item.Label, "Previous") {
			t.Error("first lesson should not link backwards")
		}
	}
	if s.Title() != "Lesson 1" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestLessonOpensLab(t *testing.T) {
	s := New(testDeps(), mustLesson(t, "install-openssl"))
	msg := selectLabel(t, s, "Open the terminal lab")
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", msg)
	}
	if _, ok := push.Screen.(*lab.LabScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestLessonOpensQuiz(t *testing.T) {
	s := New(testDeps(), mustLesson(t, "certificate-authority"))
	msg := selectLabel(t, s, "Take the quiz")
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", msg)
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestLessonNextReplaces(t *testing.T) {
	s := New(testDeps(), course.Lessons()[0])
	msg := selectLabel(t, s, "Next lesson →")
	repl, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", msg)
	}
	if repl.Screen.Title() != "Lesson 2" {
		t.Errorf("next title = %q", repl.Screen.Title())
	}
}

func TestLessonViewShowsDiagramAndBadges(t *testing.T) {
	deps := testDeps()
	l := mustLesson(t, "certificate-authority")
	s := New(deps, l)

	view := s.View(120, 60)
	if !strings.Contains(view, l.Diagram.Title) {
		t.Error("diagram title missing")
	}
	if strings.Contains(view, "✔ done") {
		t.Error("nothing is done yet")
	}

	deps.Progress.MarkQuiz(l.ID)
	if !strings.Contains(s.View(120, 60), "✔ done") {
		t.Error("finished quiz should carry a badge")
	}
}
