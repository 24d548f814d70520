package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/router"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/screens/history"
	"github.com/abhisek/certlab/internal/screens/lesson"
	tutorscreen "github.com/abhisek/certlab/internal/screens/tutor"
	"github.com/abhisek/certlab/internal/ui/components"
	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// HomeScreen lists the lessons and the extra tools.
type HomeScreen struct {
	deps    *screen.Deps
	menu    components.Menu
	lessons []course.Lesson
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, lessons: course.Lessons()}

	items := make([]components.MenuItem, 0, len(h.lessons)+3)
	for _, l := range h.lessons {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%2d. %s", l.Number, l.Title),
			Action: func() tea.Cmd { return router.Push(lesson.New(deps, l)) },
		})
	}

	tutorItem := components.MenuItem{Label: "AI Terminal"}
	if deps.Tutor != nil {
		tutorItem.Action = func() tea.Cmd { return router.Push(tutorscreen.New(deps.Tutor)) }
	} else {
		tutorItem.Label += " (configure an LLM API key)"
		tutorItem.Disabled = true
	}
	items = append(items, tutorItem)

	historyItem := components.MenuItem{Label: "Command history"}
	if deps.Events != nil {
		historyItem.Action = func() tea.Cmd { return router.Push(history.New(deps.Events)) }
	} else {
		historyItem.Disabled = true
	}
	items = append(items, historyItem, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Lessons"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshBadges()

	done, total := h.deps.Progress.Counts()
	status := components.NewProgressBar("Course", done, total, min(width-6, 60)).View()
	if h.deps.Progress.CourseComplete() {
		status += "\n" + theme.Correct.Render("🎉 Course complete! Every quiz and lab is finished.")
	}

	title := theme.Title.Render("Certificates & OpenSSL Workshop")
	subtitle := theme.Subtitle.Render("Learn how certificates work, then practice in a simulated terminal.")

	top := strings.Join([]string{title, subtitle, "", status}, "\n")
	room := height - lipgloss.Height(top) - 3
	return lipgloss.NewStyle().Padding(1, 2).Render(top + "\n\n" + h.menu.View(room))
}

// refreshBadges marks finished lessons. Lessons without activities never
// carry a badge.
func (h *HomeScreen) refreshBadges() {
	for i, l := range h.lessons {
		h.menu.Items[i].Badge = ""
		if (l.HasQuiz() || l.HasTerminal()) && h.deps.Progress.LessonDone(l) {
			h.menu.Items[i].Badge = "✔"
		}
	}
}
