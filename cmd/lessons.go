package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certlab/internal/console"
	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/ui/markdown"
	"github.com/abhisek/certlab/internal/ui/theme"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons [id]",
	Short: "List the lessons, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			l, ok := course.GetLesson(args[0])
			if !ok {
				return fmt.Errorf("no lesson %q", args[0])
			}
			showLesson(l)
			return nil
		}

		fmt.Printf("%3s  %-28s  %-40s  %s\n", "#", "ID", "Title", "Activities")
		fmt.Println(strings.Repeat("─", 90))
		for _, l := range course.Lessons() {
			var acts []string
			if l.HasQuiz() {
				acts = append(acts, fmt.Sprintf("quiz (%d)", len(l.Quiz)))
			}
			if l.HasTerminal() {
				acts = append(acts, "lab")
			}
			fmt.Printf("%3d  %-28s  %-40s  %s\n", l.Number, l.ID, truncate(l.Title, 40), strings.Join(acts, ", "))
		}
		return nil
	},
}

func showLesson(l course.Lesson) {
	fmt.Println(theme.Title.Render(fmt.Sprintf("Lesson %d: %s", l.Number, l.Title)))
	fmt.Println()
	fmt.Println(markdown.Render(l.Summary, 80, console.MarkdownStyle(os.Stdout)))
	if d := l.Diagram; d != nil {
		fmt.Println()
		fmt.Println(theme.Diagram.Render(d.Title + "\n\n" + d.Body))
	}

	var next []string
	if l.HasQuiz() {
		next = append(next, "certlab quiz "+l.ID)
	}
	if l.HasTerminal() {
		next = append(next, "certlab lab "+l.ID)
	}
	if len(next) > 0 {
		fmt.Println()
		fmt.Println(theme.Hint.Render("Try: " + strings.Join(next, "  or  ")))
	}
}
