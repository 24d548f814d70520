package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// AnswerRecorder journals graded quiz answers.
type AnswerRecorder interface {
	AppendQuizAnswer(ctx context.Context, data store.QuizAnswerEventData) error
}

// RunQuiz asks every question of l in order and grades the selections.
// Answers are given by choice ID; anything else asks again. rec may be nil.
func RunQuiz(ctx context.Context, l course.Lesson, rec AnswerRecorder, in io.Reader, out io.Writer) course.Grade {
	r := newLineReader(in, out)
	defer r.close()
	selected := make(map[string]string, len(l.Quiz))

	for i, q := range l.Quiz {
		fmt.Fprintf(out, "\n── Question %d/%d ──\n", i+1, len(l.Quiz))
		fmt.Fprintln(out, q.Prompt)
		for _, a := range q.Answers {
			fmt.Fprintf(out, "  %s) %s\n", a.ID, a.Text)
		}

		answer, ok := readChoice(r, out, q)
		if !ok {
			break
		}
		selected[q.ID] = answer

		correct := answer == q.CorrectAnswer()
		if correct {
			fmt.Fprintln(out, theme.Correct.Render("✔ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s\n", theme.Incorrect.Render("✘ Wrong."), q.CorrectAnswer())
		}
		if q.Explanation != "" {
			fmt.Fprintln(out, theme.Hint.Render(q.Explanation))
		}

		if rec != nil {
			err := rec.AppendQuizAnswer(ctx, store.QuizAnswerEventData{
				LessonID:   l.ID,
				QuestionID: q.ID,
				AnswerID:   answer,
				Correct:    correct,
			})
			if err != nil {
				logger.Logger.Warn("journal quiz answer failed", "lesson", l.ID, "err", err)
			}
		}
	}

	g := l.Grade(selected)
	correct, total := g.Score()
	fmt.Fprintf(out, "\n── Score: %d/%d ──\n", correct, total)
	if g.AllCorrect {
		fmt.Fprintln(out, theme.Correct.Render("Quiz passed."))
	}
	return g
}

func readChoice(r lineReader, out io.Writer, q course.Question) (string, bool) {
	for {
		line, ok := r.read("Your answer: ")
		if !ok {
			return "", false
		}
		id := strings.ToLower(strings.TrimSpace(line))
		for _, a := range q.Answers {
			if a.ID == id {
				return id, true
			}
		}
		fmt.Fprintln(out, theme.Hint.Render("Pick one of the letters above."))
	}
}
