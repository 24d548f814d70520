package course

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed course.yaml
var outlineYAML []byte

// outline holds the lessons with a lookup index.
type outline struct {
	lessons []Lesson
	byID    map[string]int
}

// o is the package-level outline, parsed once at init.
var o *outline

func init() {
	var err error
	o, err = parseOutline(outlineYAML)
	if err != nil {
		panic(fmt.Sprintf("course outline: %v", err))
	}
}

func parseOutline(data []byte) (*outline, error) {
	var doc struct {
		Lessons []Lesson `yaml:"lessons"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	if err := validateLessons(doc.Lessons); err != nil {
		return nil, err
	}

	out := &outline{
		lessons: doc.Lessons,
		byID:    make(map[string]int, len(doc.Lessons)),
	}
	for i := range out.lessons {
		out.lessons[i].Number = i + 1
		out.byID[out.lessons[i].ID] = i
	}
	return out, nil
}

// validateLessons checks the outline for structural problems.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []string
	if len(lessons) == 0 {
		errs = append(errs, "outline has no lessons")
	}

	seen := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson %q has no ID", l.Title))
		}
		if seen[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		seen[l.ID] = true

		qids := make(map[string]bool, len(l.Quiz))
		for _, q := range l.Quiz {
			if qids[q.ID] {
				errs = append(errs, fmt.Sprintf("lesson %q: duplicate question ID %q", l.ID, q.ID))
			}
			qids[q.ID] = true

			correct := 0
			for _, a := range q.Answers {
				if a.Correct {
					correct++
				}
			}
			if correct != 1 {
				errs = append(errs, fmt.Sprintf("lesson %q question %q: has %d correct answers, want 1", l.ID, q.ID, correct))
			}
			if len(q.Answers) < 2 {
				errs = append(errs, fmt.Sprintf("lesson %q question %q: needs at least 2 answers", l.ID, q.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("outline validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Lessons returns every lesson in order.
func Lessons() []Lesson {
	return o.lessons
}

// GetLesson returns the lesson with the given ID.
func GetLesson(id string) (Lesson, bool) {
	i, ok := o.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return o.lessons[i], true
}

// Next returns the lesson after id.
func Next(id string) (Lesson, bool) {
	i, ok := o.byID[id]
	if !ok || i+1 >= len(o.lessons) {
		return Lesson{}, false
	}
	return o.lessons[i+1], true
}

// Prev returns the lesson before id.
func Prev(id string) (Lesson, bool) {
	i, ok := o.byID[id]
	if !ok || i == 0 {
		return Lesson{}, false
	}
	return o.lessons[i-1], true
}

// QuizLessons returns the lessons that have a quiz.
func QuizLessons() []Lesson {
	var out []Lesson
	for _, l := range o.lessons {
		if l.HasQuiz() {
			out = append(out, l)
		}
	}
	return out
}

// TerminalLessons returns the lessons that have a lab.
func TerminalLessons() []Lesson {
	var out []Lesson
	for _, l := range o.lessons {
		if l.HasTerminal() {
			out = append(out, l)
		}
	}
	return out
}
