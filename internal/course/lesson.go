// Package course holds the lesson outline of the workshop, the quizzes,
// and the learner's in-memory progress through them.
package course

// Lesson is one unit of the course, in presentation order.
type Lesson struct {
	ID      string `yaml:"id"`
	Number  int    `yaml:"-"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`

	// Terminal is true when the lesson has a hands-on lab with the same ID.
	Terminal bool `yaml:"terminal"`

	Diagram *Diagram   `yaml:"diagram,omitempty"`
	Quiz    []Question `yaml:"quiz,omitempty"`
}

// HasQuiz reports whether the lesson ends with a quiz.
func (l Lesson) HasQuiz() bool { return len(l.Quiz) > 0 }

// HasTerminal reports whether the lesson has a lab.
func (l Lesson) HasTerminal() bool { return l.Terminal }

// HasDiagram reports whether the lesson has a diagram.
func (l Lesson) HasDiagram() bool { return l.Diagram != nil }

// Diagram is a plain-text illustration shown with a lesson.
type Diagram struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Question is one multiple-choice quiz question.
type Question struct {
	ID          string   `yaml:"id"`
	Prompt      string   `yaml:"prompt"`
	Answers     []Answer `yaml:"answers"`
	Explanation string   `yaml:"explanation"`
}

// Answer is one choice of a question.
type Answer struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct,omitempty"`
}

// CorrectAnswer returns the ID of the correct choice.
func (q Question) CorrectAnswer() string {
	for _, a := range q.Answers {
		if a.Correct {
			return a.ID
		}
	}
	return ""
}

// Answer returns the choice with the given ID.
func (q Question) Answer(id string) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}
