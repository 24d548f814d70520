package course

// QuestionResult is the grading of one question.
type QuestionResult struct {
	QuestionID string
	Selected   string
	Answered   bool
	Correct    bool
}

// Grade is the outcome of grading a set of selections against a quiz.
type Grade struct {
	Results     []QuestionResult
	AllAnswered bool
	AllCorrect  bool
}

// Score returns the number of correct answers and the number of questions.
func (g Grade) Score() (correct, total int) {
	for _, r := range g.Results {
		if r.Correct {
			correct++
		}
	}
	return correct, len(g.Results)
}

// GradeQuiz grades selected (question ID to answer ID) against questions.
// A quiz passes only when every question is answered correctly.
func GradeQuiz(questions []Question, selected map[string]string) Grade {
	g := Grade{
		Results:     make([]QuestionResult, 0, len(questions)),
		AllAnswered: true,
		AllCorrect:  true,
	}
	for _, q := range questions {
		sel, answered := selected[q.ID]
		if answered {
			_, answered = q.Answer(sel)
		}
		r := QuestionResult{
			QuestionID: q.ID,
			Selected:   sel,
			Answered:   answered,
			Correct:    answered && sel == q.CorrectAnswer(),
		}
		if !r.Answered {
			g.AllAnswered = false
		}
		if !r.Correct {
			g.AllCorrect = false
		}
		g.Results = append(g.Results, r)
	}
	return g
}

// Grade grades selections against the lesson's quiz.
func (l Lesson) Grade(selected map[string]string) Grade {
	return GradeQuiz(l.Quiz, selected)
}
