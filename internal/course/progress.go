package course

import "sync"

// Progress tracks which quizzes and labs the learner has finished during
// this run. It is safe for concurrent use.
type Progress struct {
	mu        sync.RWMutex
	quizzes   map[string]bool
	terminals map[string]bool
}

// NewProgress returns empty progress.
func NewProgress() *Progress {
	return &Progress{
		quizzes:   make(map[string]bool),
		terminals: make(map[string]bool),
	}
}

// MarkQuiz records a passed quiz.
func (p *Progress) MarkQuiz(lessonID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quizzes[lessonID] = true
}

// MarkTerminal records a finished lab.
func (p *Progress) MarkTerminal(lessonID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminals[lessonID] = true
}

// QuizDone reports whether the lesson's quiz was passed.
func (p *Progress) QuizDone(lessonID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.quizzes[lessonID]
}

// TerminalDone reports whether the lesson's lab was finished.
func (p *Progress) TerminalDone(lessonID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.terminals[lessonID]
}

// LessonDone reports whether every activity of the lesson is finished.
// Lessons with no activity are always done.
func (p *Progress) LessonDone(l Lesson) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if l.HasQuiz() && !p.quizzes[l.ID] {
		return false
	}
	if l.HasTerminal() && !p.terminals[l.ID] {
		return false
	}
	return true
}

// CourseComplete reports whether every quiz and every lab is finished.
func (p *Progress) CourseComplete() bool {
	for _, l := range Lessons() {
		if !p.LessonDone(l) {
			return false
		}
	}
	return true
}

// Counts returns finished and total activities across the course.
func (p *Progress) Counts() (done, total int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, l := range Lessons() {
		if l.HasQuiz() {
			total++
			if p.quizzes[l.ID] {
				done++
			}
		}
		if l.HasTerminal() {
			total++
			if p.terminals[l.ID] {
				done++
			}
		}
	}
	return done, total
}

// Reset forgets all progress.
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quizzes = make(map[string]bool)
	p.terminals = make(map[string]bool)
}
