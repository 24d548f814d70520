package course

import (
	"strings"
	"testing"
)

func TestOutlineOrder(t *testing.T) {
	want := []string{
		"welcome", "certificate-authority", "openssl", "environment",
		"terminal-intro", "install-openssl", "create-private-key", "create-csr",
		"verify-key-csr", "upload-download", "build-chain", "verify-chain",
		"crls", "summary",
	}
	got := Lessons()
	if len(got) != len(want) {
		t.Fatalf("got %d lessons, want %d", len(got), len(want))
	}
	for i, l := range got {
		if l.ID != want[i] {
			t.Errorf("lesson %d = %q, want %q", i, l.ID, want[i])
		}
		if l.Number != i+1 {
			t.Errorf("lesson %q number = %d, want %d", l.ID, l.Number, i+1)
		}
		if l.Title == "" || l.Summary == "" {
			t.Errorf("lesson %q missing title or summary", l.ID)
		}
	}
}

func TestLessonFlags(t *testing.T) {
	tests := []struct {
		id                      string
		quiz, terminal, diagram bool
	}{
		{"welcome", false, false, false},
		{"certificate-authority", true, false, true},
		{"openssl", true, false, false},
		{"terminal-intro", true, false, true},
		{"install-openssl", false, true, false},
		{"upload-download", true, false, true},
		{"build-chain", true, true, true},
		{"verify-chain", false, true, false},
		{"summary", false, false, false},
	}
	for _, tt := range tests {
		l, ok := GetLesson(tt.id)
		if !ok {
			t.Fatalf("lesson %q missing", tt.id)
		}
		if l.HasQuiz() != tt.quiz || l.HasTerminal() != tt.terminal || l.HasDiagram() != tt.diagram {
			t.Errorf("%s: quiz=%v terminal=%v diagram=%v", tt.id, l.HasQuiz(), l.HasTerminal(), l.HasDiagram())
		}
	}
}

func TestQuizSizes(t *testing.T) {
	want := map[string]int{
		"certificate-authority": 2,
		"openssl":               2,
		"environment":           1,
		"terminal-intro":        2,
		"upload-download":       3,
		"build-chain":           2,
	}
	got := QuizLessons()
	if len(got) != len(want) {
		t.Fatalf("quiz lessons = %d, want %d", len(got), len(want))
	}
	for _, l := range got {
		if len(l.Quiz) != want[l.ID] {
			t.Errorf("%s: %d questions, want %d", l.ID, len(l.Quiz), want[l.ID])
		}
	}
}

func TestTerminalLessons(t *testing.T) {
	var ids []string
	for _, l := range TerminalLessons() {
		ids = append(ids, l.ID)
	}
	got := strings.Join(ids, ",")
	want := "install-openssl,create-private-key,create-csr,verify-key-csr,build-chain,verify-chain"
	if got != want {
		t.Errorf("terminal lessons = %s, want %s", got, want)
	}
}

func TestNavigation(t *testing.T) {
	if _, ok := Prev("welcome"); ok {
		t.Error("welcome has no previous lesson")
	}
	if _, ok := Next("summary"); ok {
		t.Error("summary has no next lesson")
	}
	if l, ok := Next("create-csr"); !ok || l.ID != "verify-key-csr" {
		t.Errorf("Next(create-csr) = %q, %v", l.ID, ok)
	}
	if l, ok := Prev("create-csr"); !ok || l.ID != "create-private-key" {
		t.Errorf("Prev(create-csr) = %q, %v", l.ID, ok)
	}
	if _, ok := Next("missing"); ok {
		t.Error("unknown lesson has no next")
	}
}

func TestGradeQuiz(t *testing.T) {
	l, _ := GetLesson("certificate-authority")

	tests := []struct {
		name        string
		selected    map[string]string
		allAnswered bool
		allCorrect  bool
		score       int
	}{
		{"none", nil, false, false, 0},
		{"partial", map[string]string{"ca-role": "a"}, false, false, 1},
		{"wrong", map[string]string{"ca-role": "a", "ca-exchange": "d"}, true, false, 1},
		{"bogus id", map[string]string{"ca-role": "a", "ca-exchange": "z"}, false, false, 1},
		{"perfect", map[string]string{"ca-role": "a", "ca-exchange": "b"}, true, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := l.Grade(tt.selected)
			if g.AllAnswered != tt.allAnswered {
				t.Errorf("AllAnswered = %v, want %v", g.AllAnswered, tt.allAnswered)
			}
			if g.AllCorrect != tt.allCorrect {
				t.Errorf("AllCorrect = %v, want %v", g.AllCorrect, tt.allCorrect)
			}
			if score, total := g.Score(); score != tt.score || total != 2 {
				t.Errorf("score = %d/%d, want %d/2", score, total, tt.score)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	p := NewProgress()
	chain, _ := GetLesson("build-chain")
	welcome, _ := GetLesson("welcome")

	if !p.LessonDone(welcome) {
		t.Error("content-only lesson should be done")
	}
	if p.LessonDone(chain) {
		t.Error("build-chain should not be done yet")
	}

	p.MarkQuiz("build-chain")
	if p.LessonDone(chain) {
		t.Error("build-chain needs its lab too")
	}
	p.MarkTerminal("build-chain")
	if !p.LessonDone(chain) {
		t.Error("build-chain should be done")
	}
	if p.CourseComplete() {
		t.Error("course should not be complete")
	}

	for _, l := range QuizLessons() {
		p.MarkQuiz(l.ID)
	}
	for _, l := range TerminalLessons() {
		p.MarkTerminal(l.ID)
	}
	if !p.CourseComplete() {
		t.Error("course should be complete")
	}
	done, total := p.Counts()
	if done != total || total != 12 {
		t.Errorf("counts = %d/%d, want 12/12", done, total)
	}

	p.Reset()
	if p.QuizDone("build-chain") || p.TerminalDone("build-chain") {
		t.Error("reset should clear progress")
	}
}

func TestValidateLessons(t *testing.T) {
	err := validateLessons([]Lesson{
		{ID: "a", Quiz: []Question{
			{ID: "q", Answers: []Answer{{ID: "a", Correct: true}, {ID: "b", Correct: true}}},
			{ID: "q", Answers: []Answer{{ID: "a", Correct: true}}},
		}},
		{ID: "a"},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"duplicate lesson ID", "duplicate question ID", "has 2 correct answers", "at least 2 answers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}
