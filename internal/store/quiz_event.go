package store

import "context"

func (r *eventRepo) AppendQuizAnswer(ctx context.Context, data QuizAnswerEventData) error {
	return r.insert(ctx, tableQuiz,
		[]string{"lesson_id", "question_id", "answer_id", "correct"},
		[]any{data.LessonID, data.QuestionID, data.AnswerID, data.Correct})
}
