package quizzes

import (
	"fmt"
	"math"
	"strings"

	"Backend-Schoolhub/src/models"
)

// Score returns the marks an answer earns for its question. There is no partial credit.
func Score(q models.Question, a models.Answer) float64 {
	switch q.Type {
	case models.QuestionTypeMCQ:
		if q.CorrectOptionIndex != nil && a.ChosenIndex != nil && *a.ChosenIndex == *q.CorrectOptionIndex {
			return q.Marks
		}
	case models.QuestionTypeFill:
		if normalizeAnswer(a.AnswerText) != "" && normalizeAnswer(a.AnswerText) == normalizeAnswer(q.CorrectAnswer) {
			return q.Marks
		}
	}
	return 0
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreSheet is the outcome of scoring a full set of answers against a group.
type ScoreSheet struct {
	Answers       []models.Answer
	ObtainedMarks float64
	TotalMarks    float64
}

// ScoreAnswers fills ObtainedMarks on every answer and totals the group. Unanswered questions
// still count toward TotalMarks. Every answer must reference a question in the group.
func ScoreAnswers(group *models.QuizGroup, answers []models.Answer) (ScoreSheet, error) {
	sheet := ScoreSheet{
		Answers:    make([]models.Answer, 0, len(answers)),
		TotalMarks: group.TotalMarks(),
	}
	for _, a := range answers {
		q := group.FindQuestion(a.QuestionID)
		if q == nil {
			return ScoreSheet{}, fmt.Errorf("question %s not in group", a.QuestionID.Hex())
		}
		a.Type = q.Type
		a.ObtainedMarks = Score(*q, a)
		sheet.ObtainedMarks += a.ObtainedMarks
		sheet.Answers = append(sheet.Answers, a)
	}
	return sheet, nil
}

// Percentage is obtained/total*100 rounded to two decimals, 0 when total is 0.
func Percentage(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(obtained/total*100*100) / 100
}

// FormatPercentage renders a percentage with two decimals, e.g. "66.67".
func FormatPercentage(obtained, total float64) string {
	return fmt.Sprintf("%.2f", Percentage(obtained, total))
}
