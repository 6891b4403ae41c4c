package grading

import (
	"fmt"

	"github.com/quiz-gen/backend/internal/models"
)

// CalculateScore compares answers position by position. Extra entries in the
// longer slice are ignored; total is the length of correctAnswers.
func CalculateScore(userAnswers, correctAnswers []string) models.ScoreSummary {
	total := len(correctAnswers)

	correct := 0
	for i := 0; i < total && i < len(userAnswers); i++ {
		if userAnswers[i] == correctAnswers[i] {
			correct++
		}
	}

	// An empty key scores 0% rather than dividing by zero.
	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}

	return models.ScoreSummary{
		TotalQuestions:  total,
		CorrectCount:    correct,
		IncorrectCount:  total - correct,
		ScorePercentage: percentage,
		ScoreDisplay:    fmt.Sprintf("%d/%d", correct, total),
	}
}

// GetDetailedResults pairs each question with the answer at the same position.
// Callers validate lengths first with ValidateInputs.
func GetDetailedResults(questions []models.Question, userAnswers []string) []models.DetailedResult {
	results := make([]models.DetailedResult, 0, len(questions))
	for i, q := range questions {
		userAnswer := ""
		if i < len(userAnswers) {
			userAnswer = userAnswers[i]
		}

		results = append(results, models.DetailedResult{
			QuestionNumber: i + 1,
			QuestionText:   q.Question,
			Options:        q.Options,
			UserAnswer:     userAnswer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      userAnswer == q.CorrectAnswer,
		})
	}
	return results
}
