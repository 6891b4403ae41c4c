package grading

import (
	"fmt"

	"github.com/quiz-gen/backend/internal/models"
)

// ValidateInputs checks that answers can be graded against quiz. A nil Questions
// slice means the field was absent; a non-nil empty slice means no questions.
// On success the outcome carries the question list for the scorer.
func ValidateInputs(quiz *models.Quiz, answers []string) models.ValidationOutcome {
	if quiz == nil {
		return invalid("Quiz data cannot be empty")
	}

	if quiz.Questions == nil {
		return invalid("Quiz data is missing 'questions' field")
	}

	if len(quiz.Questions) == 0 {
		return invalid("Quiz has no questions")
	}

	if answers == nil {
		return invalid("User answers cannot be missing")
	}

	if len(answers) == 0 {
		return invalid("User answers cannot be empty")
	}

	if len(answers) != len(quiz.Questions) {
		return invalid(fmt.Sprintf("Answer count (%d) doesn't match question count (%d)", len(answers), len(quiz.Questions)))
	}

	return models.ValidationOutcome{Valid: true, Questions: quiz.Questions}
}

func invalid(message string) models.ValidationOutcome {
	return models.ValidationOutcome{Valid: false, Message: message}
}
