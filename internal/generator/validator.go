package generator

import (
	"fmt"

	"github.com/quiz-gen/backend/internal/models"
)

// ValidateQuiz checks an untyped JSON tree against the quiz schema. Rules are
// applied in order and the first violation is reported.
func ValidateQuiz(parsed any) (bool, string) {
	root, ok := parsed.(map[string]any)
	if !ok {
		return false, "Response is missing the 'questions' field"
	}

	rawQuestions, ok := root["questions"]
	if !ok {
		return false, "Response is missing the 'questions' field"
	}

	questions, ok := rawQuestions.([]any)
	if !ok {
		return false, "'questions' field is not a list"
	}

	if len(questions) != models.QuestionCount {
		return false, fmt.Sprintf("Expected exactly %d questions, got %d", models.QuestionCount, len(questions))
	}

	for i, raw := range questions {
		qNum := i + 1

		entry, ok := raw.(map[string]any)
		if !ok {
			return false, fmt.Sprintf("Question %d is not an object", qNum)
		}

		for _, field := range []string{"question", "options", "correct_answer"} {
			if _, ok := entry[field]; !ok {
				return false, fmt.Sprintf("Question %d is missing the '%s' field", qNum, field)
			}
		}

		options, ok := entry["options"].(map[string]any)
		if !ok {
			return false, fmt.Sprintf("'options' in question %d is not an object", qNum)
		}

		for _, letter := range models.OptionLetters {
			if _, ok := options[letter]; !ok {
				return false, fmt.Sprintf("Option '%s' is missing in question %d", letter, qNum)
			}
		}

		correct, _ := entry["correct_answer"].(string)
		if !models.ValidOptionLetters[correct] {
			return false, fmt.Sprintf("'correct_answer' in question %d is not one of %v", qNum, models.OptionLetters)
		}
	}

	return true, "Quiz data is valid"
}
