package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quiz-gen/backend/internal/models"
)

// ErrMalformedResponse marks LLM text that is not valid JSON.
var ErrMalformedResponse = errors.New("malformed JSON response")

// ValidationError reports a parsed response that does not match the quiz schema.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quiz validation failed: %s", e.Reason)
}

// ParseQuiz turns raw LLM text into a typed quiz. JSON syntax errors wrap
// ErrMalformedResponse; schema problems come back as *ValidationError.
func ParseQuiz(responseBody string, topic string) (*models.Quiz, error) {
	cleaned := stripCodeFences(responseBody)

	var tree any
	if err := json.Unmarshal([]byte(cleaned), &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if ok, message := ValidateQuiz(tree); !ok {
		return nil, &ValidationError{Reason: message}
	}

	return buildQuiz(tree, topic)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// buildQuiz converts a tree that already passed ValidateQuiz. It only has to
// check the leaf types the structural rules leave open.
func buildQuiz(tree any, topic string) (*models.Quiz, error) {
	rawQuestions := tree.(map[string]any)["questions"].([]any)

	quiz := &models.Quiz{
		Topic:     topic,
		Questions: make([]models.Question, 0, len(rawQuestions)),
	}

	for i, raw := range rawQuestions {
		qNum := i + 1
		entry := raw.(map[string]any)

		text, ok := entry["question"].(string)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("'question' in question %d is not a string", qNum)}
		}

		rawOptions := entry["options"].(map[string]any)
		options := make(map[string]string, len(models.OptionLetters))
		for _, letter := range models.OptionLetters {
			optionText, ok := rawOptions[letter].(string)
			if !ok {
				return nil, &ValidationError{Reason: fmt.Sprintf("Option '%s' in question %d is not a string", letter, qNum)}
			}
			options[letter] = optionText
		}

		quiz.Questions = append(quiz.Questions, models.Question{
			Question:      text,
			Options:       options,
			CorrectAnswer: entry["correct_answer"].(string),
		})
	}

	return quiz, nil
}
