package generator

import (
	"fmt"
	"strings"

	"github.com/quiz-gen/backend/internal/models"
)

// Output budgets. A five-question quiz fits comfortably in QuizMaxTokens;
// explanations are kept to a few sentences.
const (
	QuizMaxTokens          = 2000
	QuizTemperature        = 0.8
	ExplanationMaxTokens   = 200
	ExplanationTemperature = 0.7
)

// IsExplanationRequest reports whether req carries the explanation budget
// rather than the quiz budget.
func IsExplanationRequest(req GenerateRequest) bool {
	return req.MaxTokens == ExplanationMaxTokens
}

// BuildQuizPrompt returns the generation prompt for topic. The output is
// deterministic for a given topic.
func BuildQuizPrompt(topic string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate a multiple choice quiz about the topic: %s\n\n", topic))

	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Create EXACTLY %d questions\n", models.QuestionCount))
	sb.WriteString(fmt.Sprintf("- Each question MUST have EXACTLY %d answer options labeled %s\n",
		len(models.OptionLetters), strings.Join(models.OptionLetters, ", ")))
	sb.WriteString("- Each question MUST have ONLY 1 correct answer\n")
	sb.WriteString("- Questions should be educational and factually accurate\n")
	sb.WriteString("- Vary difficulty from easier to harder questions\n\n")

	sb.WriteString("Return your response as VALID JSON with this EXACT structure (no extra text):\n")
	sb.WriteString(`{
  "questions": [
    {
      "question": "Question text here",
      "options": {
        "A": "Option A text",
        "B": "Option B text",
        "C": "Option C text",
        "D": "Option D text"
      },
      "correct_answer": "A"
    }
  ]
}
`)
	sb.WriteString("\nReturn ONLY the JSON. No markdown code blocks, no explanations, just the JSON.")

	return sb.String()
}

// BuildExplanationPrompt asks for a short explanation of why the given option is correct.
func BuildExplanationPrompt(questionText, correctLetter, correctOptionText string) string {
	var sb strings.Builder

	sb.WriteString("Explain why this answer is correct in 2-3 sentences. Be educational, factual, and concise.\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n", questionText))
	sb.WriteString(fmt.Sprintf("Correct Answer: %s. %s\n\n", correctLetter, correctOptionText))
	sb.WriteString("Provide a brief explanation of why this is the correct answer.")

	return sb.String()
}
