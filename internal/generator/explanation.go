package generator

import (
	"context"
	"log"
	"strings"
)

// FallbackExplanation is shown when no explanation could be generated.
const FallbackExplanation = "No explanation is available for this question right now. Review the correct answer above and try looking the topic up for more detail."

// Explainer produces short remedial explanations for missed questions.
type Explainer struct {
	llm LLMClient
}

func NewExplainer(llm LLMClient) *Explainer {
	return &Explainer{llm: llm}
}

// GenerateExplanation makes a single LLM call. ok is false when the call failed
// or returned nothing usable; callers show FallbackExplanation instead.
func (e *Explainer) GenerateExplanation(ctx context.Context, questionText, correctLetter, correctOptionText, apiKey string) (explanation string, ok bool) {
	resp, err := e.llm.Generate(ctx, GenerateRequest{
		Prompt:      BuildExplanationPrompt(questionText, correctLetter, correctOptionText),
		MaxTokens:   ExplanationMaxTokens,
		Temperature: ExplanationTemperature,
		APIKey:      apiKey,
	})
	if err != nil {
		log.Printf("[generator] explanation failed: %v", err)
		return "", false
	}

	explanation = strings.TrimSpace(resp.Content)
	if explanation == "" {
		return "", false
	}
	return explanation, true
}
