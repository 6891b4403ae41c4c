package generator

import (
	"context"
	"fmt"
)

// ── MockClient: Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (*LLMResponse, error) {
	if IsExplanationRequest(req) {
		return &LLMResponse{
			Content:      "[Mock] This option is correct because it matches the established facts about the subject. The other options describe related but different ideas.",
			PromptTokens: 80,
			OutputTokens: 40,
		}, nil
	}

	return &LLMResponse{
		Content:      buildMockJSON(),
		PromptTokens: 300,
		OutputTokens: 900,
	}, nil
}

func buildMockJSON() string {
	correctAnswers := []string{"B", "C", "C", "A", "C"}
	letters := []string{"A", "B", "C", "D"}

	questions := "["
	for i, correct := range correctAnswers {
		if i > 0 {
			questions += ","
		}

		options := "{"
		for j, letter := range letters {
			if j > 0 {
				options += ","
			}
			label := "incorrect"
			if letter == correct {
				label = "correct"
			}
			options += fmt.Sprintf(`"%s":"[Mock] Option %s for question %d (%s)"`, letter, letter, i+1, label)
		}
		options += "}"

		questions += fmt.Sprintf(`{"question":"[Mock] Sample question %d?","options":%s,"correct_answer":"%s"}`,
			i+1, options, correct)
	}
	questions += "]"

	return fmt.Sprintf(`{"questions":%s}`, questions)
}
