package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quiz-gen/backend/internal/generator"
)

func newTestApp(input string) (*app, *bytes.Buffer) {
	llm := generator.NewMockClient()
	out := &bytes.Buffer{}
	return &app{
		generator: generator.NewQuizGenerator(llm, 1),
		explainer: generator.NewExplainer(llm),
		in:        strings.NewReader(input),
		out:       out,
	}, out
}

func TestRun_Display(t *testing.T) {
	a, out := newTestApp("")

	if err := a.run(context.Background(), "Geography", false, true); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Quiz: Geography", "Q5:", "Correct answer: B", "Raw JSON:", `"correct_answer": "C"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRun_PromptsForTopic(t *testing.T) {
	a, out := newTestApp("  Astronomy \n")

	if err := a.run(context.Background(), "", false, false); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(out.String(), "Quiz: Astronomy") {
		t.Errorf("expected prompted topic in output, got:\n%s", out.String())
	}
}

func TestRun_Play(t *testing.T) {
	// Mock key is B, C, C, A, C. The "x" line is rejected and retried.
	a, out := newTestApp("b\nx\nc\na\na\nd\n")

	if err := a.run(context.Background(), "Arithmetic", true, false); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Score: 3/5 (60.0%)") {
		t.Errorf("expected 3/5 score, got:\n%s", got)
	}
	if !strings.Contains(got, "Invalid input") {
		t.Error("expected invalid input notice")
	}
	if strings.Count(got, "[Mock] This option is correct") != 2 {
		t.Errorf("expected two explanations, got:\n%s", got)
	}
}

func TestRun_PlayRunsOutOfInput(t *testing.T) {
	a, _ := newTestApp("a\n")

	if err := a.run(context.Background(), "Arithmetic", true, false); err == nil {
		t.Error("expected an error when input ends early")
	}
}

// failingExplainer serves mock quizzes but fails every explanation call.
type failingExplainer struct {
	mock *generator.MockClient
}

func (c failingExplainer) Generate(ctx context.Context, req generator.GenerateRequest) (*generator.LLMResponse, error) {
	if generator.IsExplanationRequest(req) {
		return nil, errors.New("upstream unavailable")
	}
	return c.mock.Generate(ctx, req)
}

func TestRun_PlayShowsFallbackExplanation(t *testing.T) {
	llm := failingExplainer{mock: generator.NewMockClient()}
	out := &bytes.Buffer{}
	a := &app{
		generator: generator.NewQuizGenerator(llm, 1),
		explainer: generator.NewExplainer(llm),
		in:        strings.NewReader("a\na\na\na\na\n"),
		out:       out,
	}

	if err := a.run(context.Background(), "Arithmetic", true, false); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Mock key is B, C, C, A, C so four answers miss.
	if got := strings.Count(out.String(), generator.FallbackExplanation); got != 4 {
		t.Errorf("expected 4 fallback explanations, got %d:\n%s", got, out.String())
	}
}
