package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quiz-gen/backend/internal/models"
)

// DefaultMaxAttempts is the total number of LLM calls GenerateQuiz makes before giving up.
const DefaultMaxAttempts = 3

const previewLength = 100

var (
	ErrEmptyTopic = errors.New("topic is required")
	// ErrQuizUnavailable matches every *GenerationError.
	ErrQuizUnavailable = errors.New("quiz generation failed")
)

// FailureKind classifies why a single attempt failed.
type FailureKind string

const (
	FailureMalformed FailureKind = "malformed_response"
	FailureSchema    FailureKind = "schema_violation"
	FailureTransport FailureKind = "transport"
)

type AttemptFailure struct {
	Attempt int
	Kind    FailureKind
	Err     error
}

// GenerationError is returned once every attempt has failed.
type GenerationError struct {
	Topic    string
	Failures []AttemptFailure
}

func (e *GenerationError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("quiz generation for %q failed before any attempt", e.Topic)
	}
	last := e.Failures[len(e.Failures)-1]
	return fmt.Sprintf("quiz generation for %q failed after %d attempts (last: %s: %v)",
		e.Topic, len(e.Failures), last.Kind, last.Err)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrQuizUnavailable
}

// QuizGenerator requests quizzes from an LLMClient and retries until a
// response parses and validates.
type QuizGenerator struct {
	llm         LLMClient
	maxAttempts int
}

func NewQuizGenerator(llm LLMClient, maxAttempts int) *QuizGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &QuizGenerator{llm: llm, maxAttempts: maxAttempts}
}

func (g *QuizGenerator) MaxAttempts() int {
	return g.maxAttempts
}

// GenerateQuiz returns a validated quiz about topic, or an error matching
// ErrEmptyTopic or ErrQuizUnavailable. Attempts run strictly one after another.
func (g *QuizGenerator) GenerateQuiz(ctx context.Context, topic string, apiKey string) (*models.Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	req := GenerateRequest{
		Prompt:      BuildQuizPrompt(topic),
		MaxTokens:   QuizMaxTokens,
		Temperature: QuizTemperature,
		APIKey:      apiKey,
	}

	genErr := &GenerationError{Topic: topic}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			log.Printf("[generator] context done before attempt %d: %v", attempt, ctx.Err())
			break
		}

		log.Printf("[generator] attempt %d of %d to generate quiz about %q", attempt, g.maxAttempts, topic)

		quiz, failure := g.attempt(ctx, req, topic)
		if failure == nil {
			quiz.ID = uuid.NewString()
			quiz.GeneratedAt = time.Now()
			log.Printf("[generator] quiz about %q generated with %d questions", topic, len(quiz.Questions))
			return quiz, nil
		}

		failure.Attempt = attempt
		genErr.Failures = append(genErr.Failures, *failure)
		log.Printf("[generator] attempt %d failed (%s): %v", attempt, failure.Kind, failure.Err)
	}

	log.Printf("[generator] max attempts reached, quiz generation failed for %q", topic)
	return nil, genErr
}

func (g *QuizGenerator) attempt(ctx context.Context, req GenerateRequest, topic string) (*models.Quiz, *AttemptFailure) {
	resp, err := g.llm.Generate(ctx, req)
	if err != nil {
		return nil, &AttemptFailure{Kind: FailureTransport, Err: err}
	}

	quiz, err := ParseQuiz(resp.Content, topic)
	if err == nil {
		return quiz, nil
	}

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return nil, &AttemptFailure{Kind: FailureSchema, Err: err}
	case errors.Is(err, ErrMalformedResponse):
		log.Printf("[generator] response text preview: %s", preview(resp.Content))
		return nil, &AttemptFailure{Kind: FailureMalformed, Err: err}
	default:
		return nil, &AttemptFailure{Kind: FailureTransport, Err: err}
	}
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength]) + "..."
}
