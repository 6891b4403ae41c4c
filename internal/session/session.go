package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/quiz-gen/backend/internal/models"
)

var (
	ErrNoQuiz        = errors.New("no quiz in progress")
	ErrAlreadyGraded = errors.New("quiz already submitted")
	ErrNotGraded     = errors.New("quiz has not been submitted")
	ErrBadQuestion   = errors.New("question number out of range")
	ErrBadAnswer     = errors.New("answer must be A, B, C, or D")
	ErrIncomplete    = errors.New("not every question has an answer")
	ErrGenerating    = errors.New("a quiz is already being generated")
)

// Session is the mutable context of one quiz taker. It is only touched through
// Store.Update, which serializes access.
type Session struct {
	ID           string                  `json:"id"`
	Quiz         *models.Quiz            `json:"quiz,omitempty"`
	Answers      map[int]string          `json:"answers,omitempty"`
	Score        *models.ScoreSummary    `json:"score,omitempty"`
	Results      []models.DetailedResult `json:"results,omitempty"`
	Explanations map[int]string          `json:"explanations,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`

	generating bool
}

func (s *Session) State() models.QuizState {
	switch {
	case s.Quiz == nil:
		return models.StateNoQuiz
	case s.Results == nil:
		return models.StateInProgress
	default:
		return models.StateResults
	}
}

// BeginGeneration marks a quiz generation as in flight. Only one may run per
// session at a time.
func (s *Session) BeginGeneration() error {
	if s.generating {
		return ErrGenerating
	}
	s.generating = true
	return nil
}

func (s *Session) EndGeneration() {
	s.generating = false
}

func (s *Session) Generating() bool {
	return s.generating
}

// StartQuiz begins a new attempt, discarding everything from the previous one.
func (s *Session) StartQuiz(quiz *models.Quiz) {
	s.Quiz = quiz
	s.Answers = make(map[int]string)
	s.Score = nil
	s.Results = nil
	s.Explanations = make(map[int]string)
}

// RecordAnswer stores the selection for a 1-based question number.
func (s *Session) RecordAnswer(number int, letter string) error {
	switch s.State() {
	case models.StateNoQuiz:
		return ErrNoQuiz
	case models.StateResults:
		return ErrAlreadyGraded
	}
	if number < 1 || number > len(s.Quiz.Questions) {
		return fmt.Errorf("%w: %d", ErrBadQuestion, number)
	}
	if !models.ValidOptionLetters[letter] {
		return ErrBadAnswer
	}
	s.Answers[number] = letter
	return nil
}

// AnswerList returns the recorded answers in question order. It fails unless
// every question has been answered.
func (s *Session) AnswerList() ([]string, error) {
	if s.Quiz == nil {
		return nil, ErrNoQuiz
	}
	if len(s.Answers) != len(s.Quiz.Questions) {
		return nil, ErrIncomplete
	}

	answers := make([]string, 0, len(s.Quiz.Questions))
	for i := 1; i <= len(s.Quiz.Questions); i++ {
		letter, ok := s.Answers[i]
		if !ok {
			return nil, ErrIncomplete
		}
		answers = append(answers, letter)
	}
	return answers, nil
}

func (s *Session) SetResults(score models.ScoreSummary, results []models.DetailedResult) {
	s.Score = &score
	s.Results = results
}

// Reset returns the session to the no-quiz state.
func (s *Session) Reset() {
	s.Quiz = nil
	s.Answers = nil
	s.Score = nil
	s.Results = nil
	s.Explanations = nil
}

// Result returns the graded result for a 1-based question number.
func (s *Session) Result(number int) (*models.DetailedResult, error) {
	if s.Results == nil {
		return nil, ErrNotGraded
	}
	if number < 1 || number > len(s.Results) {
		return nil, fmt.Errorf("%w: %d", ErrBadQuestion, number)
	}
	return &s.Results[number-1], nil
}

func (s *Session) clone() *Session {
	c := *s
	if s.Answers != nil {
		c.Answers = make(map[int]string, len(s.Answers))
		for k, v := range s.Answers {
			c.Answers[k] = v
		}
	}
	if s.Explanations != nil {
		c.Explanations = make(map[int]string, len(s.Explanations))
		for k, v := range s.Explanations {
			c.Explanations[k] = v
		}
	}
	if s.Results != nil {
		c.Results = make([]models.DetailedResult, len(s.Results))
		copy(c.Results, s.Results)
	}
	if s.Score != nil {
		score := *s.Score
		c.Score = &score
	}
	return &c
}
