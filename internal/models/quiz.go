package models

import (
	"time"

	"github.com/samber/lo"
)

// QuestionCount is the fixed number of questions in every generated quiz.
const QuestionCount = 5

// OptionLetters lists the option labels in display order.
var OptionLetters = []string{"A", "B", "C", "D"}

var ValidOptionLetters = map[string]bool{
	"A": true,
	"B": true,
	"C": true,
	"D": true,
}

type QuizState string

const (
	StateNoQuiz     QuizState = "no_quiz"
	StateInProgress QuizState = "in_progress"
	StateResults    QuizState = "results"
)

// ── Core Structs ───────────────────────────────────────

type Question struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
}

type Quiz struct {
	ID          string     `json:"id,omitempty"`
	Topic       string     `json:"topic"`
	Questions   []Question `json:"questions"`
	GeneratedAt time.Time  `json:"generated_at,omitempty"`
}

// CorrectAnswers returns the answer key in question order.
func (q *Quiz) CorrectAnswers() []string {
	return lo.Map(q.Questions, func(question Question, _ int) string {
		return question.CorrectAnswer
	})
}

type ScoreSummary struct {
	TotalQuestions  int     `json:"total_questions"`
	CorrectCount    int     `json:"correct_count"`
	IncorrectCount  int     `json:"incorrect_count"`
	ScorePercentage float64 `json:"score_percentage"`
	ScoreDisplay    string  `json:"score_display"`
}

type DetailedResult struct {
	QuestionNumber int               `json:"question_number"`
	QuestionText   string            `json:"question_text"`
	Options        map[string]string `json:"options"`
	UserAnswer     string            `json:"user_answer"`
	CorrectAnswer  string            `json:"correct_answer"`
	IsCorrect      bool              `json:"is_correct"`
}

// ValidationOutcome is the result of checking grading inputs.
// Questions is only set when Valid is true.
type ValidationOutcome struct {
	Valid     bool
	Message   string
	Questions []Question
}
