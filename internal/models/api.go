package models

import "time"

// ── Request Types ─────────────────────────────────────

type GenerateQuizRequest struct {
	Topic string `json:"topic"`
}

type RecordAnswerRequest struct {
	Answer string `json:"answer"`
}

type SubmitQuizRequest struct {
	// Answers replaces any individually recorded selections when present.
	Answers []string `json:"answers,omitempty"`
}

// ── Response Types ────────────────────────────────────

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PublicQuestion is a question as shown while the quiz is in progress.
type PublicQuestion struct {
	Number   int               `json:"number"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

type QuizStateResponse struct {
	State     QuizState        `json:"state"`
	QuizID    string           `json:"quiz_id,omitempty"`
	Topic     string           `json:"topic,omitempty"`
	Questions []PublicQuestion `json:"questions,omitempty"`
	Answers   map[int]string   `json:"answers,omitempty"`
	Score     *ScoreSummary    `json:"score,omitempty"`
	Results   []DetailedResult `json:"results,omitempty"`
}

type ResultsResponse struct {
	Topic   string           `json:"topic"`
	Score   ScoreSummary     `json:"score"`
	Results []DetailedResult `json:"results"`
}

type ExplanationResponse struct {
	QuestionNumber int    `json:"question_number"`
	Explanation    string `json:"explanation"`
	Fallback       bool   `json:"fallback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
