package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/quiz-gen/backend/internal/generator"
	"github.com/quiz-gen/backend/internal/grading"
	"github.com/quiz-gen/backend/internal/models"
	"github.com/quiz-gen/backend/internal/session"
)

var ErrAnsweredCorrectly = errors.New("question was answered correctly")

// InputError is a grading-input problem the user can fix and resubmit.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Service drives one session through no quiz, quiz in progress, and results.
type Service struct {
	sessions  *session.Store
	generator *generator.QuizGenerator
	explainer *generator.Explainer
	apiKey    string
}

func NewService(store *session.Store, gen *generator.QuizGenerator, explainer *generator.Explainer, apiKey string) *Service {
	return &Service{
		sessions:  store,
		generator: gen,
		explainer: explainer,
		apiKey:    apiKey,
	}
}

func (s *Service) State(sessionID string) (*models.QuizStateResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return stateResponse(sess), nil
}

// StartQuiz generates a quiz and makes it the session's current attempt. The
// LLM round trips happen outside the session lock; a second request for the
// same session fails with session.ErrGenerating until the first finishes.
func (s *Service) StartQuiz(ctx context.Context, sessionID string, topic string) (*models.QuizStateResponse, error) {
	_, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		return sess.BeginGeneration()
	})
	if err != nil {
		return nil, err
	}

	quiz, genErr := s.generator.GenerateQuiz(ctx, topic, s.apiKey)

	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		sess.EndGeneration()
		if genErr == nil {
			sess.StartQuiz(quiz)
		}
		return nil
	})
	if genErr != nil {
		return nil, genErr
	}
	if err != nil {
		return nil, err
	}
	return stateResponse(sess), nil
}

func (s *Service) RecordAnswer(sessionID string, number int, letter string) (*models.QuizStateResponse, error) {
	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		return sess.RecordAnswer(number, letter)
	})
	if err != nil {
		return nil, err
	}
	return stateResponse(sess), nil
}

// Submit grades the current attempt. answers, when non-nil, replaces the
// individually recorded selections.
func (s *Service) Submit(sessionID string, answers []string) (*models.ResultsResponse, error) {
	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		switch sess.State() {
		case models.StateNoQuiz:
			return session.ErrNoQuiz
		case models.StateResults:
			return session.ErrAlreadyGraded
		}

		userAnswers := answers
		if userAnswers == nil {
			recorded, err := sess.AnswerList()
			if err != nil {
				return err
			}
			userAnswers = recorded
		}

		outcome := grading.ValidateInputs(sess.Quiz, userAnswers)
		if !outcome.Valid {
			return &InputError{Message: outcome.Message}
		}

		for i, letter := range userAnswers {
			if err := sess.RecordAnswer(i+1, letter); err != nil {
				return fmt.Errorf("answer %d: %w", i+1, err)
			}
		}

		score := grading.CalculateScore(userAnswers, sess.Quiz.CorrectAnswers())
		results := grading.GetDetailedResults(outcome.Questions, userAnswers)
		sess.SetResults(score, results)

		log.Printf("[quiz] session %s scored %s on %q", sess.ID, score.ScoreDisplay, sess.Quiz.Topic)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultsResponse(sess), nil
}

func (s *Service) Results(sessionID string) (*models.ResultsResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State() != models.StateResults {
		return nil, session.ErrNotGraded
	}
	return resultsResponse(sess), nil
}

// Explanation returns a remedial explanation for an incorrectly answered
// question. Failures degrade to the fallback text and are not cached.
func (s *Service) Explanation(ctx context.Context, sessionID string, number int) (*models.ExplanationResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	result, err := sess.Result(number)
	if err != nil {
		return nil, err
	}
	if result.IsCorrect {
		return nil, ErrAnsweredCorrectly
	}

	if cached, ok := sess.Explanations[number]; ok {
		return &models.ExplanationResponse{QuestionNumber: number, Explanation: cached}, nil
	}

	explanation, ok := s.explainer.GenerateExplanation(ctx,
		result.QuestionText,
		result.CorrectAnswer,
		result.Options[result.CorrectAnswer],
		s.apiKey,
	)
	if !ok {
		return &models.ExplanationResponse{
			QuestionNumber: number,
			Explanation:    generator.FallbackExplanation,
			Fallback:       true,
		}, nil
	}

	quizID := sess.Quiz.ID
	_, err = s.sessions.Update(sessionID, func(current *session.Session) error {
		// Skip caching if the user moved on to another quiz meanwhile.
		if current.Quiz != nil && current.Quiz.ID == quizID && current.Explanations != nil {
			current.Explanations[number] = explanation
		}
		return nil
	})
	if err != nil {
		log.Printf("[quiz] cache explanation for session %s: %v", sessionID, err)
	}

	return &models.ExplanationResponse{QuestionNumber: number, Explanation: explanation}, nil
}

func (s *Service) Reset(sessionID string) (*models.QuizStateResponse, error) {
	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stateResponse(sess), nil
}

func stateResponse(sess *session.Session) *models.QuizStateResponse {
	resp := &models.QuizStateResponse{State: sess.State()}
	if sess.Quiz == nil {
		return resp
	}

	resp.QuizID = sess.Quiz.ID
	resp.Topic = sess.Quiz.Topic
	resp.Answers = sess.Answers
	resp.Questions = make([]models.PublicQuestion, len(sess.Quiz.Questions))
	for i, q := range sess.Quiz.Questions {
		resp.Questions[i] = models.PublicQuestion{
			Number:   i + 1,
			Question: q.Question,
			Options:  q.Options,
		}
	}

	if resp.State == models.StateResults {
		resp.Score = sess.Score
		resp.Results = sess.Results
	}
	return resp
}

func resultsResponse(sess *session.Session) *models.ResultsResponse {
	return &models.ResultsResponse{
		Topic:   sess.Quiz.Topic,
		Score:   *sess.Score,
		Results: sess.Results,
	}
}
