package quiz

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/quiz-gen/backend/internal/auth"
	"github.com/quiz-gen/backend/internal/generator"
	"github.com/quiz-gen/backend/internal/models"
	"github.com/quiz-gen/backend/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the quiz endpoints on a router that already resolves
// the session identity.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/quiz", h.GetState).Methods("GET")
	r.HandleFunc("/quiz", h.GenerateQuiz).Methods("POST")
	r.HandleFunc("/quiz", h.ResetQuiz).Methods("DELETE")
	r.HandleFunc("/quiz/answers/{number}", h.RecordAnswer).Methods("PUT")
	r.HandleFunc("/quiz/submit", h.SubmitQuiz).Methods("POST")
	r.HandleFunc("/quiz/results", h.GetResults).Methods("GET")
	r.HandleFunc("/quiz/results/{number}/explanation", h.GetExplanation).Methods("GET")
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.State(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please enter a topic!"})
		return
	}

	resp, err := h.service.StartQuiz(r.Context(), sessionID, req.Topic)
	if err != nil {
		log.Printf("[handler] generate quiz for session %s: %v", sessionID, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question number"})
		return
	}

	var req models.RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.RecordAnswer(sessionID, number, strings.ToUpper(strings.TrimSpace(req.Answer)))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	// The body is optional; an empty one grades the recorded selections.
	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	for i, letter := range req.Answers {
		req.Answers[i] = strings.ToUpper(strings.TrimSpace(letter))
	}

	resp, err := h.service.Submit(sessionID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.Results(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question number"})
		return
	}

	resp, err := h.service.Explanation(r.Context(), sessionID, number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ResetQuiz(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.Reset(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var inputErr *InputError

	switch {
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session expired. Create a new one with POST /api/v1/sessions"})
	case errors.Is(err, generator.ErrEmptyTopic):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please enter a topic!"})
	case errors.Is(err, generator.ErrQuizUnavailable):
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to generate quiz. Please try again."})
	case errors.Is(err, session.ErrIncomplete):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please answer all questions before submitting!"})
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Message})
	case errors.Is(err, session.ErrBadQuestion), errors.Is(err, session.ErrBadAnswer):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrGenerating):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "A quiz is already being generated for this session"})
	case errors.Is(err, session.ErrNoQuiz), errors.Is(err, session.ErrNotGraded), errors.Is(err, session.ErrAlreadyGraded):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrAnsweredCorrectly):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Explanations are only available for incorrect answers"})
	default:
		log.Printf("[handler] unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[handler] encode response: %v", err)
	}
}
