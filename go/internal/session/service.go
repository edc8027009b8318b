package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/quorum/go/internal/models"
	"github.com/rs/zerolog/log"
)

// UserSessionCookie identifies a browser/user session. The value issued on
// session creation doubles as the admin credential for that session.
const UserSessionCookie = "userSessionId"

const userSessionMaxAge = 86400 * 30 // 30 days

// Service adapts the session App to the HTTP contract under /api/session.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts all session endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/session", s.handleCreateSession)
	mux.HandleFunc("GET /api/session/{sessionID}/questions", s.handleGetQuestions)
	mux.HandleFunc("POST /api/session/{sessionID}/questions", s.handleSubmitQuestion)
	mux.HandleFunc("PUT /api/session/{sessionID}/questions/{questionID}/vote", s.handleVote)
	mux.HandleFunc("GET /api/session/{sessionID}/check-admin", s.handleCheckAdmin)
	mux.HandleFunc("DELETE /api/session/{sessionID}", s.handleEndSession)
}

// userSessionID returns the caller's user session id, issuing a fresh cookie
// when none is present yet.
func (s *Service) userSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(UserSessionCookie); err == nil {
		return cookie.Value
	}

	newID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     UserSessionCookie,
		Value:    newID,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   userSessionMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return newID
}

func (s *Service) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	adminID := s.userSessionID(w, r)

	data, err := s.app.CreateSession(r.Context(), adminID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.SessionCreated{SessionID: data.SessionID})
}

func (s *Service) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.app.Questions(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Service) handleSubmitQuestion(w http.ResponseWriter, r *http.Request) {
	s.userSessionID(w, r)

	var submission models.QuestionSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		http.Error(w, ErrEmptyQuestion.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.app.SubmitQuestion(r.Context(), r.PathValue("sessionID"), submission.Text); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleVote(w http.ResponseWriter, r *http.Request) {
	userID := s.userSessionID(w, r)

	_, err := s.app.Vote(r.Context(), r.PathValue("sessionID"), r.PathValue("questionID"), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	userID := s.userSessionID(w, r)

	isAdmin, err := s.app.IsAdmin(r.Context(), r.PathValue("sessionID"), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AdminStatus{IsAdmin: isAdmin})
}

func (s *Service) handleEndSession(w http.ResponseWriter, r *http.Request) {
	userID := s.userSessionID(w, r)

	if err := s.app.EndSession(r.Context(), r.PathValue("sessionID"), userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors onto HTTP statuses and sends the raw error
// text as the body; clients surface it verbatim.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrQuestionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrAlreadyVoted), errors.Is(err, ErrNotAdmin):
		status = http.StatusForbidden
	case errors.Is(err, ErrEmptyQuestion):
		status = http.StatusBadRequest
	}

	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
