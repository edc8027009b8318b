package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/quorum/go/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSessionClosed rejects writes to a session that is no longer active.
	ErrSessionClosed = errors.New("voting session is closed")
	// ErrEmptyQuestion rejects blank submissions.
	ErrEmptyQuestion = errors.New("invalid request body or empty question")
	// ErrQuestionNotFound rejects votes on unknown question ids. Carries the
	// "not found" marker clients key off.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAlreadyVoted enforces one vote per user per question.
	ErrAlreadyVoted = errors.New("already voted on this question in this session")
	// ErrNotAdmin rejects end-session calls from anyone but the creator.
	ErrNotAdmin = errors.New("unauthorized: only the session creator can end the session")
)

// App implements the voting session domain logic on top of a Repository.
type App struct {
	repo Repository
}

func NewApp(repo Repository) *App {
	return &App{repo: repo}
}

// CreateSession opens a new session owned by adminUserID.
func (a *App) CreateSession(ctx context.Context, adminUserID string) (*models.SessionData, error) {
	data := &models.SessionData{
		SessionID:   uuid.New().String(),
		AdminUserID: adminUserID,
		IsActive:    true,
		Questions:   []models.Question{},
	}

	if err := a.repo.SaveSessionData(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("session_id", data.SessionID).Msg("session created")
	return data, nil
}

// Questions returns the session's questions sorted by votes, highest first.
// The returned order is the order clients display; they never re-sort.
func (a *App) Questions(ctx context.Context, sessionID string) ([]models.Question, error) {
	data, err := a.repo.LoadSessionData(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	questions := data.Questions
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Votes > questions[j].Votes
	})
	return questions, nil
}

// SubmitQuestion appends a new question to an active session.
func (a *App) SubmitQuestion(ctx context.Context, sessionID, text string) (*models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuestion
	}

	data, err := a.repo.LoadSessionData(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !data.IsActive {
		return nil, ErrSessionClosed
	}

	question := models.Question{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Text:      text,
		Votes:     0,
		Voters:    []string{},
	}
	data.Questions = append(data.Questions, question)

	if err := a.repo.SaveSessionData(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save question: %w", err)
	}

	log.Debug().Str("session_id", sessionID).Str("question_id", question.ID).Msg("question submitted")
	return &question, nil
}

// Vote adds one vote from userID to a question. Votes stays equal to
// len(Voters); a second vote from the same user is rejected.
func (a *App) Vote(ctx context.Context, sessionID, questionID, userID string) (*models.Question, error) {
	data, err := a.repo.LoadSessionData(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !data.IsActive {
		return nil, ErrSessionClosed
	}

	for i := range data.Questions {
		if data.Questions[i].ID != questionID {
			continue
		}

		for _, voterID := range data.Questions[i].Voters {
			if voterID == userID {
				return nil, ErrAlreadyVoted
			}
		}

		data.Questions[i].Votes++
		data.Questions[i].Voters = append(data.Questions[i].Voters, userID)

		if err := a.repo.SaveSessionData(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to record vote: %w", err)
		}

		voted := data.Questions[i]
		log.Debug().
			Str("session_id", sessionID).
			Str("question_id", questionID).
			Int("votes", voted.Votes).
			Msg("vote recorded")
		return &voted, nil
	}

	return nil, ErrQuestionNotFound
}

// IsAdmin reports whether userID created the session. An unknown session
// yields false rather than an error; the check endpoint never 404s.
func (a *App) IsAdmin(ctx context.Context, sessionID, userID string) (bool, error) {
	data, err := a.repo.LoadSessionData(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return data.AdminUserID == userID, nil
}

// EndSession deletes all state for the session. Only the creator may end it;
// afterwards every operation on the id fails with ErrSessionNotFound.
func (a *App) EndSession(ctx context.Context, sessionID, userID string) error {
	data, err := a.repo.LoadSessionData(ctx, sessionID)
	if err != nil {
		return err
	}

	if data.AdminUserID != userID {
		return ErrNotAdmin
	}

	if err := a.repo.DeleteSessionData(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info().Str("session_id", sessionID).Msg("session ended, data deleted")
	return nil
}
