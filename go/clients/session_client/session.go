package session_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/quorum/go/internal/models"
)

// CreatedSession is the client-side view of a freshly created session.
// AdminID comes from the credential cookie, not the response body, and is
// empty if the server did not set one.
type CreatedSession struct {
	SessionID string
	AdminID   string
}

// CreateSession creates a new voting session. The server sets the admin
// credential cookie as a side effect of the response; the cookie is read only
// after the response has been fully processed.
func (c *SessionClient) CreateSession(ctx context.Context) (*CreatedSession, error) {
	body, err := c.Post(ctx, SessionEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var created models.SessionCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	adminID, _ := AdminCredential(c.Cookies())
	return &CreatedSession{
		SessionID: created.SessionID,
		AdminID:   adminID,
	}, nil
}

// GetQuestions fetches the session's questions in the server's order. An
// empty slice is a valid result, distinct from failure.
func (c *SessionClient) GetQuestions(ctx context.Context, sessionID string) ([]models.Question, error) {
	body, err := c.Get(ctx, questionsPath(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	var questions []models.Question
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return questions, nil
}

// SubmitQuestion posts a new question. Callers validate text before invoking
// this; blank submissions must never reach the transport.
func (c *SessionClient) SubmitQuestion(ctx context.Context, sessionID, text string) error {
	payload, err := json.Marshal(models.QuestionSubmission{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	if _, err := c.Post(ctx, questionsPath(sessionID), bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to submit question: %w", err)
	}
	return nil
}

// VoteQuestion registers one up-vote for a question. Double-vote prevention
// is the server's job; the client never pre-increments.
func (c *SessionClient) VoteQuestion(ctx context.Context, sessionID, questionID string) error {
	if _, err := c.Put(ctx, votePath(sessionID, questionID), nil); err != nil {
		return fmt.Errorf("failed to vote: %w", err)
	}
	return nil
}

// EndSession deletes all server-side state for the session. Every later
// operation on the same id fails with a not-found condition.
func (c *SessionClient) EndSession(ctx context.Context, sessionID string) error {
	if _, err := c.Delete(ctx, sessionPath(sessionID)); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CheckAdminStatus asks the server whether the caller's credential cookie
// matches the session's stored admin id. This is the authoritative check;
// cookie presence alone proves nothing.
func (c *SessionClient) CheckAdminStatus(ctx context.Context, sessionID string) (bool, error) {
	body, err := c.Get(ctx, checkAdminPath(sessionID))
	if err != nil {
		return false, fmt.Errorf("failed to check admin status: %w", err)
	}

	var status models.AdminStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return status.IsAdmin, nil
}
