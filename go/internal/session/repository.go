package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mcdev12/quorum/go/internal/models"
)

// ErrSessionNotFound is wrapped by repositories when a session id has no
// stored state. Its text is part of the wire contract: clients detect a dead
// session by the "not found" substring in the error body.
var ErrSessionNotFound = errors.New("session not found")

// Repository defines session state persistence. Implementations must treat
// SessionData as a value: loads return copies so callers can mutate freely
// before saving.
type Repository interface {
	LoadSessionData(ctx context.Context, sessionID string) (*models.SessionData, error)
	SaveSessionData(ctx context.Context, data *models.SessionData) error
	DeleteSessionData(ctx context.Context, sessionID string) error
}

// MemoryRepository keeps all session state in process memory. Sessions are
// ephemeral by design, so losing them on restart is acceptable for
// single-node deployments; use PostgresRepository otherwise.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionData
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.SessionData),
	}
}

func (r *MemoryRepository) LoadSessionData(ctx context.Context, sessionID string) (*models.SessionData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	copied := data
	copied.Questions = copyQuestions(data.Questions)
	return &copied, nil
}

func (r *MemoryRepository) SaveSessionData(ctx context.Context, data *models.SessionData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *data
	stored.Questions = copyQuestions(data.Questions)
	r.sessions[data.SessionID] = stored
	return nil
}

func (r *MemoryRepository) DeleteSessionData(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func copyQuestions(questions []models.Question) []models.Question {
	copied := make([]models.Question, len(questions))
	for i, q := range questions {
		copied[i] = q
		copied[i].Voters = append([]string(nil), q.Voters...)
	}
	return copied
}
