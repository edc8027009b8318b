package sessionsync

import (
	"context"

	"github.com/mcdev12/quorum/go/internal/models"
)

// UpdateSource supplies the loop with question snapshots. The default is the
// fixed-interval poll against the session API; a push transport can implement
// this instead without touching the loop.
type UpdateSource interface {
	Pull(ctx context.Context) ([]models.Question, error)
}

// PollSource pulls the full question list from the session API on demand.
type PollSource struct {
	api       SessionAPI
	sessionID string
}

func NewPollSource(api SessionAPI, sessionID string) *PollSource {
	return &PollSource{api: api, sessionID: sessionID}
}

func (s *PollSource) Pull(ctx context.Context) ([]models.Question, error) {
	return s.api.GetQuestions(ctx, s.sessionID)
}
