package session_client

import (
	"github.com/mcdev12/quorum/go/clients"
)

// SessionClient talks to the voting session API. The embedded BaseClient's
// cookie jar carries the userSessionId credential the server sets on first
// contact, so admin authorization is ambient on every call.
type SessionClient struct {
	*clients.BaseClient
}

func NewSessionClient(baseURL string) *SessionClient {
	client := &SessionClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader("Content-Type", "application/json")

	return client
}
