package session_client

import "fmt"

const (
	// Base path for all session operations
	SessionEndpoint = "/api/session"

	// AdminCookieName is the cookie the server issues to identify a user
	// session; the session creator's value doubles as the admin credential.
	AdminCookieName = "userSessionId"
)

func sessionPath(sessionID string) string {
	return fmt.Sprintf("%s/%s", SessionEndpoint, sessionID)
}

func questionsPath(sessionID string) string {
	return fmt.Sprintf("%s/%s/questions", SessionEndpoint, sessionID)
}

func votePath(sessionID, questionID string) string {
	return fmt.Sprintf("%s/%s/questions/%s/vote", SessionEndpoint, sessionID, questionID)
}

func checkAdminPath(sessionID string) string {
	return fmt.Sprintf("%s/%s/check-admin", SessionEndpoint, sessionID)
}
