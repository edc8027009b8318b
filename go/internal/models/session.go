package models

// Question represents a single audience question within a voting session.
// Votes always equals len(Voters); the server enforces this and clients must
// never derive one from the other locally.
type Question struct {
	ID        string   `json:"id"`
	SessionID string   `json:"session_id"`
	Text      string   `json:"text"`
	Votes     int      `json:"votes"`
	Voters    []string `json:"voters"`
}

// SessionData is the full server-side state of one voting session.
type SessionData struct {
	SessionID   string     `json:"sessionId"`
	AdminUserID string     `json:"adminUserId"`
	IsActive    bool       `json:"isActive"`
	Questions   []Question `json:"questions"`
}

// QuestionSubmission is the request body for submitting a new question.
type QuestionSubmission struct {
	Text string `json:"text"`
}

// SessionCreated is the response body for session creation.
type SessionCreated struct {
	SessionID string `json:"sessionId"`
}

// AdminStatus is the response body of the authoritative admin check.
type AdminStatus struct {
	IsAdmin bool `json:"isAdmin"`
}
