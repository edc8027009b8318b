package session_client

import "net/http"

// AdminCredential scans an explicit cookie slice for the user session
// credential and returns its value. Pure function, no ambient storage: the
// caller decides where the cookies come from (the client's jar here, a header
// or token store elsewhere).
func AdminCredential(cookies []*http.Cookie) (string, bool) {
	for _, cookie := range cookies {
		if cookie.Name == AdminCookieName && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}
