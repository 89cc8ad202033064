package domain

// Session is the persisted authentication state.
// Token and IsLoggedIn are stored as two separate keys under one namespace.
type Session struct {
	// Token is the bearer token returned by the login endpoint
	Token string `json:"token,omitempty"`

	// IsLoggedIn gates the authenticated regions of the client
	IsLoggedIn bool `json:"is_logged_in"`
}

// IsEmpty returns true if nothing has been stored yet.
func (s Session) IsEmpty() bool {
	return s.Token == "" && !s.IsLoggedIn
}

// Inconsistent reports the state where the flag claims a login but no token
// is present. Callers must force a re-login.
func (s Session) Inconsistent() bool {
	return s.IsLoggedIn && s.Token == ""
}

// SessionStatus is the outcome of checking a Session.
type SessionStatus int

const (
	StatusLoggedOut SessionStatus = iota
	StatusLoggedIn
	StatusInconsistent
	StatusExpired
)

// String returns a human-readable representation of the status.
func (s SessionStatus) String() string {
	switch s {
	case StatusLoggedOut:
		return "logged out"
	case StatusLoggedIn:
		return "logged in"
	case StatusInconsistent:
		return "inconsistent (re-login required)"
	case StatusExpired:
		return "expired (re-login required)"
	default:
		return "unknown"
	}
}
