package model

// Keys under which the session pair is persisted in the local key-value store.
const (
	TokenKey  = "userToken"
	UserIDKey = "userId"
)

// Session is the bearer token and user id of the logged-in user.
// The zero value is the anonymous session.
type Session struct {
	Token  string `json:"userToken,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// IsAuthenticated reports whether a token is held.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// State names the two session states.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// State returns the current state of s.
func (s Session) State() State {
	if s.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}
