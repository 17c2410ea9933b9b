package model

// SessionKey is the fixed key the bearer token is stored under
const SessionKey = "notionToken"

// Session carries the Notion bearer token of the local user. The token is
// forwarded verbatim and never validated locally.
type Session struct {
	Token string `json:"notionToken" masq:"secret"`
}

// NewSession keeps token exactly as entered
func NewSession(token string) *Session {
	return &Session{Token: token}
}

// IsAuthenticated reports whether a token is present
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}
