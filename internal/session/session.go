// Package session supplies the current signed-in user to the rest of the
// system. The user id is an opaque identifier (the account email); how it
// was authenticated is not this system's concern.
package session

// Provider reports the current signed-in user. An empty id means nobody
// is signed in, which suppresses all remote operations downstream.
type Provider interface {
	CurrentUser() string
}

var _ Provider = Static{}

// Static is a Provider fixed at construction, fed from configuration.
type Static struct {
	UserID string
}

func (s Static) CurrentUser() string {
	return s.UserID
}
