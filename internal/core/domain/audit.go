package domain

import "time"

// AuthEventKind classifies an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventSignup         AuthEventKind = "signup"
	EventSignupConflict AuthEventKind = "signup_conflict"
	EventLoginSucceeded AuthEventKind = "login_succeeded"
	EventLoginFailed    AuthEventKind = "login_failed"
	EventLoginThrottled AuthEventKind = "login_throttled"
)

// AuthEvent is an audit record of an authentication outcome. It never carries
// a password or password hash.
type AuthEvent struct {
	Kind       AuthEventKind
	UserID     string // empty when the identity is unknown
	SubjectKey string // normalized login_id / email as submitted
	RequestID  string
	OccurredAt time.Time
}
