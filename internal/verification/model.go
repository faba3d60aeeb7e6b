package verification

import "time"

// State is the logical lifecycle state of a verification token.
// Expired is computed from the clock at read time, never stored.
type State int

const (
	StatePending State = iota
	StateConsumed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConsumed:
		return "consumed"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Token is a single-use email verification record. Once IsUsed is set the
// row is immutable and kept as an audit trail of the consumed token.
type Token struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	IsUsed    bool
	CreatedAt time.Time
}

// StateAt computes the token state at the given instant. A used token is
// consumed no matter the clock; only unused tokens can be expired.
func (t *Token) StateAt(now time.Time) State {
	if t.IsUsed {
		return StateConsumed
	}
	if now.After(t.ExpiresAt) {
		return StateExpired
	}
	return StatePending
}
