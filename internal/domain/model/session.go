package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a renewable proof of login tied to a cookie. The identity is a
// 128-bit value from the crypto/rand-backed UUID generator, so it is never
// sequential or predictable.
type Session struct {
	ID      uuid.UUID `json:"id"`
	UserID  int64     `json:"user_id"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NewSession mints a session for the given account with both timestamps set
// to now.
func NewSession(userID int64, now time.Time) *Session {
	return &Session{
		ID:      uuid.New(),
		UserID:  userID,
		Created: now,
		Updated: now,
	}
}
