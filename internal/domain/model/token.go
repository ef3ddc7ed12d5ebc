package model

import (
	"time"

	"github.com/google/uuid"
)

// Token is a long-lived credential for machine clients. Tokens never expire
// and are never renewed; they disappear only through explicit revocation.
type Token struct {
	ID      uuid.UUID `json:"id"`
	UserID  int64     `json:"user_id"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

func NewToken(userID int64, now time.Time) *Token {
	return &Token{
		ID:      uuid.New(),
		UserID:  userID,
		Created: now,
		Updated: now,
	}
}
