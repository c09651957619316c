package util

import (
	"github.com/google/uuid"
)

// NewShareToken returns a fresh share link token. UUIDv4 gives 122 bits of
// entropy which is enough to treat the token as a capability, and the
// unique index on share_links catches the astronomically unlikely collision.
func NewShareToken() string {
	return uuid.NewString()
}
