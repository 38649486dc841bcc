package domain

import "time"

// Hold is a time-boxed claim on one slot. The token is an opaque capability:
// confirming or releasing requires both the hold ID and the exact token.
// Holds are never deleted; release sets ReleasedAt so the row stays for audit.
type Hold struct {
	ID         int64
	SlotID     int64
	Token      string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ReleasedAt *time.Time
}

// Active reports whether the hold still blocks the slot at the given instant.
func (h Hold) Active(now time.Time) bool {
	return h.ReleasedAt == nil && h.ExpiresAt.After(now)
}
