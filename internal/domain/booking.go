package domain

import "time"

// Booking is a permanent reservation of one slot. A slot can have at most one
// booking ever, enforced by a unique constraint on slot_id.
type Booking struct {
	ID        int64
	SlotID    int64
	CreatedAt time.Time
}
