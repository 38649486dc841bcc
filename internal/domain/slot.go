package domain

import "time"

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusHeld      SlotStatus = "held"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot is a bookable interval [StartAt, EndAt) for one room.
type Slot struct {
	ID        int64
	RoomID    int64
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
}

// SlotWithStatus carries a slot plus its derived status. Status is never
// stored; it is computed from booking and active-hold rows at read time.
type SlotWithStatus struct {
	Slot
	Status        SlotStatus
	HoldExpiresAt *time.Time
}
