package domain

import "time"

// Room is a bookable resource; slots belong to exactly one room.
type Room struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
