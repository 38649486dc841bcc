package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomNameRequired  = errors.New("room name required")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrInvalidSlotRange  = errors.New("end_at must be after start_at")
	ErrSlotAlreadyBooked = errors.New("slot already booked")
	ErrSlotOnHold        = errors.New("slot currently on hold")
	ErrSlotInPast        = errors.New("slot is in the past or has already started")
	ErrHoldNotFound      = errors.New("hold not found")
	ErrHoldExpired       = errors.New("hold expired")
	ErrInvalidID         = errors.New("invalid id")
)
