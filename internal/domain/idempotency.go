package domain

import "time"

// IdempotencyRecord maps a client-supplied key to the response of the first
// request processed under it. Keys are unique globally, not per endpoint.
// Records are written once and read-only afterwards.
type IdempotencyRecord struct {
	ID           int64
	Key          string
	Method       string
	Path         string
	CreatedAt    time.Time
	Status       int
	ResponseBody []byte
}
