package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cimillas/room-reserve/internal/clock"
	"github.com/cimillas/room-reserve/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindIdempotencyRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	CreateIdempotencyRecord(ctx context.Context, rec domain.IdempotencyRecord) error
	GetHoldByIDAndToken(ctx context.Context, holdID int64, token string) (*domain.Hold, error)
	CreateBooking(ctx context.Context, booking domain.Booking) (int64, error)
	MarkHoldReleased(ctx context.Context, holdID int64, releasedAt time.Time) error
}

type BookingService struct {
	repo  BookingRepository
	clock clock.Clock
}

func NewBookingService(repo BookingRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:  repo,
		clock: clk,
	}
}

type ConfirmHoldInput struct {
	HoldID         int64
	Token          string
	IdempotencyKey string
}

// ConfirmHoldResult carries the exact status and body to send. Replayed means
// the response was read back from an idempotency record and no side effect ran.
type ConfirmHoldResult struct {
	Status   int
	Body     []byte
	Replayed bool
}

type confirmResponse struct {
	BookingCreated bool `json:"booking_created"`
}

// ConfirmHold turns an active hold into a booking and releases the hold, all
// in one transaction. With an idempotency key, a stored response is replayed
// verbatim and the fresh response is recorded in the same transaction as the
// booking write, so a retry can never re-run the side effect.
func (s *BookingService) ConfirmHold(ctx context.Context, in ConfirmHoldInput) (ConfirmHoldResult, error) {
	if in.HoldID <= 0 || in.Token == "" {
		return ConfirmHoldResult{}, domain.ErrHoldNotFound
	}

	now := s.clock.Now()
	var result ConfirmHoldResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if in.IdempotencyKey != "" {
			rec, err := s.repo.FindIdempotencyRecord(txCtx, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if rec != nil {
				result = ConfirmHoldResult{Status: rec.Status, Body: rec.ResponseBody, Replayed: true}
				return nil
			}
		}

		// A wrong token and a missing hold are the same error on purpose:
		// a distinguishable response would let tokens be probed.
		hold, err := s.repo.GetHoldByIDAndToken(txCtx, in.HoldID, in.Token)
		if err != nil {
			return err
		}
		if hold == nil {
			return domain.ErrHoldNotFound
		}
		if !hold.Active(now) {
			return domain.ErrHoldExpired
		}

		// A unique violation here means a concurrent confirm already booked
		// the slot; the repo surfaces ErrSlotAlreadyBooked and this hold is
		// left untouched so it lapses on its own.
		if _, err := s.repo.CreateBooking(txCtx, domain.Booking{SlotID: hold.SlotID, CreatedAt: now}); err != nil {
			return err
		}

		if err := s.repo.MarkHoldReleased(txCtx, hold.ID, now); err != nil {
			return err
		}

		body, err := json.Marshal(confirmResponse{BookingCreated: true})
		if err != nil {
			return fmt.Errorf("marshal confirm response: %w", err)
		}

		if in.IdempotencyKey != "" {
			rec := domain.IdempotencyRecord{
				Key:          in.IdempotencyKey,
				Method:       http.MethodPost,
				Path:         fmt.Sprintf("/holds/%d/confirm", in.HoldID),
				CreatedAt:    now,
				Status:       http.StatusOK,
				ResponseBody: body,
			}
			if err := s.repo.CreateIdempotencyRecord(txCtx, rec); err != nil {
				return err
			}
		}

		result = ConfirmHoldResult{Status: http.StatusOK, Body: body}
		return nil
	})
	if err != nil {
		return ConfirmHoldResult{}, err
	}
	return result, nil
}
