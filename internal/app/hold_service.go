package app

import (
	"context"
	"time"

	"github.com/cimillas/room-reserve/internal/clock"
	"github.com/cimillas/room-reserve/internal/domain"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSlotForUpdate(ctx context.Context, slotID int64) (domain.Slot, error)
	GetBookingBySlot(ctx context.Context, slotID int64) (*domain.Booking, error)
	GetActiveHoldBySlot(ctx context.Context, slotID int64, now time.Time) (*domain.Hold, error)
	ReleaseLapsedHoldsForSlot(ctx context.Context, slotID int64, now time.Time) error
	CreateHold(ctx context.Context, hold domain.Hold) (int64, error)
	GetHoldByIDAndToken(ctx context.Context, holdID int64, token string) (*domain.Hold, error)
	MarkHoldReleased(ctx context.Context, holdID int64, releasedAt time.Time) error
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

type HoldService struct {
	repo    HoldRepository
	clock   clock.Clock
	holdTTL time.Duration
}

const defaultHoldTTL = 5 * time.Minute

func NewHoldService(repo HoldRepository, clk clock.Clock, opts ...HoldServiceOption) *HoldService {
	svc := &HoldService{
		repo:    repo,
		clock:   clk,
		holdTTL: defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type HoldServiceOption func(*HoldService)

// WithHoldTTL overrides the default TTL for new holds.
func WithHoldTTL(d time.Duration) HoldServiceOption {
	return func(s *HoldService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// CreateHold places a time-boxed claim on a slot. The whole check-then-insert
// sequence runs in one transaction with the slot row locked, and the insert is
// additionally backed by a partial unique index on active holds, so two
// concurrent callers can never both win.
func (s *HoldService) CreateHold(ctx context.Context, slotID int64) (domain.Hold, error) {
	if slotID <= 0 {
		return domain.Hold{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		slot, err := s.repo.GetSlotForUpdate(txCtx, slotID)
		if err != nil {
			return err
		}

		booking, err := s.repo.GetBookingBySlot(txCtx, slotID)
		if err != nil {
			return err
		}
		if booking != nil {
			return domain.ErrSlotAlreadyBooked
		}

		// Lapsed holds still satisfy the active-hold unique index until a
		// sweep runs; retire them here so they cannot block the insert.
		if err := s.repo.ReleaseLapsedHoldsForSlot(txCtx, slotID, now); err != nil {
			return err
		}

		active, err := s.repo.GetActiveHoldBySlot(txCtx, slotID, now)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrSlotOnHold
		}

		if !slot.StartAt.After(now) {
			return domain.ErrSlotInPast
		}

		hold := domain.Hold{
			SlotID:    slotID,
			Token:     newHoldToken(),
			CreatedAt: now,
			ExpiresAt: now.Add(s.holdTTL),
		}

		id, err := s.repo.CreateHold(txCtx, hold)
		if err != nil {
			return err
		}
		hold.ID = id

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}

	return result, nil
}

// ReleaseHold marks a hold released if (id, token) names an unreleased hold.
// Any miss, wrong token or already-released hold is a silent no-op; the caller
// cannot probe which case it was.
func (s *HoldService) ReleaseHold(ctx context.Context, holdID int64, token string) error {
	if holdID <= 0 || token == "" {
		return nil
	}

	now := s.clock.Now()
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldByIDAndToken(txCtx, holdID, token)
		if err != nil {
			return err
		}
		if hold == nil || hold.ReleasedAt != nil {
			return nil
		}
		return s.repo.MarkHoldReleased(txCtx, hold.ID, now)
	})
}

// SweepExpired retires every hold whose expiry has passed. It only touches
// already-lapsed holds, so it is safe to run concurrently with itself and
// with create/confirm, both of which re-check expiry on their own.
func (s *HoldService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.ReleaseExpired(ctx, s.clock.Now())
}
