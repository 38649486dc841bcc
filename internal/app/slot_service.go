package app

import (
	"context"
	"time"

	"github.com/cimillas/room-reserve/internal/clock"
	"github.com/cimillas/room-reserve/internal/domain"
)

type SlotRepository interface {
	CreateSlot(ctx context.Context, slot domain.Slot) (int64, error)
	ListSlotsWithStatus(ctx context.Context, now time.Time, limit, offset int) ([]domain.SlotWithStatus, error)
	CountSlots(ctx context.Context) (int, error)
}

// SlotService exposes slots with their derived status and creates new slots
// for the internal API.
type SlotService struct {
	repo  SlotRepository
	clock clock.Clock
}

func NewSlotService(repo SlotRepository, clk clock.Clock) *SlotService {
	return &SlotService{
		repo:  repo,
		clock: clk,
	}
}

type SlotPage struct {
	Slots  []domain.SlotWithStatus
	Total  int
	Limit  int
	Offset int
}

func (s *SlotService) ListSlots(ctx context.Context, limit, offset int) (SlotPage, error) {
	now := s.clock.Now()
	slots, err := s.repo.ListSlotsWithStatus(ctx, now, limit, offset)
	if err != nil {
		return SlotPage{}, err
	}
	total, err := s.repo.CountSlots(ctx)
	if err != nil {
		return SlotPage{}, err
	}
	return SlotPage{Slots: slots, Total: total, Limit: limit, Offset: offset}, nil
}

type CreateSlotInput struct {
	RoomID  int64
	StartAt time.Time
	EndAt   time.Time
}

func (s *SlotService) CreateSlot(ctx context.Context, in CreateSlotInput) (domain.Slot, error) {
	if in.RoomID <= 0 {
		return domain.Slot{}, domain.ErrInvalidID
	}
	if !in.EndAt.After(in.StartAt) {
		return domain.Slot{}, domain.ErrInvalidSlotRange
	}

	slot := domain.Slot{
		RoomID:    in.RoomID,
		StartAt:   in.StartAt.UTC(),
		EndAt:     in.EndAt.UTC(),
		CreatedAt: s.clock.Now(),
	}

	id, err := s.repo.CreateSlot(ctx, slot)
	if err != nil {
		return domain.Slot{}, err
	}
	slot.ID = id
	return slot, nil
}
