package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/room-reserve/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) CreateSlot(ctx context.Context, slot domain.Slot) (int64, error) {
	const stmt = `
INSERT INTO slots (room_id, start_at, end_at, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, stmt, slot.RoomID, slot.StartAt, slot.EndAt, slot.CreatedAt).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrRoomNotFound
		}
		return 0, fmt.Errorf("create slot: %w", err)
	}
	return id, nil
}

// ListSlotsWithStatus derives each slot's status in a single query. The
// partial unique index guarantees at most one unreleased hold per slot, so a
// plain join is enough to pick up the active one.
func (r *SlotRepository) ListSlotsWithStatus(ctx context.Context, now time.Time, limit, offset int) ([]domain.SlotWithStatus, error) {
	const query = `
SELECT s.id, s.room_id, s.start_at, s.end_at, s.created_at,
       b.id IS NOT NULL AS booked,
       h.expires_at
FROM slots s
LEFT JOIN bookings b ON b.slot_id = s.id
LEFT JOIN holds h ON h.slot_id = s.id AND h.released_at IS NULL AND h.expires_at > $1
ORDER BY s.start_at ASC, s.id ASC
LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.SlotWithStatus
	for rows.Next() {
		var (
			s             domain.SlotWithStatus
			booked        bool
			holdExpiresAt *time.Time
		)
		if err := rows.Scan(&s.ID, &s.RoomID, &s.StartAt, &s.EndAt, &s.CreatedAt, &booked, &holdExpiresAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		switch {
		case booked:
			s.Status = domain.SlotStatusBooked
		case holdExpiresAt != nil:
			s.Status = domain.SlotStatusHeld
			s.HoldExpiresAt = holdExpiresAt
		default:
			s.Status = domain.SlotStatusAvailable
		}
		slots = append(slots, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slots: %w", rows.Err())
	}
	return slots, nil
}

func (r *SlotRepository) CountSlots(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM slots`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return total, nil
}
