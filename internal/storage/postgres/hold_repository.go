package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/room-reserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetSlotForUpdate locks the slot row for the rest of the transaction, which
// serializes concurrent hold attempts on the same slot.
func (r *HoldRepository) GetSlotForUpdate(ctx context.Context, slotID int64) (domain.Slot, error) {
	const query = `SELECT id, room_id, start_at, end_at, created_at FROM slots WHERE id = $1 FOR UPDATE`

	var s domain.Slot
	err := r.queryRow(ctx, query, slotID).Scan(&s.ID, &s.RoomID, &s.StartAt, &s.EndAt, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Slot{}, domain.ErrSlotNotFound
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

func (r *HoldRepository) GetBookingBySlot(ctx context.Context, slotID int64) (*domain.Booking, error) {
	const query = `SELECT id, slot_id, created_at FROM bookings WHERE slot_id = $1`

	var b domain.Booking
	err := r.queryRow(ctx, query, slotID).Scan(&b.ID, &b.SlotID, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by slot: %w", err)
	}
	return &b, nil
}

func (r *HoldRepository) GetActiveHoldBySlot(ctx context.Context, slotID int64, now time.Time) (*domain.Hold, error) {
	const query = `
SELECT id, slot_id, hold_token, created_at, expires_at, released_at
FROM holds
WHERE slot_id = $1 AND released_at IS NULL AND expires_at > $2`

	var h domain.Hold
	err := r.queryRow(ctx, query, slotID, now).
		Scan(&h.ID, &h.SlotID, &h.Token, &h.CreatedAt, &h.ExpiresAt, &h.ReleasedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get active hold: %w", err)
	}
	return &h, nil
}

// ReleaseLapsedHoldsForSlot retires expired-but-unreleased holds on one slot so
// they stop occupying the active-hold unique index.
func (r *HoldRepository) ReleaseLapsedHoldsForSlot(ctx context.Context, slotID int64, now time.Time) error {
	const stmt = `
UPDATE holds
SET released_at = $2
WHERE slot_id = $1 AND released_at IS NULL AND expires_at <= $2`

	if _, err := r.exec(ctx, stmt, slotID, now); err != nil {
		return fmt.Errorf("release lapsed holds: %w", err)
	}
	return nil
}

func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) (int64, error) {
	const stmt = `
INSERT INTO holds (slot_id, hold_token, created_at, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt, hold.SlotID, hold.Token, hold.CreatedAt, hold.ExpiresAt).Scan(&id)
	if err != nil {
		// holds_active_slot_key rejected a concurrent insert for this slot.
		if isUniqueViolation(err) {
			return 0, domain.ErrSlotOnHold
		}
		return 0, fmt.Errorf("create hold: %w", err)
	}
	return id, nil
}

func (r *HoldRepository) GetHoldByIDAndToken(ctx context.Context, holdID int64, token string) (*domain.Hold, error) {
	const query = `
SELECT id, slot_id, hold_token, created_at, expires_at, released_at
FROM holds
WHERE id = $1 AND hold_token = $2`

	var h domain.Hold
	err := r.queryRow(ctx, query, holdID, token).
		Scan(&h.ID, &h.SlotID, &h.Token, &h.CreatedAt, &h.ExpiresAt, &h.ReleasedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold by token: %w", err)
	}
	return &h, nil
}

// MarkHoldReleased is a no-op for holds already released; callers rely on that
// for idempotent release.
func (r *HoldRepository) MarkHoldReleased(ctx context.Context, holdID int64, releasedAt time.Time) error {
	const stmt = `UPDATE holds SET released_at = $2 WHERE id = $1 AND released_at IS NULL`

	if _, err := r.exec(ctx, stmt, holdID, releasedAt); err != nil {
		return fmt.Errorf("mark hold released: %w", err)
	}
	return nil
}

func (r *HoldRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `
UPDATE holds
SET released_at = $1
WHERE released_at IS NULL AND expires_at <= $1`

	tag, err := r.exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("release expired holds: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HoldRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *HoldRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
