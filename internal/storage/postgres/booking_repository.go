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

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) FindIdempotencyRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	const query = `
SELECT id, key, method, path, created_at, status, response_body
FROM idempotency_keys
WHERE key = $1`

	var rec domain.IdempotencyRecord
	err := r.queryRow(ctx, query, key).
		Scan(&rec.ID, &rec.Key, &rec.Method, &rec.Path, &rec.CreatedAt, &rec.Status, &rec.ResponseBody)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find idempotency record: %w", err)
	}
	return &rec, nil
}

func (r *BookingRepository) CreateIdempotencyRecord(ctx context.Context, rec domain.IdempotencyRecord) error {
	const stmt = `
INSERT INTO idempotency_keys (key, method, path, created_at, status, response_body)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt, rec.Key, rec.Method, rec.Path, rec.CreatedAt, rec.Status, rec.ResponseBody)
	if err != nil {
		return fmt.Errorf("create idempotency record: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetHoldByIDAndToken(ctx context.Context, holdID int64, token string) (*domain.Hold, error) {
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

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) (int64, error) {
	const stmt = `
INSERT INTO bookings (slot_id, created_at)
VALUES ($1, $2)
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt, booking.SlotID, booking.CreatedAt).Scan(&id)
	if err != nil {
		// bookings.slot_id is unique: a concurrent confirm already won.
		if isUniqueViolation(err) {
			return 0, domain.ErrSlotAlreadyBooked
		}
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return id, nil
}

func (r *BookingRepository) MarkHoldReleased(ctx context.Context, holdID int64, releasedAt time.Time) error {
	const stmt = `UPDATE holds SET released_at = $2 WHERE id = $1 AND released_at IS NULL`

	if _, err := r.exec(ctx, stmt, holdID, releasedAt); err != nil {
		return fmt.Errorf("mark hold released: %w", err)
	}
	return nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
