package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/room-reserve/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	const stmt = `
INSERT INTO rooms (name, created_at)
VALUES ($1, $2)
RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, stmt, room.Name, room.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create room: %w", err)
	}
	return id, nil
}

func (r *RoomRepository) ListRooms(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	const query = `
SELECT id, name, created_at
FROM rooms
ORDER BY id ASC
LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rooms: %w", rows.Err())
	}
	return rooms, nil
}

func (r *RoomRepository) CountRooms(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return total, nil
}
