package app

import (
	"context"
	"strings"

	"github.com/cimillas/room-reserve/internal/clock"
	"github.com/cimillas/room-reserve/internal/domain"
)

type RoomRepository interface {
	CreateRoom(ctx context.Context, room domain.Room) (int64, error)
	ListRooms(ctx context.Context, limit, offset int) ([]domain.Room, error)
	CountRooms(ctx context.Context) (int, error)
}

type RoomService struct {
	repo  RoomRepository
	clock clock.Clock
}

func NewRoomService(repo RoomRepository, clk clock.Clock) *RoomService {
	return &RoomService{
		repo:  repo,
		clock: clk,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, name string) (domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Room{}, domain.ErrRoomNameRequired
	}

	room := domain.Room{
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	id, err := s.repo.CreateRoom(ctx, room)
	if err != nil {
		return domain.Room{}, err
	}
	room.ID = id
	return room, nil
}

type RoomPage struct {
	Rooms  []domain.Room
	Total  int
	Limit  int
	Offset int
}

func (s *RoomService) ListRooms(ctx context.Context, limit, offset int) (RoomPage, error) {
	rooms, err := s.repo.ListRooms(ctx, limit, offset)
	if err != nil {
		return RoomPage{}, err
	}
	total, err := s.repo.CountRooms(ctx)
	if err != nil {
		return RoomPage{}, err
	}
	return RoomPage{Rooms: rooms, Total: total, Limit: limit, Offset: offset}, nil
}
