package app

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/room-reserve/internal/clock"
	"github.com/cimillas/room-reserve/internal/domain"
)

type fakeRoomRepo struct {
	rooms  []domain.Room
	nextID int64
}

func (r *fakeRoomRepo) CreateRoom(_ context.Context, room domain.Room) (int64, error) {
	r.nextID++
	room.ID = r.nextID
	r.rooms = append(r.rooms, room)
	return room.ID, nil
}

func (r *fakeRoomRepo) ListRooms(_ context.Context, limit, offset int) ([]domain.Room, error) {
	if offset >= len(r.rooms) {
		return nil, nil
	}
	end := min(offset+limit, len(r.rooms))
	return r.rooms[offset:end], nil
}

func (r *fakeRoomRepo) CountRooms(context.Context) (int, error) {
	return len(r.rooms), nil
}

func TestRoomService_CreateRoom(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("trims the name", func(t *testing.T) {
		t.Parallel()
		repo := &fakeRoomRepo{}
		svc := NewRoomService(repo, clock.NewFixed(now))

		room, err := svc.CreateRoom(context.Background(), "  Sala 1  ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if room.Name != "Sala 1" {
			t.Fatalf("expected trimmed name, got %q", room.Name)
		}
		if room.ID == 0 {
			t.Fatal("expected room ID to be set")
		}
	})

	t.Run("rejects blank names", func(t *testing.T) {
		t.Parallel()
		svc := NewRoomService(&fakeRoomRepo{}, clock.NewFixed(now))

		for _, name := range []string{"", "   "} {
			_, err := svc.CreateRoom(context.Background(), name)
			if err != domain.ErrRoomNameRequired {
				t.Fatalf("expected ErrRoomNameRequired for %q, got %v", name, err)
			}
		}
	})
}

func TestRoomService_ListRooms(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRoomRepo{}
	svc := NewRoomService(repo, clock.NewFixed(now))

	for _, name := range []string{"Sala 1", "Sala 2", "Sala 3"} {
		if _, err := svc.CreateRoom(context.Background(), name); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}

	page, err := svc.ListRooms(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Total != 3 || len(page.Rooms) != 2 {
		t.Fatalf("expected total 3 with 2 on page, got %d/%d", page.Total, len(page.Rooms))
	}
	if page.Rooms[0].Name != "Sala 1" {
		t.Fatalf("unexpected first room %q", page.Rooms[0].Name)
	}
}
