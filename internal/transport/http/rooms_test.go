package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cimillas/room-reserve/internal/app"
	"github.com/cimillas/room-reserve/internal/domain"
)

type stubRoomLister struct {
	page app.RoomPage
	err  error

	gotLimit  int
	gotOffset int
}

func (s *stubRoomLister) ListRooms(_ context.Context, limit, offset int) (app.RoomPage, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	if s.err != nil {
		return app.RoomPage{}, s.err
	}
	page := s.page
	page.Limit = limit
	page.Offset = offset
	return page, nil
}

func TestHandleListRooms(t *testing.T) {
	t.Parallel()

	t.Run("returns rooms with totals", func(t *testing.T) {
		t.Parallel()
		stub := &stubRoomLister{page: app.RoomPage{
			Rooms: []domain.Room{{ID: 1, Name: "Sala 1"}, {ID: 2, Name: "Sala 2"}},
			Total: 2,
		}}

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		rec := httptest.NewRecorder()
		HandleListRooms(stub).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Rooms []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"rooms"`
			Total int `json:"total"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Total != 2 || len(resp.Rooms) != 2 {
			t.Fatalf("unexpected response %+v", resp)
		}
		if resp.Rooms[0].Name != "Sala 1" {
			t.Fatalf("unexpected first room %q", resp.Rooms[0].Name)
		}
	})

	t.Run("forwards pagination", func(t *testing.T) {
		t.Parallel()
		stub := &stubRoomLister{}

		req := httptest.NewRequest(http.MethodGet, "/rooms?limit=5&offset=10", nil)
		rec := httptest.NewRecorder()
		HandleListRooms(stub).ServeHTTP(rec, req)

		if stub.gotLimit != 5 || stub.gotOffset != 10 {
			t.Fatalf("expected limit 5 offset 10, got %d/%d", stub.gotLimit, stub.gotOffset)
		}
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/rooms?limit=abc", nil)
		rec := httptest.NewRecorder()
		HandleListRooms(&stubRoomLister{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/rooms", nil)
		rec := httptest.NewRecorder()
		HandleListRooms(&stubRoomLister{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("repository failure maps to 500", func(t *testing.T) {
		t.Parallel()
		stub := &stubRoomLister{err: errors.New("boom")}

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		rec := httptest.NewRecorder()
		HandleListRooms(stub).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
