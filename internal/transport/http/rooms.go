package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/room-reserve/internal/app"
)

// RoomLister is the minimal interface needed to list rooms.
type RoomLister interface {
	ListRooms(ctx context.Context, limit, offset int) (app.RoomPage, error)
}

// HandleListRooms returns an HTTP handler for the public room listing.
func HandleListRooms(svc RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		limit, offset, err := parsePagination(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidPagination, err.Error())
			return
		}

		page, err := svc.ListRooms(r.Context(), limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := roomListResponse{
			Rooms:  make([]roomResponse, 0, len(page.Rooms)),
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		}
		for _, room := range page.Rooms {
			resp.Rooms = append(resp.Rooms, roomResponse{ID: room.ID, Name: room.Name})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type roomResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type roomListResponse struct {
	Rooms  []roomResponse `json:"rooms"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
