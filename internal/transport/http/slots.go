package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cimillas/room-reserve/internal/app"
)

// SlotLister is the minimal interface needed to list slots with status.
type SlotLister interface {
	ListSlots(ctx context.Context, limit, offset int) (app.SlotPage, error)
}

// HandleListSlots returns an HTTP handler for the public slot listing.
func HandleListSlots(svc SlotLister) http.HandlerFunc {
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

		page, err := svc.ListSlots(r.Context(), limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := slotListResponse{
			Slots:  make([]slotResponse, 0, len(page.Slots)),
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		}
		for _, s := range page.Slots {
			resp.Slots = append(resp.Slots, slotResponse{
				ID:            s.ID,
				RoomID:        s.RoomID,
				StartAt:       s.StartAt,
				EndAt:         s.EndAt,
				Status:        string(s.Status),
				HoldExpiresAt: s.HoldExpiresAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type slotResponse struct {
	ID            int64      `json:"id"`
	RoomID        int64      `json:"room_id"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         time.Time  `json:"end_at"`
	Status        string     `json:"status"`
	HoldExpiresAt *time.Time `json:"hold_expires_at"`
}

type slotListResponse struct {
	Slots  []slotResponse `json:"slots"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		limit = min(n, maxPageLimit)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
		offset = n
	}
	return limit, offset, nil
}
