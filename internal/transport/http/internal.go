package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/room-reserve/internal/app"
	"github.com/cimillas/room-reserve/internal/domain"
)

const internalKeyHeader = "X-API-Key"

// RequireInternalKey gates the internal API behind a shared key. When no key
// is configured the routes stay open (local development).
func RequireInternalKey(key string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key != "" && r.Header.Get(internalKeyHeader) != key {
			writeError(w, http.StatusForbidden, codeForbidden, "internal access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoomCreator is the minimal interface needed to create a room.
type RoomCreator interface {
	CreateRoom(ctx context.Context, name string) (domain.Room, error)
}

// HandleCreateRoom returns an HTTP handler for the internal room creation endpoint.
func HandleCreateRoom(svc RoomCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createRoomRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		room, err := svc.CreateRoom(r.Context(), req.Name)
		if err != nil {
			switch err {
			case domain.ErrRoomNameRequired:
				writeError(w, http.StatusBadRequest, codeRoomNameRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createdResponse{ID: room.ID})
	}
}

// SlotCreator is the minimal interface needed to create a slot.
type SlotCreator interface {
	CreateSlot(ctx context.Context, in app.CreateSlotInput) (domain.Slot, error)
}

// HandleCreateSlot returns an HTTP handler for the internal slot creation endpoint.
func HandleCreateSlot(svc SlotCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createSlotRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.RoomID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "room_id must be a positive integer")
			return
		}
		startAt, err := time.Parse(time.RFC3339, req.StartAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "start_at must be an RFC3339 timestamp")
			return
		}
		endAt, err := time.Parse(time.RFC3339, req.EndAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "end_at must be an RFC3339 timestamp")
			return
		}

		slot, err := svc.CreateSlot(r.Context(), app.CreateSlotInput{
			RoomID:  req.RoomID,
			StartAt: startAt,
			EndAt:   endAt,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrInvalidSlotRange:
				writeError(w, http.StatusBadRequest, codeInvalidSlotRange, err.Error())
			case domain.ErrRoomNotFound:
				writeError(w, http.StatusNotFound, codeRoomNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createdResponse{ID: slot.ID})
	}
}

// ExpiredSweeper is the minimal interface needed to sweep expired holds.
type ExpiredSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// HandleSweepExpired returns an HTTP handler for the internal expiry sweep trigger.
func HandleSweepExpired(svc ExpiredSweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		updated, err := svc.SweepExpired(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sweepResponse{Updated: updated})
	}
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type createSlotRequest struct {
	RoomID  int64  `json:"room_id"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type sweepResponse struct {
	Updated int64 `json:"updated"`
}
