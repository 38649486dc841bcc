package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/room-reserve/internal/domain"
)

// HoldCreator is the minimal interface needed to create a hold.
type HoldCreator interface {
	CreateHold(ctx context.Context, slotID int64) (domain.Hold, error)
}

// HandleCreateHold returns an HTTP handler for placing a hold on a slot.
func HandleCreateHold(svc HoldCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createHoldRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SlotID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "slot_id must be a positive integer")
			return
		}

		hold, err := svc.CreateHold(r.Context(), req.SlotID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrSlotNotFound:
				writeError(w, http.StatusNotFound, codeSlotNotFound, err.Error())
			case domain.ErrSlotAlreadyBooked:
				writeError(w, http.StatusConflict, codeSlotAlreadyBooked, err.Error())
			case domain.ErrSlotOnHold:
				writeError(w, http.StatusConflict, codeSlotOnHold, err.Error())
			case domain.ErrSlotInPast:
				writeError(w, http.StatusConflict, codeSlotInPast, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := createHoldResponse{
			ID:        hold.ID,
			HoldToken: hold.Token,
			ExpiresAt: hold.ExpiresAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createHoldRequest struct {
	SlotID int64 `json:"slot_id"`
}

type createHoldResponse struct {
	ID        int64     `json:"id"`
	HoldToken string    `json:"hold_token"`
	ExpiresAt time.Time `json:"expires_at"`
}
