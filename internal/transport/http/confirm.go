package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/cimillas/room-reserve/internal/app"
	"github.com/cimillas/room-reserve/internal/domain"
)

const (
	holdTokenHeader   = "X-Hold-Token"
	idempotencyHeader = "Idempotency-Key"
)

// HoldConfirmer is the minimal interface needed to confirm a hold.
type HoldConfirmer interface {
	ConfirmHold(ctx context.Context, in app.ConfirmHoldInput) (app.ConfirmHoldResult, error)
}

// HoldReleaser is the minimal interface needed to release a hold.
type HoldReleaser interface {
	ReleaseHold(ctx context.Context, holdID int64, token string) error
}

// HandleHoldItem routes POST /holds/{id}/confirm and DELETE /holds/{id}.
func HandleHoldItem(confirmer HoldConfirmer, releaser HoldReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holdID, confirm, ok := parseHoldItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		token := r.Header.Get(holdTokenHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, codeHoldTokenRequired, "x-hold-token header required")
			return
		}

		switch {
		case confirm && r.Method == http.MethodPost:
			confirmHold(w, r, confirmer, holdID, token)
		case !confirm && r.Method == http.MethodDelete:
			releaseHold(w, r, releaser, holdID, token)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func confirmHold(w http.ResponseWriter, r *http.Request, svc HoldConfirmer, holdID int64, token string) {
	res, err := svc.ConfirmHold(r.Context(), app.ConfirmHoldInput{
		HoldID:         holdID,
		Token:          token,
		IdempotencyKey: r.Header.Get(idempotencyHeader),
	})
	if err != nil {
		switch err {
		case domain.ErrHoldNotFound:
			writeError(w, http.StatusNotFound, codeHoldNotFound, err.Error())
		case domain.ErrHoldExpired:
			writeError(w, http.StatusGone, codeHoldExpired, err.Error())
		case domain.ErrSlotAlreadyBooked:
			writeError(w, http.StatusConflict, codeSlotAlreadyBooked, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	// Replayed responses are written byte for byte from the stored record.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

func releaseHold(w http.ResponseWriter, r *http.Request, svc HoldReleaser, holdID int64, token string) {
	if err := svc.ReleaseHold(r.Context(), holdID, token); err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseHoldItemPath(path string) (holdID int64, confirm bool, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "holds" {
		return 0, false, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false, false
	}
	if len(parts) == 3 {
		if parts[2] != "confirm" {
			return 0, false, false
		}
		return id, true, true
	}
	return id, false, true
}
