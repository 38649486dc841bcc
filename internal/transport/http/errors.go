package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidPagination  = "invalid_pagination"
	codeRoomNameRequired   = "room_name_required"
	codeRoomNotFound       = "room_not_found"
	codeInvalidSlotRange   = "invalid_slot_range"
	codeInvalidTimestamp   = "invalid_timestamp"
	codeSlotNotFound       = "slot_not_found"
	codeSlotAlreadyBooked  = "slot_already_booked"
	codeSlotOnHold         = "slot_on_hold"
	codeSlotInPast         = "slot_in_past"
	codeHoldNotFound       = "hold_not_found"
	codeHoldExpired        = "hold_expired"
	codeHoldTokenRequired  = "hold_token_required"
	codeForbidden          = "forbidden"
	codeRateLimited        = "rate_limited"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
