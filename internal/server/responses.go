package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, exchange.ErrInvalidRequest),
		errors.Is(err, ErrUnknownContractor),
		errors.Is(err, ErrCurrencyMismatch),
		errors.Is(err, ErrUnknownPayment),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, exchange.ErrZeroAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
