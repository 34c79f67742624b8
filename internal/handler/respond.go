package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BaGreal2/kino-server/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// errorsIsClient reports whether err is the caller's fault and not worth
// logging server-side.
func errorsIsClient(err error) bool {
	return errors.Is(err, store.ErrInvalidInput) ||
		errors.Is(err, store.ErrInvalidRating) ||
		errors.Is(err, store.ErrConflict) ||
		errors.Is(err, store.ErrNotFound)
}

// storeError maps store failures onto the HTTP taxonomy: invalid input 400,
// conflicts 409, missing or foreign-owned rows 404, everything else 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, store.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Entry not found")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
