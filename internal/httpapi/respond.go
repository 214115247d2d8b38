package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryManagement/internal/lending"
	"libraryManagement/repository"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// respondError maps the error taxonomy onto HTTP statuses. Every error is
// surfaced with a distinguishing status and message; nothing is swallowed.
func respondError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	var ve *repository.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, lending.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, lending.ErrBookUnavailable),
		errors.Is(err, lending.ErrDuplicateLoan),
		errors.Is(err, lending.ErrNoActiveLoan):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lending.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
