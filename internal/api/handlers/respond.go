package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brfin/fiiradar/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusForError maps pipeline errors to HTTP responses. Upstream source
// failures are gateway errors, not server errors.
func statusForError(err error) (int, string) {
	var ferr *contracts.FetchError
	if errors.As(err, &ferr) {
		if ferr.Kind == contracts.FetchTimeout {
			return http.StatusGatewayTimeout, "upstream source timed out"
		}
		return http.StatusBadGateway, "failed to fetch source data"
	}

	var verr *contracts.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadGateway, "source data looks incomplete"
	}

	if errors.Is(err, contracts.ErrFundNotFound) {
		return http.StatusNotFound, "fund not found"
	}

	return http.StatusInternalServerError, "internal server error"
}
