package server

import (
	"encoding/json"
	"net/http"

	"github.com/germanamz/llmgate/pkg/apperr"
)

// kindStatus maps error kinds to response statuses.
var kindStatus = map[apperr.Kind]int{
	apperr.InvalidInput: http.StatusBadRequest,
	apperr.Backend:      http.StatusInternalServerError,
	apperr.Internal:     http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for err's kind.
func StatusFor(err error) int {
	if status, ok := kindStatus[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
