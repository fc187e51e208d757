package server

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// mapWorkbenchError maps a workbench error to HTTP status and error code.
func mapWorkbenchError(err error) (int, string) {
	switch {
	case errors.Is(err, workbench.ErrInvalidOrder):
		return http.StatusBadRequest, "invalid_order"
	case errors.Is(err, workbench.ErrUnknownKind):
		return http.StatusBadRequest, "invalid_type"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Code:    status,
		Message: message,
	})
}

func writeWorkbenchError(w http.ResponseWriter, err error) {
	status, code := mapWorkbenchError(err)
	writeError(w, status, code, err.Error())
}
