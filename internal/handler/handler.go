package handler

import (
	"encoding/json"
	"net/http"

	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any, message ...string) {
	resp := APIResponse{
		Success: true,
		Data:    data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	writeJSON(w, status, resp)
}

// * writeFailure answers with the error's user-facing title in the {success, error} shape
func writeFailure(w http.ResponseWriter, err error) {
	resp := errors.NewHTTPErrorResponse(err)
	logger.Error("%v", err)
	writeJSON(w, resp.Status, APIResponse{Success: false, Error: resp.Error})
}
