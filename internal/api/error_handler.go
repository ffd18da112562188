package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/logger"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	var body errorBody
	body.Error.Code = appErr.Code
	body.Error.Message = appErr.Message

	w.Header().Set("Content-Type", "application/json")
	if appErr.Code == errors.ErrCodeStorageUnavailable || appErr.Code == errors.ErrCodeRateLimited {
		w.Header().Set("Retry-After", "1")
	}
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write error body: %v", err)
	}
}
