package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-locker/internal/app"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/service"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/models"
)

// retryAfterSeconds is sent with every 503 response.
const retryAfterSeconds = "1"

type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	service.ErrNotFound:             {status: http.StatusNotFound, message: app.MsgPasswordNotFound},
	service.ErrAuthenticationFailed: {status: http.StatusUnauthorized, message: app.MsgAuthenticationFailed},
	service.ErrInvalidInput:         {status: http.StatusBadRequest, message: app.MsgInvalidInput},
	service.ErrUnavailable:          {status: http.StatusServiceUnavailable, message: app.MsgServiceUnavailable},
	service.ErrInvalidParams:        {status: http.StatusInternalServerError, message: app.MsgInternalServerError},
	service.ErrInternal:             {status: http.StatusInternalServerError, message: app.MsgInternalServerError},

	service.ErrTokenIsExpiredOrInvalid:  {status: http.StatusUnauthorized, message: app.MsgUnauthorized},
	ErrEmptyAuthorizationHeader:         {status: http.StatusUnauthorized, message: app.MsgUnauthorized},
	utils.ErrInvalidAuthorizationHeader: {status: http.StatusUnauthorized, message: app.MsgUnauthorized},
	ErrNoOwnerInContext:                 {status: http.StatusUnauthorized, message: app.MsgUnauthorized},

	errInvalidJSON: {status: http.StatusBadRequest, message: app.MsgInvalidInput},
}

// responseFromError picks the fixed status and message for err. Anything
// unknown is an internal server error.
func responseFromError(err error) errorResponse {
	for target, response := range errorResponseMap {
		if errors.Is(err, target) {
			return response
		}
	}
	return errorResponse{status: http.StatusInternalServerError, message: app.MsgInternalServerError}
}

// writeError logs err and writes its JSON error body. Server faults are
// logged at error level so they reach operators; caller mistakes only at
// debug level.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	response := responseFromError(err)

	log := logger.FromRequest(r)
	switch {
	case response.status >= http.StatusInternalServerError && response.status != http.StatusServiceUnavailable:
		log.Error().Err(err).Str("func", funcName).Int("status", response.status).Msg("request failed")
	case response.status == http.StatusServiceUnavailable:
		log.Warn().Err(err).Str("func", funcName).Msg("vault unavailable")
		w.Header().Set("Retry-After", retryAfterSeconds)
	default:
		log.Debug().Err(err).Str("func", funcName).Int("status", response.status).Msg("request rejected")
	}

	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: response.message}, response.status)
}
