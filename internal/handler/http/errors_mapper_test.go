package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-locker/internal/app"
	"github.com/MKhiriev/go-pass-locker/internal/service"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantMsg        string
		wantRetryAfter string
	}{
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound, wantMsg: app.MsgPasswordNotFound},
		{name: "authentication failed", err: service.ErrAuthenticationFailed, wantStatus: http.StatusUnauthorized, wantMsg: app.MsgAuthenticationFailed},
		{name: "invalid input", err: fmt.Errorf("%w: website is empty", service.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantMsg: app.MsgInvalidInput},
		{name: "unavailable", err: fmt.Errorf("%w: %w", service.ErrUnavailable, context.DeadlineExceeded), wantStatus: http.StatusServiceUnavailable, wantMsg: app.MsgServiceUnavailable, wantRetryAfter: "1"},
		{name: "invalid params", err: service.ErrInvalidParams, wantStatus: http.StatusInternalServerError, wantMsg: app.MsgInternalServerError},
		{name: "internal", err: fmt.Errorf("%w: disk on fire", service.ErrInternal), wantStatus: http.StatusInternalServerError, wantMsg: app.MsgInternalServerError},
		{name: "expired token", err: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized, wantMsg: app.MsgUnauthorized},
		{name: "bad authorization header", err: utils.ErrInvalidAuthorizationHeader, wantStatus: http.StatusUnauthorized, wantMsg: app.MsgUnauthorized},
		{name: "malformed JSON", err: fmt.Errorf("%w: unexpected EOF", errInvalidJSON), wantStatus: http.StatusBadRequest, wantMsg: app.MsgInvalidInput},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			writeError(rr, req, "test", tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantMsg, decodeErrorBody(t, rr))
			assert.Equal(t, tt.wantRetryAfter, rr.Header().Get("Retry-After"))
		})
	}
}

func TestWriteError_DoesNotLeakCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	writeError(rr, req, "test", fmt.Errorf("%w: pq: relation vault_records does not exist", service.ErrInternal))

	assert.NotContains(t, rr.Body.String(), "vault_records")
}
