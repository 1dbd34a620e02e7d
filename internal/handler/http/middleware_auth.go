package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
)

// auth is an HTTP middleware that enforces bearer authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.IdentityService.ParseToken] and stores the owner id from the
// "sub" claim in the request context under [utils.OwnerIDCtxKey].
//
// A missing, malformed, expired or foreign token is answered with
// 401 {"error":"unauthorized"}. The reason is only logged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		ctx := r.Context()
		token, err := h.services.IdentityService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		// downstream handlers and the vault read the owner from the context
		ctx = context.WithValue(ctx, utils.OwnerIDCtxKey, token.OwnerID)
		log := logger.FromContext(ctx).With().Str("owner_id", token.OwnerID).Logger()
		next.ServeHTTP(w, r.WithContext(log.WithContext(ctx)))
	})
}
