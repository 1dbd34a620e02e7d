package service

import (
	"context"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/utils"
	"github.com/MKhiriev/go-pass-locker/models"
)

// identityService verifies bearer tokens issued by the identity provider.
// The vault never issues tokens itself.
type identityService struct {
	// tokenSignKey is the HMAC secret shared with the token issuer.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim.
	tokenIssuer string

	logger *logger.Logger
}

func NewIdentityService(cfg config.App, logger *logger.Logger) IdentityService {
	return &identityService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// ParseToken validates the signature, issuer and expiry of tokenString and
// returns it with OwnerID taken from the "sub" claim. Every failure is
// reported as ErrTokenIsExpiredOrInvalid.
func (i *identityService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, i.tokenSignKey, i.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "identityService.ParseToken").Msg("rejected bearer token")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
