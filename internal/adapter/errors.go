package adapter

import "errors"

var (
	ErrUnauthorized         = errors.New("client unauthorized")
	ErrAuthenticationFailed = errors.New("wrong master password or record unavailable")
	ErrNotFound             = errors.New("password entry not found")
	ErrBadRequest           = errors.New("bad request")
	ErrServiceUnavailable   = errors.New("service temporarily unavailable")
	ErrInternalServerError  = errors.New("internal server error")
	ErrUnexpectedStatus     = errors.New("unexpected response status")
	ErrInvalidServerAddress = errors.New("invalid server address")
)
