package utils

import (
	"github.com/go-resty/resty/v2"
)

// userAgent identifies the vault client to the server access log.
const userAgent = "go-pass-locker-client"

// HTTPClient embeds *resty.Client so the vault adapter can use the full
// resty API while sharing one set of defaults.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that asks for JSON and
// identifies itself as the vault client.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &HTTPClient{Client: client}
}
