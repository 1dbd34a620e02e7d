// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vault server handlers and its Go API client.
//
// All Msg* constants are the fixed strings written into the "error" field of
// failed API responses. Driver or codec details never reach a response body;
// keeping the wording in one place lets the client map it back to errors.
package app

const (
	// MsgPasswordNotFound is returned when the record does not exist or
	// belongs to a different owner. The two cases are indistinguishable.
	MsgPasswordNotFound = "password entry not found"

	// MsgAuthenticationFailed is returned when the master password does not
	// open the record, including when the stored record is damaged.
	MsgAuthenticationFailed = "wrong master password or record unavailable"

	// MsgInvalidInput is returned for malformed JSON, missing required fields
	// and fields over their length limit.
	MsgInvalidInput = "invalid input"

	// MsgServiceUnavailable is returned with a Retry-After header when the
	// store is down or timed out.
	MsgServiceUnavailable = "service temporarily unavailable"

	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned when the bearer token is missing, malformed,
	// expired or signed by someone else.
	MsgUnauthorized = "unauthorized"
)
