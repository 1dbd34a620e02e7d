// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoOwnerInContext means a vault route was reached without the auth
	// middleware in front of it.
	ErrNoOwnerInContext = errors.New("no owner in request context")

	errInvalidJSON = errors.New("invalid JSON was passed")
)
