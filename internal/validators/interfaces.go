// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the caller input of vault operations before any
// key derivation or store access happens.
//
// [Validator] is deliberately untyped: the vault passes either a
// models.VaultAccess or models.PasswordFields value together with the names
// of the fields the current operation uses, so one validator serves all six
// operations. Every failure wraps one of the sentinels in errors.go.
package validators

import "context"

// Validator validates value, restricted to fields when any are given.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
