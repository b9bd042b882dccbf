// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"database/sql"
	"errors"
	"io"

	"github.com/Fardin376/snacksmart/internal/logging"
)

// Sentinel errors returned by the data access layer. Handlers map these to
// HTTP status codes; everything else is a 500.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint would be violated
	// (email or coupon code already taken).
	ErrDuplicate = errors.New("already exists")

	// ErrInsufficientStock indicates a cart or checkout operation asked
	// for more units than the product has.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// rollbackQuietly rolls back a transaction, logging unexpected failures.
// A rollback after commit returns sql.ErrTxDone, which is fine.
func rollbackQuietly(tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Warn().Err(err).Msg("Failed to roll back transaction")
	}
}
