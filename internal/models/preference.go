// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// Interaction action kinds tracked by the preference subsystem.
const (
	ActionSearch = "search"
	ActionClick  = "click"
	ActionView   = "view"
)

// ValidAction reports whether kind is one of the tracked action kinds.
func ValidAction(kind string) bool {
	switch kind {
	case ActionSearch, ActionClick, ActionView:
		return true
	}
	return false
}

// Preference is a single recorded interaction between an identity and a
// product. Exactly one of UserID/SessionID is set. Category is a copy of the
// product's category at write time; the product's category may change later
// without rewriting history.
//
// Rows are immutable: created on every tracked action, deleted only when
// evicted from the bounded history or by an explicit clear.
type Preference struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"userId,omitempty"`
	SessionID *string   `json:"sessionId,omitempty"`
	ProductID int       `json:"productId"`
	Action    string    `json:"actionType"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// Product is the joined catalog row for listing responses.
	Product *Product `json:"product,omitempty"`
}

// TrackRequest is the payload for POST /api/v1/preferences/track.
// SessionID is only consulted for unauthenticated callers.
type TrackRequest struct {
	ProductID  int    `json:"productId" validate:"required,gt=0"`
	ActionType string `json:"actionType" validate:"required,action_type"`
	SessionID  string `json:"sessionId"`
}

// ClearRequest is the payload for DELETE /api/v1/preferences/clear.
type ClearRequest struct {
	SessionID string `json:"sessionId"`
}
