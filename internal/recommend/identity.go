// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package recommend

// Identity is the caller key that scopes preference data: either an
// authenticated user ID or a client-generated anonymous session string,
// never both. It is constructed once per request (by the optional-auth
// layer) and passed explicitly through every preference operation instead
// of being reassembled from two optional fields at each call site.
//
// The zero Identity means "no identity": reads return empty results for it
// and writes reject it.
type Identity struct {
	userID    int
	sessionID string
}

// Authenticated returns the identity for a logged-in user.
func Authenticated(userID int) Identity {
	return Identity{userID: userID}
}

// Guest returns the identity for an anonymous session. The session string
// is an opaque caller-supplied key; no structure is assumed beyond
// non-emptiness.
func Guest(sessionID string) Identity {
	return Identity{sessionID: sessionID}
}

// IsZero reports whether no identity is present.
func (id Identity) IsZero() bool {
	return id.userID == 0 && id.sessionID == ""
}

// IsAuthenticated reports whether the identity is a logged-in user.
func (id Identity) IsAuthenticated() bool {
	return id.userID != 0
}

// UserID returns the authenticated user ID, if any.
func (id Identity) UserID() (int, bool) {
	return id.userID, id.userID != 0
}

// SessionID returns the guest session key, if any.
func (id Identity) SessionID() (string, bool) {
	return id.sessionID, id.userID == 0 && id.sessionID != ""
}
