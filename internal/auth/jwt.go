// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package auth provides JWT token management, password hashing, and the HTTP
// middleware that gates customer and back-office routes.
//
// Three token purposes are issued, all HS256-signed with the same secret:
//   - "access": customer session token
//   - "admin": back-office session token, carries the admin role
//   - "confirm": short-lived email confirmation token
//
// A token is only accepted where its purpose matches; a customer access
// token can never open an admin route and a confirmation token can never
// open either.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Fardin376/snacksmart/internal/config"
)

// Token purposes carried in the purpose claim.
const (
	PurposeAccess  = "access"
	PurposeAdmin   = "admin"
	PurposeConfirm = "confirm"
)

// Claims represents JWT claims. Subject holds the account ID as a decimal
// string. Role is only set for admin tokens.
type Claims struct {
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// AccountID returns the numeric account ID from the Subject claim.
func (c *Claims) AccountID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return id, nil
}

// JWTManager handles JWT token creation and validation using HMAC-SHA256.
type JWTManager struct {
	secret     []byte
	timeout    time.Duration
	confirmTTL time.Duration
}

// NewJWTManager creates a new JWT token manager with the configured secret
// and lifetimes. The secret must be non-empty; Config.Validate enforces the
// 32-character minimum before this is reached.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}

	return &JWTManager{
		secret:     []byte(cfg.JWTSecret),
		timeout:    cfg.SessionTimeout,
		confirmTTL: cfg.ConfirmTokenTTL,
	}, nil
}

// GenerateUserToken creates a customer session token.
func (m *JWTManager) GenerateUserToken(userID int, email string) (string, error) {
	return m.sign(&Claims{
		Email:   email,
		Purpose: PurposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateAdminToken creates a back-office session token carrying the
// admin's role for authorization checks.
func (m *JWTManager) GenerateAdminToken(adminID int, email, role string) (string, error) {
	return m.sign(&Claims{
		Email:   email,
		Role:    role,
		Purpose: PurposeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(adminID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateConfirmToken creates the token embedded in the account
// confirmation email link.
func (m *JWTManager) GenerateConfirmToken(userID int, email string) (string, error) {
	return m.sign(&Claims{
		Email:   email,
		Purpose: PurposeConfirm,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.confirmTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	})
}

func (m *JWTManager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken validates a JWT token string and checks that its purpose
// matches the expected one. Rejects tokens signed with an unexpected
// algorithm to prevent algorithm confusion attacks.
func (m *JWTManager) ValidateToken(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Purpose != purpose {
		return nil, fmt.Errorf("token purpose %q not valid here", claims.Purpose)
	}

	return claims, nil
}
