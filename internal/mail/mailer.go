// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package mail sends account confirmation emails over SMTP. Delivery is
// best-effort: registration never fails because the mail server is down.
// A circuit breaker stops hammering an unreachable SMTP host.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Fardin376/snacksmart/internal/config"
	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/metrics"
	"github.com/Fardin376/snacksmart/internal/models"
)

const dialTimeout = 30 * time.Second

// Mailer delivers confirmation emails. When mail is disabled in config,
// sends are logged and skipped.
type Mailer struct {
	cfg       *config.MailConfig
	publicURL string
	cb        *gobreaker.CircuitBreaker[struct{}]
}

// New creates a Mailer from the mail settings and the public base URL used
// to build confirmation links.
func New(cfg *config.MailConfig, publicURL string) *Mailer {
	cbName := "smtp"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] SMTP state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Mailer{
		cfg:       cfg,
		publicURL: strings.TrimRight(publicURL, "/"),
		cb:        cb,
	}
}

// SendConfirmation emails the account confirmation link to a new customer.
// Failures are reported to the caller but are safe to ignore: the customer
// can request a resend, and the account already exists.
func (m *Mailer) SendConfirmation(ctx context.Context, user *models.User, token string) error {
	if !m.cfg.Enabled {
		logging.Info().Str("email", user.Email).Msg("Mail disabled, skipping confirmation email")
		metrics.EmailsSent.WithLabelValues("skipped").Inc()
		return nil
	}

	link := fmt.Sprintf("%s/api/v1/auth/confirm?token=%s", m.publicURL, url.QueryEscape(token))
	msg := m.buildMessage(user, link)

	_, err := m.cb.Execute(func() (struct{}, error) {
		return struct{}{}, m.sendSMTP(ctx, user.Email, msg)
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
		logging.Warn().Err(err).Str("email", user.Email).Msg("Failed to send confirmation email")
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	metrics.EmailsSent.WithLabelValues("sent").Inc()
	logging.Info().Str("email", user.Email).Msg("Confirmation email sent")
	return nil
}

// buildMessage constructs the RFC 5322 message with headers.
func (m *Mailer) buildMessage(user *models.User, link string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: SnackSmart <%s>\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", user.Email))
	msg.WriteString("Subject: Confirm your SnackSmart account\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("Hi %s,\r\n\r\n", user.FirstName))
	msg.WriteString("Welcome to SnackSmart! Confirm your email address to activate your account:\r\n\r\n")
	msg.WriteString(link)
	msg.WriteString("\r\n\r\nThe link expires in 48 hours. If you did not create this account, ignore this email.\r\n")

	return msg.String()
}

// sendSMTP delivers the message over a fresh SMTP connection.
func (m *Mailer) sendSMTP(ctx context.Context, to, msg string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// Quit failures after a delivered message are not errors.
	_ = client.Quit()
	return nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
