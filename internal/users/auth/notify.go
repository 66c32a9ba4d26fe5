// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
)

// Notifier delivers confirmation codes to users out-of-band.
type Notifier interface {
	// SendConfirmationCode delivers the plain code to the user's email.
	SendConfirmationCode(context context.Context, email, username, code string) error
}

// LogNotifier writes confirmation codes to the structured log instead of
// sending email. Suitable for development and test environments only: the
// code is a credential and must never reach production logs.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a logger-backed Notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendConfirmationCode implements Notifier.
func (notifier *LogNotifier) SendConfirmationCode(context context.Context, email, username, code string) error {
	notifier.logger.InfoContext(context, "confirmation_code_issued",
		slog.String("email", email),
		slog.String("username", username),
		slog.String("code", code),
	)
	return nil
}
