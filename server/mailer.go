package server

import (
	"context"
	"log/slog"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// LogMailer records welcome mails in the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer writing to logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendWelcome(_ context.Context, acct domain.Account) error {
	m.logger.Info("welcome mail",
		"to", acct.Email,
		"nickname", acct.Name,
		"created", acct.CreatedAt.Format("January 2, 2006 03:04 PM"),
	)
	return nil
}
