package email

import (
	"context"
	"log/slog"
)

// Sender delivers one message. The worker retries nothing, a failed
// message is logged and dropped.
type Sender interface {
	Send(ctx context.Context, message *EmailMessage) error
}

// LoggingSender writes messages to the log instead of delivering them.
// It is the sender used when no mail transport is configured.
type LoggingSender struct {
	logger *slog.Logger
}

func NewLoggingSender(logger *slog.Logger) *LoggingSender {
	return &LoggingSender{logger: logger}
}

func (s *LoggingSender) Send(_ context.Context, message *EmailMessage) error {
	s.logger.Info("email would be sent",
		slog.String("id", message.ID.String()),
		slog.String("kind", string(message.Kind)),
		slog.String("from", message.From),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("text", message.Text))

	return nil
}
