package email

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cache_utils "taskflow/internal/util/cache"
	"taskflow/internal/util/metrics"

	"github.com/google/uuid"
)

const emailOutboxQueueKey = "taskflow:email:outbox"

// EmailService renders emails and puts them on the Valkey outbox.
// Nothing is returned to callers: email is a side effect of the request
// that triggered it.
type EmailService struct {
	queueService *cache_utils.ValkeyQueueService
	queueKey     string
	from         string
	logger       *slog.Logger
}

func (s *EmailService) SendVerificationEmail(to string, name string, verifyURL string) {
	s.enqueueTemplate(EmailKindVerification, to, verificationTemplate, linkEmailData{Name: name, URL: verifyURL})
}

func (s *EmailService) SendPasswordResetEmail(to string, name string, resetURL string) {
	s.enqueueTemplate(EmailKindPasswordReset, to, passwordResetTemplate, linkEmailData{Name: name, URL: resetURL})
}

func (s *EmailService) SendTeamInviteEmail(
	to string,
	inviterName string,
	projectTitle string,
	role string,
	projectURL string,
) {
	s.enqueueTemplate(EmailKindTeamInvite, to, teamInviteTemplate, teamInviteEmailData{
		InviterName:  inviterName,
		ProjectTitle: projectTitle,
		Role:         role,
		URL:          projectURL,
	})
}

func (s *EmailService) Enqueue(message *EmailMessage) {
	err := s.enqueue(message)
	metrics.RecordEmail("queued", err)

	if err != nil {
		s.logger.Error("failed to enqueue email",
			slog.String("kind", string(message.Kind)),
			slog.String("to", message.To),
			slog.String("error", err.Error()))
	}
}

func (s *EmailService) enqueueTemplate(kind EmailKind, to string, template *emailTemplate, data any) {
	rendered, err := template.render(data)
	if err != nil {
		s.logger.Error("failed to render email",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return
	}

	s.Enqueue(&EmailMessage{
		Kind:    kind,
		To:      to,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
}

func (s *EmailService) enqueue(message *EmailMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	if message.From == "" {
		message.From = s.from
	}

	message.QueuedAt = time.Now().UTC()

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	return s.queueService.Enqueue(s.queueKey, data)
}
