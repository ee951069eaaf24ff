package email

import (
	"time"

	"github.com/google/uuid"
)

type EmailKind string

const (
	EmailKindVerification  EmailKind = "verification"
	EmailKindPasswordReset EmailKind = "password_reset"
	EmailKindTeamInvite    EmailKind = "team_invite"
)

// EmailMessage is the JSON payload stored in the outbox queue.
type EmailMessage struct {
	ID       uuid.UUID `json:"id"`
	Kind     EmailKind `json:"kind"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	HTML     string    `json:"html"`
	Text     string    `json:"text"`
	QueuedAt time.Time `json:"queuedAt"`
}
