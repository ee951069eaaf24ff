package users_models

import (
	"fmt"
	"time"
)

// VerificationToken is a single-use secret. Password resets use the
// "reset:<email>" identifier, email verification uses the bare email.
type VerificationToken struct {
	Identifier string    `gorm:"column:identifier;primaryKey"`
	Token      string    `gorm:"column:token;primaryKey"`
	ExpiresAt  time.Time `gorm:"column:expires_at"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

func (t *VerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func PasswordResetIdentifier(email string) string {
	return fmt.Sprintf("reset:%s", email)
}
