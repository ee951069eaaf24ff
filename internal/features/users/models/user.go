package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID  `json:"id"              gorm:"column:id;type:uuid;primaryKey"`
	Name                 string     `json:"name"            gorm:"column:name"`
	Email                string     `json:"email"           gorm:"column:email"`
	HashedPassword       *string    `json:"-"               gorm:"column:hashed_password"`
	PasswordCreationTime time.Time  `json:"-"               gorm:"column:password_creation_time"`
	EmailVerifiedAt      *time.Time `json:"emailVerifiedAt" gorm:"column:email_verified_at"`
	CreatedAt            time.Time  `json:"createdAt"       gorm:"column:created_at"`
	UpdatedAt            time.Time  `json:"updatedAt"       gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
