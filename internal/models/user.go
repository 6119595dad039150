package models

import (
	"time"
)

// Email and password length bounds, checked before the password is hashed.
const (
	MinEmailLength    = 3
	MaxEmailLength    = 100
	MinPasswordLength = 3
	MaxPasswordLength = 100
)

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string `gorm:"uniqueIndex;not null;type:varchar(100)" json:"email"`
	PasswordHash string `gorm:"not null;type:varchar(255)" json:"-"`
	// AccessToken is issued once at registration and matched verbatim on every
	// authenticated request. There is no expiry, rotation, or revocation.
	AccessToken string    `gorm:"uniqueIndex;not null;type:varchar(256)" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
