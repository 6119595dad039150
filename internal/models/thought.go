package models

import (
	"time"
)

// MinMessageLength is the shortest message accepted on create and edit.
const MinMessageLength = 5

type Thought struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Message string `gorm:"not null;type:text" json:"message"`
	Hearts  int    `gorm:"not null;default:0" json:"hearts"`
	// UserID is always set on newly created thoughts. The column stays nullable
	// because rows written before accounts existed have no owner.
	UserID    string    `gorm:"type:varchar(36);index" json:"user"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (Thought) TableName() string {
	return "thoughts"
}
