package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Sentinel errors handlers translate into HTTP statuses. Anything else coming
// out of the store is an unclassified failure.
var (
	ErrNotFound        = errors.New("record not found")
	ErrNotOwner        = errors.New("not the owner of this record")
	ErrDuplicateEmail  = errors.New("a user with this email already exists")
	ErrMessageTooShort = errors.New("message is too short")
)

// Store is an explicitly constructed handle over the database connection.
// Handlers receive it at wiring time; nothing reaches the connection through
// package-level state.
type Store struct {
	db *gorm.DB
}

// New creates a new store over an open database connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ThoughtFilter narrows a thought listing. Both flags are independent and
// combine with AND.
type ThoughtFilter struct {
	LikedOnly bool
	FromToday bool
}

// TodayWindow returns the half-open interval [local midnight, next local
// midnight) around now, used by the from-today filter.
func TodayWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
