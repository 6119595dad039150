package store

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"happythoughts/api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateThought validates and persists a new thought owned by the caller.
// Returns ErrMessageTooShort for messages under the minimum length.
func (s *Store) CreateThought(ctx context.Context, thought *models.Thought) error {
	if utf8.RuneCountInString(thought.Message) < models.MinMessageLength {
		return ErrMessageTooShort
	}

	thought.ID = uuid.New().String()
	thought.Hearts = 0
	thought.CreatedAt = time.Now()

	if err := s.db.WithContext(ctx).Create(thought).Error; err != nil {
		return fmt.Errorf("failed to create thought: %w", err)
	}
	return nil
}

// ThoughtByID looks up a single thought
func (s *Store) ThoughtByID(ctx context.Context, id string) (*models.Thought, error) {
	var thought models.Thought
	err := s.db.WithContext(ctx).First(&thought, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thought: %w", err)
	}
	return &thought, nil
}

// ListThoughts returns thoughts matching the filter, newest first
func (s *Store) ListThoughts(ctx context.Context, filter ThoughtFilter) ([]models.Thought, error) {
	query := s.db.WithContext(ctx)

	if filter.LikedOnly {
		query = query.Where("hearts > ?", 0)
	}
	if filter.FromToday {
		start, end := TodayWindow(time.Now())
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var thoughts []models.Thought
	if err := query.Order("created_at DESC").Find(&thoughts).Error; err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	return thoughts, nil
}

// LikeThought increments the heart count by one and returns the updated
// thought. The increment happens in a single UPDATE so concurrent likes on the
// same thought never lose updates.
func (s *Store) LikeThought(ctx context.Context, id string) (*models.Thought, error) {
	var thought models.Thought
	result := s.db.WithContext(ctx).
		Model(&thought).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("hearts", gorm.Expr("hearts + ?", 1))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to like thought: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &thought, nil
}

// UpdateThoughtMessage replaces the message of a thought owned by ownerID.
// Ownership is verified before anything is written, and the UPDATE itself is
// conditional on the owner so a concurrent change cannot slip a write past the
// check. Returns ErrNotFound, ErrNotOwner, or ErrMessageTooShort accordingly.
func (s *Store) UpdateThoughtMessage(ctx context.Context, id, ownerID, message string) (*models.Thought, error) {
	if utf8.RuneCountInString(message) < models.MinMessageLength {
		return nil, ErrMessageTooShort
	}

	thought, err := s.ThoughtByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if thought.UserID != ownerID {
		return nil, ErrNotOwner
	}

	result := s.db.WithContext(ctx).
		Model(&models.Thought{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("message", message)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update thought: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Deleted between the lookup and the write.
		return nil, ErrNotFound
	}

	thought.Message = message
	return thought, nil
}

// DeleteThought removes a thought owned by ownerID and returns the deleted
// record. Same authorize-before-mutate ordering as UpdateThoughtMessage.
func (s *Store) DeleteThought(ctx context.Context, id, ownerID string) (*models.Thought, error) {
	thought, err := s.ThoughtByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if thought.UserID != ownerID {
		return nil, ErrNotOwner
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Thought{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete thought: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return thought, nil
}
