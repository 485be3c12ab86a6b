// Package store persists training progress and attempt history.
package store

import (
	"context"
	"time"

	"github.com/lox/pokertrainer/internal/progress"
)

// Attempt is one graded answer.
type Attempt struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Topic      string `json:"question_type"`
	QuestionID string `json:"question_id"`
	Difficulty int    `json:"difficulty"`
	Correct    bool   `json:"correct"`
	// ResponseTimeMS is zero when the client did not report it.
	ResponseTimeMS int64     `json:"response_time_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TopicRecord is a stored progress record with its last review time.
type TopicRecord struct {
	Topic        string
	Progress     progress.TopicProgress
	LastReviewed time.Time // zero if never reviewed
}

// AdvanceFunc computes the next record from the stored one.
type AdvanceFunc func(prev progress.TopicProgress) progress.TopicProgress

// Store keeps per (user, topic) progress and the attempt log.
//
// ApplyAnswer is the only write path for progress. Implementations must run
// its read-modify-write atomically per (user, topic) so concurrent answers
// never lose an update.
type Store interface {
	// GetProgress returns the record, or progress.New() if none exists.
	GetProgress(ctx context.Context, userID, topic string) (progress.TopicProgress, error)
	// ListProgress returns every record of the user ordered by topic.
	ListProgress(ctx context.Context, userID string) ([]TopicRecord, error)
	// ApplyAnswer advances the record for a.Topic and logs a, atomically.
	// An empty a.ID is filled in.
	ApplyAnswer(ctx context.Context, a Attempt, advance AdvanceFunc) (progress.TopicProgress, error)
	// RecentAttempts returns up to limit attempts, newest first.
	RecentAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error)
	// Reset deletes the user's progress and attempts.
	Reset(ctx context.Context, userID string) error
	Close() error
}
