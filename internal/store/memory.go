package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lox/pokertrainer/internal/progress"
)

// Memory is an in-process Store. One mutex serializes every write, which
// covers the per-record atomicity ApplyAnswer requires.
type Memory struct {
	mu       sync.Mutex
	records  map[string]map[string]TopicRecord
	attempts map[string][]Attempt
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		records:  make(map[string]map[string]TopicRecord),
		attempts: make(map[string][]Attempt),
	}
}

func (m *Memory) GetProgress(_ context.Context, userID, topic string) (progress.TopicProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[userID][topic]; ok {
		return r.Progress, nil
	}
	return progress.New(), nil
}

func (m *Memory) ListProgress(_ context.Context, userID string) ([]TopicRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TopicRecord, 0, len(m.records[userID]))
	for _, r := range m.records[userID] {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b TopicRecord) int { return strings.Compare(a.Topic, b.Topic) })
	return out, nil
}

func (m *Memory) ApplyAnswer(_ context.Context, a Attempt, advance AdvanceFunc) (progress.TopicProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	topics := m.records[a.UserID]
	if topics == nil {
		topics = make(map[string]TopicRecord)
		m.records[a.UserID] = topics
	}
	prev, ok := topics[a.Topic]
	if !ok {
		prev = TopicRecord{Topic: a.Topic, Progress: progress.New()}
	}

	next := advance(prev.Progress)
	topics[a.Topic] = TopicRecord{Topic: a.Topic, Progress: next, LastReviewed: a.CreatedAt}
	m.attempts[a.UserID] = append(m.attempts[a.UserID], a)
	return next, nil
}

func (m *Memory) RecentAttempts(_ context.Context, userID string, limit int) ([]Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.attempts[userID]
	n := min(max(limit, 0), len(all))
	out := make([]Attempt, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *Memory) Reset(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	delete(m.attempts, userID)
	return nil
}

func (m *Memory) Close() error { return nil }
