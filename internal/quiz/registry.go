package quiz

import (
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokertrainer/internal/questionid"
)

// DefaultTTL is how long an issued question can be answered.
const DefaultTTL = 10 * time.Minute

type issued struct {
	question Question
	userID   string
	expires  time.Time
}

// Registry holds issued questions until they are graded or expire. Grading
// only ever sees questions the server generated itself.
type Registry struct {
	mu        sync.Mutex
	questions map[string]issued
	ids       *questionid.Generator
	clock     quartz.Clock
	ttl       time.Duration
}

// NewRegistry creates a registry. A non-positive ttl uses DefaultTTL.
func NewRegistry(clock quartz.Clock, ttl time.Duration) *Registry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		questions: make(map[string]issued),
		ids:       questionid.NewGenerator(clock, nil),
		clock:     clock,
		ttl:       ttl,
	}
}

// Issue assigns q a fresh id and holds it for userID.
func (r *Registry) Issue(userID string, q Question) (Question, error) {
	id, err := r.ids.New()
	if err != nil {
		return Question{}, fmt.Errorf("issue question: %w", err)
	}
	q.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.questions[id] = issued{question: q, userID: userID, expires: r.clock.Now().Add(r.ttl)}
	return q, nil
}

// Take removes and returns the question issued to userID under id. Each
// question can be taken once. A question issued to another user is left in
// place.
func (r *Registry) Take(userID, id string) (Question, error) {
	if err := questionid.Validate(id); err != nil {
		return Question{}, fmt.Errorf("%w: %v", ErrUnknownQuestion, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.questions[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	if !r.clock.Now().Before(entry.expires) {
		delete(r.questions, id)
		return Question{}, fmt.Errorf("%w: %s expired", ErrUnknownQuestion, id)
	}
	if entry.userID != userID {
		return Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	delete(r.questions, id)
	return entry.question, nil
}

// Restore puts back a question previously taken by userID, for when grading
// could not be recorded. It gets a fresh expiry and keeps its id.
func (r *Registry) Restore(userID string, q Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[q.ID] = issued{question: q, userID: userID, expires: r.clock.Now().Add(r.ttl)}
}

// Sweep drops expired questions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	now := r.clock.Now()
	removed := 0
	for id, entry := range r.questions {
		if !now.Before(entry.expires) {
			delete(r.questions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of outstanding questions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.questions)
}
