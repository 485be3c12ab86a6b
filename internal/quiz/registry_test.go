package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueOne(t *testing.T, r *Registry, userID string) Question {
	t.Helper()
	q, err := NewGenerator(DefaultConfig()).Generate(HandRanking, 1, 7)
	require.NoError(t, err)
	q, err = r.Issue(userID, q)
	require.NoError(t, err)
	require.NotEmpty(t, q.ID)
	return q
}

func TestRegistryTakeIsSingleUse(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t), time.Minute)
	q := issueOne(t, r, "alice")
	assert.Equal(t, 1, r.Len())

	got, err := r.Take("alice", q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, got)
	assert.Equal(t, 0, r.Len())

	_, err = r.Take("alice", q.ID)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))
}

func TestRegistryRestore(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t), time.Minute)
	q := issueOne(t, r, "alice")

	got, err := r.Take("alice", q.ID)
	require.NoError(t, err)
	r.Restore("alice", got)
	assert.Equal(t, 1, r.Len())

	_, err = r.Take("bob", q.ID)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))

	again, err := r.Take("alice", q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, again)
}

func TestRegistryRejectsOtherUser(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t), time.Minute)
	q := issueOne(t, r, "alice")

	_, err := r.Take("mallory", q.ID)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))

	_, err = r.Take("alice", q.ID)
	assert.NoError(t, err, "a wrong-user attempt must not consume the question")
}

func TestRegistryExpiry(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	r := NewRegistry(clock, time.Minute)

	q := issueOne(t, r, "alice")
	clock.Advance(59 * time.Second).MustWait(ctx)
	got, err := r.Take("alice", q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	q = issueOne(t, r, "alice")
	clock.Advance(time.Minute).MustWait(ctx)
	_, err = r.Take("alice", q.ID)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySweep(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	r := NewRegistry(clock, time.Minute)

	issueOne(t, r, "alice")
	issueOne(t, r, "bob")
	clock.Advance(30 * time.Second).MustWait(ctx)
	fresh := issueOne(t, r, "carol")

	clock.Advance(45 * time.Second).MustWait(ctx)
	assert.Equal(t, 2, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, err := r.Take("carol", fresh.ID)
	assert.NoError(t, err)
}

func TestRegistryUnknownIDs(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t), 0)
	assert.Equal(t, DefaultTTL, r.ttl)

	for _, id := range []string{"", "nope", "q_01h5n0et5q6mt3v7ms1234abc0"} {
		_, err := r.Take("alice", id)
		assert.True(t, errors.Is(err, ErrUnknownQuestion), "id %q", id)
	}
}
