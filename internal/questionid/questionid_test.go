package questionid

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	gen := NewGenerator(nil, nil)
	id, err := gen.New()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, Prefix))
	assert.Len(t, id, len(Prefix)+encodedLen)
	assert.NoError(t, Validate(id))
}

func TestNewUnique(t *testing.T) {
	gen := NewGenerator(quartz.NewMock(t), nil)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id, err := gen.New()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewTimeOrdered(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, nil)

	var ids []string
	for i := 0; i < 10; i++ {
		id, err := gen.New()
		require.NoError(t, err)
		ids = append(ids, id)
		clock.Advance(time.Millisecond).MustWait(ctx)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "%s should sort before %s", ids[i-1], ids[i])
	}
}

func TestNewDeterministicForSameInputs(t *testing.T) {
	clock := quartz.NewMock(t)
	random := bytes.Repeat([]byte{0xab}, 10)

	a, err := NewGenerator(clock, bytes.NewReader(random)).New()
	require.NoError(t, err)
	b, err := NewGenerator(clock, bytes.NewReader(random)).New()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewShortRandomReader(t *testing.T) {
	gen := NewGenerator(quartz.NewMock(t), bytes.NewReader([]byte{1, 2, 3}))
	_, err := gen.New()
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	var zero [16]byte
	assert.Equal(t, strings.Repeat("0", encodedLen), encode(zero))

	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	assert.Equal(t, strings.Repeat("z", encodedLen-1)+"w", encode(ones))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "q_01h5n0et5q6mt3v7ms1234abc0", false},
		{"missing prefix", "01h5n0et5q6mt3v7ms1234abc0", true},
		{"too short", "q_01h5n0et5q6mt3v7ms123", true},
		{"too long", "q_01h5n0et5q6mt3v7ms1234abc0de", true},
		{"invalid character", "q_01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "q_01H5N0ET5Q6MT3V7MS1234ABC0", true},
		{"padding bits set", "q_01h5n0et5q6mt3v7ms1234abc1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, alphabet, 32)
	seen := make(map[rune]bool)
	for _, c := range alphabet {
		assert.False(t, seen[c], "duplicate %c", c)
		seen[c] = true
	}
	for _, c := range "ilou" {
		assert.NotContains(t, alphabet, string(c))
	}
}
