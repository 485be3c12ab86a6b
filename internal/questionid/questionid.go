// Package questionid issues opaque, time-ordered question ids.
//
// An id is "q_" followed by a UUIDv7 encoded as 26 characters of Crockford
// base32, so ids sort by issue time and carry no scenario data.
package questionid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/coder/quartz"
)

// Prefix marks question ids.
const Prefix = "q_"

const (
	alphabet   = "0123456789abcdefghjkmnpqrstvwxyz"
	encodedLen = 26
)

// Generator creates question ids from a clock and a random reader.
type Generator struct {
	mu     sync.Mutex
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator returns a generator. A nil clock uses the wall clock and a
// nil reader uses crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// New returns a fresh id.
func (g *Generator) New() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var raw [16]byte
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		raw[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.random, raw[6:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	raw[6] = raw[6]&0x0f | 0x70 // version 7
	raw[8] = raw[8]&0x3f | 0x80 // RFC 4122 variant

	return Prefix + encode(raw), nil
}

// encode writes the 128 bits as 26 five-bit groups, padding the tail with
// two zero bits.
func encode(raw [16]byte) string {
	var sb strings.Builder
	sb.Grow(encodedLen)

	var buf uint32
	bits := 0
	for _, b := range raw {
		buf = buf<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(buf>>bits)&0x1f])
		}
	}
	sb.WriteByte(alphabet[(buf<<(5-bits))&0x1f])
	return sb.String()
}

// Validate reports whether id has the shape of an issued question id.
func Validate(id string) error {
	body, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return fmt.Errorf("question id must start with %q", Prefix)
	}
	if len(body) != encodedLen {
		return fmt.Errorf("question id body must be %d characters, got %d", encodedLen, len(body))
	}
	for i := 0; i < len(body); i++ {
		v := strings.IndexByte(alphabet, body[i])
		if v < 0 {
			return fmt.Errorf("invalid character %q at position %d", body[i], i)
		}
		if i == encodedLen-1 && v&0x03 != 0 {
			return fmt.Errorf("question id has non-zero padding bits")
		}
	}
	return nil
}
