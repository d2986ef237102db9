// Package sessionid generates table session identifiers: a UUIDv7 written as
// 26 characters of Crockford base32, so IDs sort by creation time.
package sessionid

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Crockford's base32, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// Generator creates session IDs
type Generator struct {
	clock quartz.Clock
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil rng draws from crypto/rand.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// New returns a fresh session ID
func (g *Generator) New() string {
	var id [16]byte

	// 48-bit millisecond timestamp, big endian
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		g.mu.Lock()
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rng.UintN(256))
		}
		g.mu.Unlock()
	} else if _, err := crand.Read(id[6:]); err != nil {
		panic("sessionid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id)
}

// encode writes the 128 bits as 26 base32 digits, most significant first.
// The leading digit carries only 3 bits.
func encode(id [16]byte) string {
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(id[i])
		lo = lo<<8 | uint64(id[i+8])
	}

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

func decode(s string) (hi, lo uint64, err error) {
	if len(s) != Length {
		return 0, 0, fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return 0, 0, fmt.Errorf("session ID first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return 0, 0, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		hi = hi<<5 | lo>>59
		lo = lo<<5 | uint64(v)
	}
	return hi, lo, nil
}

// Validate checks that id is a well-formed session ID
func Validate(id string) error {
	_, _, err := decode(id)
	return err
}

// Time returns the creation time embedded in id, to the millisecond
func Time(id string) (time.Time, error) {
	hi, _, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(hi >> 16)), nil
}
