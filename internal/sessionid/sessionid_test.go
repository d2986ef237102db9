package sessionid

import (
	"sort"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/craps/internal/randutil"
)

func TestNew(t *testing.T) {
	gen := NewGenerator(nil, nil)
	id := gen.New()

	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
	assert.LessOrEqual(t, id[0], byte('7'))
}

func TestNewUnique(t *testing.T) {
	gen := NewGenerator(quartz.NewMock(t), nil)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.New()
		require.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestNewDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(7))
	b := NewGenerator(clock, randutil.New(7))

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.New(), b.New())
	}
}

func TestSortedByTime(t *testing.T) {
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, randutil.New(1))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, gen.New())
		clock.Advance(time.Millisecond)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestTime(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC))
	id := NewGenerator(clock, randutil.New(1)).New()

	got, err := Time(id)
	require.NoError(t, err)
	assert.True(t, got.Equal(clock.Now()), "got %s", got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", true},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", false},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp411", false},
		{"leading digit above 7", "81h2xcejqtf2nbrexx3vqjhp41", false},
		{"excluded letter", "01h2xcejqtf2nbrexx3vqjhpi1", false},
		{"upper case", "01H2XCEJQTF2NBREXX3VQJHP41", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
