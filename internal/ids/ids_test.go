package ids

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceIsPerInstance(t *testing.T) {
	a := NewSequence("picker")
	b := NewSequence("picker")
	assert.Equal(t, "picker-1", a.Next())
	assert.Equal(t, "picker-2", a.Next())
	assert.Equal(t, "picker-1", b.Next())
	assert.Equal(t, uint64(2), a.Last())
}

func TestSequenceZeroValue(t *testing.T) {
	var s Sequence
	assert.Equal(t, "1", s.Next())
}

func TestSequenceConcurrentUnique(t *testing.T) {
	s := NewSequence("w")
	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := s.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestUUID(t *testing.T) {
	var g Generator = UUID{}
	a, b := g.Next(), g.Next()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNewByKind(t *testing.T) {
	g, err := New("seq", "w")
	require.NoError(t, err)
	assert.Equal(t, "w-1", g.Next())

	g, err = New("uuid", "w")
	require.NoError(t, err)
	assert.IsType(t, UUID{}, g)

	_, err = New("snowflake", "w")
	assert.ErrorContains(t, err, "snowflake")
}
