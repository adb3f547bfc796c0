package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchCallsSubscribersInOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5, 32} {
		b := NewBus[int]("test")
		var calls []int
		for i := 0; i < n; i++ {
			i := i
			b.Subscribe(func(v int) { calls = append(calls, i*100+v) })
		}
		require.NoError(t, b.Dispatch(7))
		require.Len(t, calls, n)
		for i, got := range calls {
			assert.Equal(t, i*100+7, got, "subscriber %d", i)
		}
	}
}

func TestDispatchIsolatesPanickingSubscriber(t *testing.T) {
	b := NewBus[string]("colors")
	var got []string
	b.Subscribe(func(s string) { got = append(got, "a:"+s) })
	b.Subscribe(func(string) { panic("boom") })
	b.Subscribe(func(s string) { got = append(got, "c:"+s) })

	err := b.Dispatch("x")
	require.Error(t, err)
	assert.Equal(t, []string{"a:x", "c:x"}, got)

	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "colors", de.Bus)
	var sp *SubscriberPanic
	require.True(t, errors.As(err, &sp))
	assert.Equal(t, 1, sp.Index)
	assert.Equal(t, "boom", sp.Value)
}

func TestSubscribeDuringDispatchWaitsForNextPayload(t *testing.T) {
	b := NewBus[int]("late")
	late := 0
	b.Subscribe(func(int) {
		b.Subscribe(func(int) { late++ })
	})
	require.NoError(t, b.Dispatch(1))
	assert.Equal(t, 0, late)
	assert.Equal(t, 2, b.Len())
	require.NoError(t, b.Dispatch(2))
	assert.Equal(t, 1, late)
}

func TestSubscribeIgnoresNil(t *testing.T) {
	b := NewBus[int]("nil")
	b.Subscribe(nil)
	assert.Equal(t, 0, b.Len())
}
