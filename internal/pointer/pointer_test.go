package pointer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRoutesByKind(t *testing.T) {
	d := NewDispatcher("test")
	got := map[Kind][]Event{}
	for _, k := range Kinds {
		k := k
		d.On(k, func(e Event) { got[k] = append(got[k], e) })
	}

	events := []Event{
		{Kind: Down, X: 1, Y: 2, Buttons: ButtonPrimary},
		{Kind: Move, X: 3, Y: 4, Buttons: ButtonPrimary},
		{Kind: Up, X: 5, Y: 6},
		{Kind: Click, X: 5, Y: 6},
	}
	for _, ev := range events {
		require.NoError(t, d.Dispatch(ev))
	}
	for _, ev := range events {
		require.Len(t, got[ev.Kind], 1, ev.Kind.String())
		assert.Equal(t, ev, got[ev.Kind][0], "event must be re-emitted unchanged")
	}
}

func TestNSubscribersInvokedOnceInBindingOrder(t *testing.T) {
	d := NewDispatcher("order")
	const n = 10
	var order []int
	for i := 0; i < n; i++ {
		i := i
		d.On(Move, func(Event) { order = append(order, i) })
	}
	require.NoError(t, d.Dispatch(Event{Kind: Move}))
	require.Len(t, order, n)
	for i := range order {
		assert.Equal(t, i, order[i])
	}
	assert.Equal(t, n, d.Subscribers(Move))
	assert.Equal(t, 0, d.Subscribers(Click))
}

func TestUnknownKindRejected(t *testing.T) {
	d := NewDispatcher("bad")
	err := d.Subscribe(Kind(9), func(Event) {})
	assert.True(t, errors.Is(err, ErrUnknownKind))
	err = d.Dispatch(Event{Kind: Kind(-1)})
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestPrimaryOnly(t *testing.T) {
	assert.True(t, Event{Buttons: ButtonPrimary}.PrimaryOnly())
	assert.False(t, Event{Buttons: ButtonPrimary | ButtonSecondary}.PrimaryOnly())
	assert.False(t, Event{}.PrimaryOnly())
}

func TestTranslate(t *testing.T) {
	ev := Event{Kind: Move, X: 10, Y: 20}.Translate(-4, 5)
	assert.Equal(t, 6.0, ev.X)
	assert.Equal(t, 25.0, ev.Y)
}
