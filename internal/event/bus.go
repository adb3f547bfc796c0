// Package event provides an ordered, synchronous callback registry.
package event

import (
	"errors"
	"fmt"

	"github.com/example/huepad/internal/logging"
)

// Bus fans a payload out to its subscribers in subscription order.
// A Bus is not safe for concurrent use; it belongs to the UI thread.
type Bus[T any] struct {
	name string
	subs []func(T)
}

// NewBus returns an empty bus. name only appears in log and error output.
func NewBus[T any](name string) *Bus[T] {
	return &Bus[T]{name: name}
}

// Subscribe appends fn to the subscriber list. nil callbacks are ignored.
func (b *Bus[T]) Subscribe(fn func(T)) {
	if fn == nil {
		return
	}
	b.subs = append(b.subs, fn)
}

// Len reports how many subscribers are registered.
func (b *Bus[T]) Len() int { return len(b.subs) }

// SubscriberPanic records a recovered panic from one subscriber.
type SubscriberPanic struct {
	Index int
	Value any
}

func (p *SubscriberPanic) Error() string {
	return fmt.Sprintf("subscriber %d panicked: %v", p.Index, p.Value)
}

// DispatchError is returned by Dispatch when one or more subscribers panic.
type DispatchError struct {
	Bus string
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Bus, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Dispatch invokes every subscriber exactly once with v. A panicking
// subscriber does not stop the ones after it; all failures are joined into
// the returned *DispatchError.
func (b *Bus[T]) Dispatch(v T) error {
	// Subscribers added during dispatch are not called for this payload.
	subs := b.subs
	var errs []error
	for i, fn := range subs {
		if err := invoke(i, fn, v); err != nil {
			logging.Logger().Error("event subscriber failed", "bus", b.name, "index", i, "err", err)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &DispatchError{Bus: b.name, Err: errors.Join(errs...)}
}

func invoke[T any](i int, fn func(T), v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SubscriberPanic{Index: i, Value: r}
		}
	}()
	fn(v)
	return nil
}
