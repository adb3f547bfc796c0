// Package ids hands out widget identifiers. Generators are injected into
// widgets; nothing in huepad keeps a package-level counter.
package ids

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on every call.
type Generator interface {
	Next() string
}

// Sequence is a monotonically increasing counter with a prefix. The zero
// value is usable and starts at 1.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

var _ Generator = (*Sequence)(nil)

// NewSequence returns a counter whose ids look like prefix-1, prefix-2, ...
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// Next returns the next id.
func (s *Sequence) Next() string {
	v := s.n.Add(1)
	if s.Prefix == "" {
		return strconv.FormatUint(v, 10)
	}
	return s.Prefix + "-" + strconv.FormatUint(v, 10)
}

// Last returns the most recently issued number, or 0.
func (s *Sequence) Last() uint64 { return s.n.Load() }

// UUID issues random v4 UUIDs.
type UUID struct{}

var _ Generator = UUID{}

func (UUID) Next() string { return uuid.NewString() }

// Kinds lists the generator names New accepts.
var Kinds = []string{"seq", "uuid"}

// New returns the generator called kind. Sequences are prefixed with prefix.
func New(kind, prefix string) (Generator, error) {
	switch kind {
	case "", "seq":
		return NewSequence(prefix), nil
	case "uuid":
		return UUID{}, nil
	}
	return nil, fmt.Errorf("unknown id generator %q", kind)
}
