// Package allele implements the allele set: the domain of legal values
// for one gene position, as either a finite enumerated set, a bounded
// continuous interval (with optional increment), or a discrete set with
// explicit bounds.
//
// Multiple array genomes may share one Set by reference; Set itself is
// treated as a shared-immutable handle: a mutation to the set's
// contents produces a new Set value rather than rewriting the one other
// genomes still reference, so aliasing is safe without a hand-managed
// reference count.
package allele

import "github.com/tfki/galib/rand"

// Kind distinguishes the three domain shapes a Set can take.
type Kind int

const (
	// Enumerated is a finite, explicitly listed set of values.
	Enumerated Kind = iota
	// Bounded is a continuous interval [Lo, Hi], optionally stepped by
	// Increment.
	Bounded
	// Discrete is an explicitly bounded, explicitly stepped set — the
	// same shape as Bounded but iterated as discrete values rather than
	// sampled as a continuum.
	Discrete
)

// Set is an allele set over T.
type Set[T allowed] struct {
	kind Kind

	values []T // Enumerated / Discrete

	lo, hi, increment T // Bounded / Discrete
}

// allowed constrains the element types a Set can hold: ordered numeric
// types support Bounded/Discrete; any comparable type supports
// Enumerated.
type allowed interface {
	comparable
}

// NewEnumerated builds a finite allele set from explicit values.
func NewEnumerated[T allowed](values ...T) Set[T] {
	cp := make([]T, len(values))
	copy(cp, values)
	return Set[T]{kind: Enumerated, values: cp}
}

// NewBounded builds a continuous interval [lo, hi]. increment is the
// zero value of T when the interval has no stepping (pure real draw).
func NewBounded[T allowed](lo, hi, increment T) Set[T] {
	return Set[T]{kind: Bounded, lo: lo, hi: hi, increment: increment}
}

// NewDiscrete builds an explicitly bounded, explicitly stepped set; its
// values are still enumerable (unlike a pure continuum), so Size is
// finite.
func NewDiscrete[T allowed](lo, hi, increment T) Set[T] {
	return Set[T]{kind: Discrete, lo: lo, hi: hi, increment: increment}
}

// Kind reports which domain shape the set uses.
func (s Set[T]) Kind() Kind { return s.kind }

// Contains reports whether v belongs to the set.
func (s Set[T]) Contains(v T) bool {
	switch s.kind {
	case Enumerated:
		for _, e := range s.values {
			if e == v {
				return true
			}
		}
		return false
	case Discrete:
		for _, e := range s.enumerate() {
			if e == v {
				return true
			}
		}
		return false
	case Bounded:
		if vals := s.enumerate(); vals != nil {
			for _, e := range vals {
				if e == v {
					return true
				}
			}
			return false
		}
		lo, hi, _, ok := numericBounds(s.lo, s.hi, s.increment)
		if !ok {
			return false
		}
		f, ok := toFloat(v)
		return ok && f >= lo && f <= hi
	}
	return false
}

// Size returns the number of distinct values in the set, or -1 if the
// set is an unstepped continuum (infinite).
func (s Set[T]) Size() int {
	switch s.kind {
	case Enumerated:
		return len(s.values)
	case Discrete:
		return len(s.enumerate())
	case Bounded:
		vals := s.enumerate()
		if vals == nil {
			return -1
		}
		return len(vals)
	}
	return 0
}

// Members returns every distinct value the set contains, in enumeration
// order, or nil if the set is an unstepped continuum (Size() == -1).
// Callers that need a deterministic walk of a finite set — an ordered
// initializer seeding a permutation, say — use this instead of
// repeated Draw.
func (s Set[T]) Members() []T {
	switch s.kind {
	case Enumerated:
		return append([]T(nil), s.values...)
	case Discrete, Bounded:
		return s.enumerate()
	}
	return nil
}

// Draw returns a uniform-random element of the set.
func (s Set[T]) Draw(r rand.Rand) T {
	switch s.kind {
	case Enumerated:
		return s.values[r.Intn(len(s.values))]
	case Discrete:
		vals := s.enumerate()
		return vals[r.Intn(len(vals))]
	case Bounded:
		vals := s.enumerate()
		if vals != nil {
			return vals[r.Intn(len(vals))]
		}
		return s.drawContinuum(r)
	}
	var zero T
	return zero
}

// enumerate materializes Discrete/Bounded-with-increment sets into a
// concrete value list, stepping in float64 and converting each value
// back to T. Returns nil for a
// Bounded set with a zero increment (a true continuum) or for
// non-numeric T.
func (s Set[T]) enumerate() []T {
	lo, hi, inc, ok := numericBounds(s.lo, s.hi, s.increment)
	if !ok || inc == 0 {
		return nil
	}
	var out []T
	n := int((hi-lo)/inc) + 1
	for i := 0; i < n; i++ {
		out = append(out, fromFloat[T](lo+float64(i)*inc))
	}
	return out
}

func (s Set[T]) drawContinuum(r rand.Rand) T {
	lo, hi, _, ok := numericBounds(s.lo, s.hi, s.increment)
	if !ok {
		var zero T
		return zero
	}
	v := lo + r.Float64()*(hi-lo)
	return fromFloat[T](v)
}
