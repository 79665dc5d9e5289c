package allele

// Handle is a shared reference to a Set. Multiple array genomes may
// hold the same Handle; rather than a manual refcount with
// detach-on-mutation, a Handle is an immutable pointer to a Set value:
// Mutate produces a new Handle (and therefore a new Set) without
// perturbing any other genome still holding the old one.
type Handle[T allowed] struct {
	set *Set[T]
}

// NewHandle wraps a Set in a sharable Handle.
func NewHandle[T allowed](s Set[T]) Handle[T] {
	return Handle[T]{set: &s}
}

// Set returns the underlying allele set.
func (h Handle[T]) Set() Set[T] {
	if h.set == nil {
		return Set[T]{}
	}
	return *h.set
}

// Mutate returns a new Handle wrapping fn's transform of the current
// set, leaving any other genome sharing this Handle pointed at the
// original, unmodified Set.
func (h Handle[T]) Mutate(fn func(Set[T]) Set[T]) Handle[T] {
	return NewHandle(fn(h.Set()))
}

// SameSet reports whether two handles currently point at the same
// underlying Set value (used by genomes to decide whether a shared
// allele set can still be assumed identical across two linked genomes).
func (h Handle[T]) SameSet(o Handle[T]) bool {
	return h.set == o.set
}
