// Package galib is a general-purpose genetic algorithm library: a
// framework for evolutionary search over user-defined solution
// representations. A user supplies a representation of a candidate
// solution (a Genome) and an objective function scoring it; the driver
// in package ga evolves a population toward higher-scoring solutions by
// repeated selection, recombination, mutation, and replacement.
//
// This package holds the identity every concrete genome representation
// shares. Package array implements the one representation this library
// ships — the 1-D array genome family — and its variation operators.
package galib

import (
	"io"

	"github.com/tfki/galib/rand"
)

// Fitness is the objective value a Genome evaluates to.
type Fitness float64

// ClassID tags a genome's concrete representation so operators that only
// make sense for one representation can safely refuse to run against
// another.
type ClassID string

// Evaluator scores a genome. It must be pure with respect to the
// genome's content: it may read UserData but must not mutate state the
// rest of the GA relies on.
type Evaluator func(g Genome) Fitness

// Genome is the abstract identity every concrete representation
// implements. Crossover is deliberately not a Genome
// method: it is a free function keyed to a concrete representation
// (package array's operators), because it produces new genomes rather
// than mutating one, and because two genomes of mismatched
// representations must fail cleanly rather than type-assert inside an
// interface method.
type Genome interface {
	// Class reports the concrete representation's identity.
	Class() ClassID

	// Evaluated reports whether Score is current. Any mutation, resize,
	// write, or copy must clear this until the evaluator runs again.
	Evaluated() bool

	// Score returns the last-evaluated fitness. Evaluate must be called
	// at least once (and after every invalidation) before Score is
	// meaningful.
	Score() Fitness

	// Evaluate scores the genome with its evaluator and marks it
	// evaluated.
	Evaluate() Fitness

	// Clone returns a deep, independent copy.
	Clone() Genome

	// UserData returns the opaque handle the evaluator may consult.
	UserData() any

	// SetUserData replaces the opaque handle.
	SetUserData(v any)

	// Initialize resets the genome to a fresh random state using its
	// configured initializer and invalidates Evaluated.
	Initialize(r rand.Rand)

	// WriteTo serializes the genome as text; element-type specific for
	// array genomes, space-separated with no trailing newline.
	WriteTo(w io.Writer) (int, error)
}
