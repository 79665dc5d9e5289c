// Package array implements the 1-D array genome family: a length-typed
// sequence of an arbitrary element type T, its resize policy, and the
// full family of variation operators (uniform, one-point, two-point,
// even/odd, partial-match, order, and cycle crossover; the swap
// mutator; the element comparator), plus the allele-constrained variant
// (AlleleGenome).
package array

import (
	"fmt"
	"io"
	"strings"

	"github.com/tfki/galib"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/rand"
)

// Initializer resets a genome to a fresh random state.
type Initializer[T comparable] func(r rand.Rand, g *Genome[T])

// MutatorFunc perturbs a genome in place and returns the number of
// positions changed.
type MutatorFunc[T comparable] func(r rand.Rand, g *Genome[T], p float64) int

// ComparatorFunc returns a semantic distance in [0,1], or -1 if a and b
// are incompatible.
type ComparatorFunc[T comparable] func(a, b *Genome[T]) float64

// Genome is the 1-D array genome: a contiguous sequence of T of length
// n, governed by a ResizeBehavior.
type Genome[T comparable] struct {
	elements []T
	resize   ResizeBehavior

	evaluated bool
	score     galib.Fitness
	evaluator galib.Evaluator
	userData  any
	class     galib.ClassID

	Initializer Initializer[T]
	Mutator     MutatorFunc[T]
	Comparator  ComparatorFunc[T]

	// Reporter receives precondition-violation errors from crossover and
	// mutation operators. A nil Reporter falls back to gaerr.Default.
	Reporter *gaerr.Reporter
}

// DefaultClass is used when a caller doesn't set a more specific class
// identity.
const DefaultClass galib.ClassID = "array.Genome"

// New creates a Genome of length n governed by resize, with evaluator
// eval (may be nil until Evaluate is needed).
func New[T comparable](n int, resize ResizeBehavior, eval galib.Evaluator) *Genome[T] {
	return &Genome[T]{
		elements:  make([]T, n),
		resize:    resize,
		evaluator: eval,
		class:     DefaultClass,
	}
}

func (g *Genome[T]) reporter() *gaerr.Reporter {
	if g.Reporter != nil {
		return g.Reporter
	}
	return gaerr.Default
}

// Class implements galib.Genome.
func (g *Genome[T]) Class() galib.ClassID { return g.class }

// SetClass overrides the class identity (used by AlleleGenome and other
// specializations built on top of Genome).
func (g *Genome[T]) SetClass(c galib.ClassID) { g.class = c }

// Evaluated implements galib.Genome.
func (g *Genome[T]) Evaluated() bool { return g.evaluated }

// Score implements galib.Genome.
func (g *Genome[T]) Score() galib.Fitness { return g.score }

// Evaluate implements galib.Genome.
func (g *Genome[T]) Evaluate() galib.Fitness {
	if g.evaluated {
		return g.score
	}
	if g.evaluator == nil {
		g.reporter().Report(gaerr.Here(), string(g.class), "Evaluate", gaerr.OpUndef, "no evaluator configured")
		return g.score
	}
	g.score = g.evaluator(g)
	g.evaluated = true
	return g.score
}

// SetEvaluator installs the objective function.
func (g *Genome[T]) SetEvaluator(eval galib.Evaluator) { g.evaluator = eval }

// UserData implements galib.Genome.
func (g *Genome[T]) UserData() any { return g.userData }

// SetUserData implements galib.Genome.
func (g *Genome[T]) SetUserData(v any) { g.userData = v }

// Initialize implements galib.Genome: resets the genome to a fresh
// random state and invalidates Evaluated.
func (g *Genome[T]) Initialize(r rand.Rand) {
	if g.Initializer != nil {
		g.Initializer(r, g)
	}
	g.invalidate()
}

func (g *Genome[T]) invalidate() { g.evaluated = false }

// Len returns the current length.
func (g *Genome[T]) Len() int { return len(g.elements) }

// At returns the element at index i.
func (g *Genome[T]) At(i int) T { return g.elements[i] }

// Elements returns the live backing slice (callers must not retain it
// across a Resize).
func (g *Genome[T]) Elements() []T { return g.elements }

// Set writes v at index i and invalidates Evaluated.
func (g *Genome[T]) Set(i int, v T) {
	g.elements[i] = v
	g.invalidate()
}

// SetAll replaces the whole element slice (length must already satisfy
// the resize policy) and invalidates Evaluated.
func (g *Genome[T]) SetAll(values []T) {
	g.elements = append([]T(nil), values...)
	g.invalidate()
}

// Swap exchanges the elements at i and j and invalidates Evaluated if
// they differ.
func (g *Genome[T]) Swap(i, j int) {
	if i == j {
		return
	}
	g.elements[i], g.elements[j] = g.elements[j], g.elements[i]
	g.invalidate()
}

// Resize changes the genome's length, subject to its ResizeBehavior. New
// positions exposed by growth are zero-valued; a caller that needs
// allele-constrained fill-in should use AlleleGenome.Resize instead.
// A successful resize invalidates Evaluated; a rejected one leaves the
// genome untouched.
func (g *Genome[T]) Resize(n int) error {
	if !g.resize.InRange(n) {
		err := g.reporter().Report(gaerr.Here(), string(g.class), "Resize", gaerr.BadResizeBehavior,
			fmt.Sprintf("length %d outside policy [%d,%d]", n, g.resize.Min, g.resize.Max))
		return err
	}
	if n <= len(g.elements) {
		g.elements = g.elements[:n]
	} else {
		g.elements = append(g.elements, make([]T, n-len(g.elements))...)
	}
	g.invalidate()
	return nil
}

// ResizeBehavior reports the genome's resize policy.
func (g *Genome[T]) ResizeBehavior() ResizeBehavior { return g.resize }

// Clone returns a deep, independent copy (galib.Genome).
func (g *Genome[T]) Clone() galib.Genome {
	return g.CloneTyped()
}

// CloneTyped returns a deep copy typed as *Genome[T], convenient for
// callers that already know the concrete representation (crossover
// operators, population internals).
func (g *Genome[T]) CloneTyped() *Genome[T] {
	cp := &Genome[T]{
		elements:    append([]T(nil), g.elements...),
		resize:      g.resize,
		evaluated:   false,
		score:       g.score,
		evaluator:   g.evaluator,
		userData:    g.userData,
		class:       g.class,
		Initializer: g.Initializer,
		Mutator:     g.Mutator,
		Comparator:  g.Comparator,
		Reporter:    g.Reporter,
	}
	return cp
}

// WriteTo implements galib.Genome: elements space-separated, no trailing
// newline.
func (g *Genome[T]) WriteTo(w io.Writer) (int, error) {
	parts := make([]string, len(g.elements))
	for i, v := range g.elements {
		parts[i] = fmt.Sprint(v)
	}
	return io.WriteString(w, strings.Join(parts, " "))
}

// ReadFrom reads whitespace-separated elements into the genome, one per
// current position. The scan is element-type-specialized through fmt's
// verbs, so it covers the numeric and string element kinds WriteTo
// round-trips; arbitrary struct T is not supported. On a short or
// malformed stream the genome is left unchanged and ReadError is
// reported.
func (g *Genome[T]) ReadFrom(rd io.Reader) error {
	vals := make([]T, len(g.elements))
	for i := range vals {
		if _, err := fmt.Fscan(rd, &vals[i]); err != nil {
			return g.reporter().Report(gaerr.Here(), string(g.class), "ReadFrom", gaerr.ReadError, err.Error())
		}
	}
	g.elements = vals
	g.invalidate()
	return nil
}
