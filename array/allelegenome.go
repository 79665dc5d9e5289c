package array

import (
	"github.com/tfki/galib"
	"github.com/tfki/galib/allele"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/rand"
)

// AlleleGenome is a Genome[T] constrained by a per-index allele set:
// element i must belong to Sets[i % len(Sets)]. A single set applies
// uniformly across every index.
type AlleleGenome[T comparable] struct {
	*Genome[T]

	Sets []allele.Handle[T]

	// AlleleInitializer, when set, takes priority over the embedded
	// Genome's Initializer field: UniformInitializer and
	// OrderedInitializer need the Sets vector, which only AlleleGenome
	// carries.
	AlleleInitializer func(r rand.Rand, g *AlleleGenome[T])
}

// AlleleClass is the class identity AlleleGenome registers under.
const AlleleClass galib.ClassID = "array.AlleleGenome"

// NewAllele creates an AlleleGenome of length n over the given allele
// sets. Sets must be non-empty; element i draws from Sets[i % len(Sets)].
func NewAllele[T comparable](n int, resize ResizeBehavior, eval galib.Evaluator, sets ...allele.Set[T]) *AlleleGenome[T] {
	handles := make([]allele.Handle[T], len(sets))
	for i, s := range sets {
		handles[i] = allele.NewHandle(s)
	}
	g := &AlleleGenome[T]{
		Genome: New[T](n, resize, eval),
		Sets:   handles,
	}
	g.SetClass(AlleleClass)
	return g
}

func (g *AlleleGenome[T]) setAt(i int) allele.Set[T] {
	return g.Sets[i%len(g.Sets)].Set()
}

// Initialize implements galib.Genome: it prefers AlleleInitializer over
// the embedded Genome's Initializer, since only the former has access
// to Sets.
func (g *AlleleGenome[T]) Initialize(r rand.Rand) {
	switch {
	case g.AlleleInitializer != nil:
		g.AlleleInitializer(r, g)
	case g.Genome.Initializer != nil:
		g.Genome.Initializer(r, g.Genome)
	}
	g.invalidate()
}

// Evaluate implements galib.Genome, handing the evaluator the
// AlleleGenome itself rather than its embedded array genome.
func (g *AlleleGenome[T]) Evaluate() galib.Fitness {
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

// Clone returns a deep, independent copy, preserving Sets and
// AlleleInitializer (galib.Genome).
func (g *AlleleGenome[T]) Clone() galib.Genome {
	return g.CloneAllele()
}

// CloneAllele returns a deep copy typed as *AlleleGenome[T].
func (g *AlleleGenome[T]) CloneAllele() *AlleleGenome[T] {
	cp := &AlleleGenome[T]{
		Genome:            g.Genome.CloneTyped(),
		Sets:              append([]allele.Handle[T](nil), g.Sets...),
		AlleleInitializer: g.AlleleInitializer,
	}
	return cp
}

// Resize changes the genome's length, subject to its ResizeBehavior.
// Unlike Genome.Resize, positions exposed by growth are filled by
// drawing from their corresponding allele set rather than left
// zero-valued; shrinking behaves identically to Genome.Resize.
func (g *AlleleGenome[T]) Resize(r rand.Rand, n int) error {
	old := g.Len()
	if err := g.Genome.Resize(n); err != nil {
		return err
	}
	if len(g.Sets) == 0 {
		return nil
	}
	for i := old; i < n; i++ {
		g.Set(i, g.setAt(i).Draw(r))
	}
	return nil
}

// UniformInitializer optionally re-randomizes the genome's length
// within its resize policy, then draws every index from its
// corresponding allele set. resizeLen may be nil to keep the genome's
// current length.
func UniformInitializer[T comparable](resizeLen func(r rand.Rand, current ResizeBehavior) int) func(r rand.Rand, g *AlleleGenome[T]) {
	return func(r rand.Rand, g *AlleleGenome[T]) {
		if len(g.Sets) == 0 {
			g.reporter().Report(gaerr.Here(), string(AlleleClass), "UniformInitializer", gaerr.OpUndef, "no allele set configured")
			return
		}
		if resizeLen != nil {
			if n := resizeLen(r, g.ResizeBehavior()); n != g.Len() {
				_ = g.Genome.Resize(n)
			}
		}
		for i := 0; i < g.Len(); i++ {
			g.Set(i, g.setAt(i).Draw(r))
		}
	}
}

// OrderedInitializer writes the (single) allele set sequentially,
// wrapping as needed to fill the genome, then applies a random
// permutation by position-wise swaps. Intended for permutation
// problems, where the allele set enumerates the problem's symbols. It
// assumes a single, finite allele set (Sets[0]).
func OrderedInitializer[T comparable](r rand.Rand, g *AlleleGenome[T]) {
	if len(g.Sets) == 0 {
		g.reporter().Report(gaerr.Here(), string(AlleleClass), "OrderedInitializer", gaerr.OpUndef, "no allele set configured")
		return
	}
	set := g.Sets[0].Set()
	members := set.Members()
	if len(members) == 0 {
		g.reporter().Report(gaerr.Here(), string(AlleleClass), "OrderedInitializer", gaerr.OpUndef, "ordered initializer requires a finite, non-empty allele set")
		return
	}
	for i := 0; i < g.Len(); i++ {
		g.Set(i, members[i%len(members)])
	}
	for i := g.Len() - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		g.Swap(i, j)
	}
}

// FlipMutate replaces chosen indices with a fresh draw from their
// corresponding allele set, at rate p. Below expected mutation count 1
// every index is sampled independently ("sparse" path); otherwise
// exactly ⌊p·L⌋ random indices are chosen ("dense" path), mirroring
// SwapMutate's two-regime shape.
func FlipMutate[T comparable](r rand.Rand, g *AlleleGenome[T], p float64) int {
	l := g.Len()
	if l == 0 || len(g.Sets) == 0 {
		return 0
	}
	count := 0
	expected := p * float64(l)
	if expected < 1 {
		for i := 0; i < l; i++ {
			if r.CoinFlip(p) {
				g.Set(i, g.setAt(i).Draw(r))
				count++
			}
		}
	} else {
		n := int(expected)
		for k := 0; k < n; k++ {
			i := r.Intn(l)
			g.Set(i, g.setAt(i).Draw(r))
			count++
		}
	}
	return count
}
