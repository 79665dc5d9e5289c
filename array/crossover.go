package array

import (
	"github.com/tfki/galib/bitstring"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/rand"
)

// AsGenome downcasts a galib.Genome to *Genome[T], reporting
// ObjectTypeMismatch instead of panicking when g isn't actually a
// *Genome[T].
func AsGenome[T comparable](r *gaerr.Reporter, g any, function string) (*Genome[T], bool) {
	typed, ok := g.(*Genome[T])
	if !ok {
		rep(r).Report(gaerr.Here(), string(DefaultClass), function, gaerr.ObjectTypeMismatch, "genome is not *array.Genome[T]")
		return nil, false
	}
	return typed, true
}

func rep(r *gaerr.Reporter) *gaerr.Reporter {
	if r == nil {
		return gaerr.Default
	}
	return r
}

// --- Swap mutator ----------------------------------------------------------

// SwapMutate exchanges element pairs at rate p: below an expected swap
// count of 1 each position is sampled independently; above it, exactly
// ⌊p·L⌋ random pair swaps run. Returns the number of swaps performed
// (Genome.Swap marks the genome unevaluated per swap).
func SwapMutate[T comparable](r rand.Rand, g *Genome[T], p float64) int {
	l := g.Len()
	if l == 0 || p <= 0 {
		return 0
	}
	expected := p * float64(l)
	count := 0
	if expected < 1 {
		for i := 0; i < l; i++ {
			if r.CoinFlip(p) {
				j := r.Intn(l)
				if j != i {
					g.Swap(i, j)
					count++
				}
			}
		}
	} else {
		n := int(expected)
		for k := 0; k < n; k++ {
			i := r.Intn(l)
			j := r.Intn(l)
			if i != j {
				g.Swap(i, j)
				count++
			}
		}
	}
	return count
}

// --- Element comparator ----------------------------------------------------

// Compare returns -1 if lengths differ, otherwise the fraction of
// positions that differ (0 for equal-length, zero-length genomes).
func Compare[T comparable](a, b *Genome[T]) float64 {
	if a.Len() != b.Len() {
		return -1
	}
	if a.Len() == 0 {
		return 0
	}
	diff := 0
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			diff++
		}
	}
	return float64(diff) / float64(a.Len())
}

// --- Uniform crossover -----------------------------------------------------

// UniformCrossover mixes parents element-wise by random mask bits; for
// unequal lengths both children share one mask over the common prefix.
// sis and/or bro may be nil to request only one child; both nil is a
// no-op returning 0.
func UniformCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	if sis != nil && bro != nil {
		if sis.Len() == bro.Len() && mom.Len() == dad.Len() && sis.Len() == mom.Len() {
			for i := sis.Len() - 1; i >= 0; i-- {
				if rng.Bit() {
					sis.Set(i, mom.At(i))
					bro.Set(i, dad.At(i))
				} else {
					sis.Set(i, dad.At(i))
					bro.Set(i, mom.At(i))
				}
			}
		} else {
			max := sis.Len()
			if bro.Len() > max {
				max = bro.Len()
			}
			min := mom.Len()
			if dad.Len() < min {
				min = dad.Len()
			}
			mask := bitstring.New(max)
			for i := 0; i < max; i++ {
				mask.Set(i, rng.Bit())
			}
			start := min - 1
			if sis.Len()-1 < start {
				start = sis.Len() - 1
			}
			for i := start; i >= 0; i-- {
				if mask.Get(i) {
					sis.Set(i, mom.At(i))
				} else {
					sis.Set(i, dad.At(i))
				}
			}
			start = min - 1
			if bro.Len()-1 < start {
				start = bro.Len() - 1
			}
			for i := start; i >= 0; i-- {
				if mask.Get(i) {
					bro.Set(i, dad.At(i))
				} else {
					bro.Set(i, mom.At(i))
				}
			}
		}
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		if mom.Len() == dad.Len() && child.Len() == mom.Len() {
			for i := child.Len() - 1; i >= 0; i-- {
				if rng.Bit() {
					child.Set(i, mom.At(i))
				} else {
					child.Set(i, dad.At(i))
				}
			}
		} else {
			min := mom.Len()
			if dad.Len() < min {
				min = dad.Len()
			}
			if child.Len() < min {
				min = child.Len()
			}
			for i := min - 1; i >= 0; i-- {
				if rng.Bit() {
					child.Set(i, mom.At(i))
				} else {
					child.Set(i, dad.At(i))
				}
			}
		}
		return 1
	}
	return 0
}

// --- Single-point (one-point) crossover ------------------------------------

// OnePointCrossover splices each child from one parent's head and the
// other's tail at a random site. Fixed-size children require all four
// lengths equal; variable-size children pick independent sites per
// parent and resize to fit; mixing fixed and variable children fails.
func OnePointCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	r = rep(r)
	if sis != nil && bro != nil {
		momFixed := sis.ResizeBehavior().IsFixed()
		broFixed := bro.ResizeBehavior().IsFixed()

		var momsite, dadsite, momlen, dadlen int
		if momFixed && broFixed {
			if mom.Len() != dad.Len() || sis.Len() != bro.Len() || sis.Len() != mom.Len() {
				r.Report(gaerr.Here(), string(DefaultClass), "OnePointCrossover", gaerr.SameLengthRequired, "fixed-size children require equal parent/child lengths")
				return 0
			}
			momsite = rng.IntRange(0, mom.Len())
			dadsite = momsite
			momlen = mom.Len() - momsite
			dadlen = momlen
		} else if momFixed != broFixed {
			r.Report(gaerr.Here(), string(DefaultClass), "OnePointCrossover", gaerr.SameBehaviorRequired, "children must share a resize behaviour")
			return 0
		} else {
			momsite = rng.IntRange(0, mom.Len())
			dadsite = rng.IntRange(0, dad.Len())
			momlen = mom.Len() - momsite
			dadlen = dad.Len() - dadsite
			if err := sis.Resize(momsite + dadlen); err != nil {
				return 0
			}
			if err := bro.Resize(dadsite + momlen); err != nil {
				return 0
			}
		}

		copyRange(sis, mom, 0, 0, momsite)
		copyRange(sis, dad, momsite, dadsite, dadlen)
		copyRange(bro, dad, 0, 0, dadsite)
		copyRange(bro, mom, dadsite, momsite, momlen)
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		var momsite, dadsite, momlen, dadlen int
		if child.ResizeBehavior().IsFixed() {
			if mom.Len() != dad.Len() || child.Len() != mom.Len() {
				r.Report(gaerr.Here(), string(DefaultClass), "OnePointCrossover", gaerr.SameLengthRequired, "fixed-size child requires equal parent lengths")
				return 0
			}
			momsite = rng.IntRange(0, mom.Len())
			dadsite = momsite
			momlen = mom.Len() - momsite
			dadlen = momlen
		} else {
			momsite = rng.IntRange(0, mom.Len())
			dadsite = rng.IntRange(0, dad.Len())
			momlen = mom.Len() - momsite
			dadlen = dad.Len() - dadsite
			if err := child.Resize(momsite + dadlen); err != nil {
				return 0
			}
		}
		if rng.Bit() {
			copyRange(child, mom, 0, 0, momsite)
			copyRange(child, dad, momsite, dadsite, dadlen)
		} else {
			copyRange(child, dad, 0, 0, dadsite)
			copyRange(child, mom, dadsite, momsite, momlen)
		}
		return 1
	}
	return 0
}

// copyRange copies n elements from src[srcOff:srcOff+n] into
// dst[dstOff:dstOff+n].
func copyRange[T comparable](dst, src *Genome[T], dstOff, srcOff, n int) {
	for i := 0; i < n; i++ {
		dst.Set(dstOff+i, src.At(srcOff+i))
	}
}

// --- Two-point crossover -----------------------------------------------------

// TwoPointCrossover builds each child from three segments: outer from
// the primary parent, middle from the secondary. Fixed-size children
// share one sorted site pair; variable-size children pick a pair per
// parent and resize; mixed resize behaviour produces no children.
func TwoPointCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	r = rep(r)
	pickSorted := func(n int) (int, int) {
		a, b := rng.IntRange(0, n), rng.IntRange(0, n)
		if a > b {
			a, b = b, a
		}
		return a, b
	}

	if sis != nil && bro != nil {
		momFixed := sis.ResizeBehavior().IsFixed()
		broFixed := bro.ResizeBehavior().IsFixed()

		var momsite, momlen, dadsite, dadlen [2]int
		if momFixed && broFixed {
			if mom.Len() != dad.Len() || sis.Len() != bro.Len() || sis.Len() != mom.Len() {
				r.Report(gaerr.Here(), string(DefaultClass), "TwoPointCrossover", gaerr.SameLengthRequired, "fixed-size children require equal parent/child lengths")
				return 0
			}
			momsite[0], momsite[1] = pickSorted(mom.Len())
			momlen[0] = momsite[1] - momsite[0]
			momlen[1] = mom.Len() - momsite[1]
			dadsite, dadlen = momsite, momlen
		} else if momFixed != broFixed {
			return 0
		} else {
			momsite[0], momsite[1] = pickSorted(mom.Len())
			momlen[0] = momsite[1] - momsite[0]
			momlen[1] = mom.Len() - momsite[1]
			dadsite[0], dadsite[1] = pickSorted(dad.Len())
			dadlen[0] = dadsite[1] - dadsite[0]
			dadlen[1] = dad.Len() - dadsite[1]
			if err := sis.Resize(momsite[0] + dadlen[0] + momlen[1]); err != nil {
				return 0
			}
			if err := bro.Resize(dadsite[0] + momlen[0] + dadlen[1]); err != nil {
				return 0
			}
		}

		copyRange(sis, mom, 0, 0, momsite[0])
		copyRange(sis, dad, momsite[0], dadsite[0], dadlen[0])
		copyRange(sis, mom, momsite[0]+dadlen[0], momsite[1], momlen[1])
		copyRange(bro, dad, 0, 0, dadsite[0])
		copyRange(bro, mom, dadsite[0], momsite[0], momlen[0])
		copyRange(bro, dad, dadsite[0]+momlen[0], dadsite[1], dadlen[1])
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		var momsite, momlen, dadsite, dadlen [2]int
		if child.ResizeBehavior().IsFixed() {
			if mom.Len() != dad.Len() || child.Len() != mom.Len() {
				r.Report(gaerr.Here(), string(DefaultClass), "TwoPointCrossover", gaerr.SameLengthRequired, "fixed-size child requires equal parent lengths")
				return 0
			}
			momsite[0], momsite[1] = pickSorted(mom.Len())
			momlen[0] = momsite[1] - momsite[0]
			momlen[1] = mom.Len() - momsite[1]
			dadsite, dadlen = momsite, momlen
		} else {
			momsite[0], momsite[1] = pickSorted(mom.Len())
			momlen[0] = momsite[1] - momsite[0]
			momlen[1] = mom.Len() - momsite[1]
			dadsite[0], dadsite[1] = pickSorted(dad.Len())
			dadlen[0] = dadsite[1] - dadsite[0]
			dadlen[1] = dad.Len() - dadsite[1]
			if err := child.Resize(momsite[0] + dadlen[0] + momlen[1]); err != nil {
				return 0
			}
		}
		if rng.Bit() {
			copyRange(child, mom, 0, 0, momsite[0])
			copyRange(child, dad, momsite[0], dadsite[0], dadlen[0])
			copyRange(child, mom, momsite[0]+dadlen[0], momsite[1], momlen[1])
		} else {
			copyRange(child, dad, 0, 0, dadsite[0])
			copyRange(child, mom, dadsite[0], momsite[0], momlen[0])
			copyRange(child, dad, dadsite[0]+momlen[0], dadsite[1], dadlen[1])
		}
		return 1
	}
	return 0
}

// --- Even/odd crossover ------------------------------------------------------

// EvenOddCrossover gives sis mom's even indices and dad's odd indices;
// bro is the complement. Unequal lengths copy up to the shared prefix.
func EvenOddCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	if sis != nil && bro != nil {
		if sis.Len() == bro.Len() && mom.Len() == dad.Len() && sis.Len() == mom.Len() {
			i := sis.Len() - 1
			if i%2 == 1 {
				sis.Set(i, dad.At(i))
				bro.Set(i, mom.At(i))
				i--
			}
			for ; i >= 1; i -= 2 {
				sis.Set(i, mom.At(i))
				bro.Set(i, dad.At(i))
				sis.Set(i-1, dad.At(i-1))
				bro.Set(i-1, mom.At(i-1))
			}
			if i == 0 {
				sis.Set(0, mom.At(0))
				bro.Set(0, dad.At(0))
			}
		} else {
			min := mom.Len()
			if dad.Len() < min {
				min = dad.Len()
			}
			start := min - 1
			if sis.Len()-1 < start {
				start = sis.Len() - 1
			}
			for i := start; i >= 0; i-- {
				if i%2 == 0 {
					sis.Set(i, mom.At(i))
				} else {
					sis.Set(i, dad.At(i))
				}
			}
			start = min - 1
			if bro.Len()-1 < start {
				start = bro.Len() - 1
			}
			for i := start; i >= 0; i-- {
				if i%2 == 0 {
					bro.Set(i, dad.At(i))
				} else {
					bro.Set(i, mom.At(i))
				}
			}
		}
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		if mom.Len() == dad.Len() && child.Len() == mom.Len() {
			i := child.Len() - 1
			if i%2 == 1 {
				child.Set(i, dad.At(i))
				i--
			}
			for ; i >= 1; i -= 2 {
				child.Set(i, mom.At(i))
				child.Set(i-1, dad.At(i-1))
			}
			if i == 0 {
				child.Set(0, mom.At(0))
			}
		} else {
			min := mom.Len()
			if dad.Len() < min {
				min = dad.Len()
			}
			if child.Len() < min {
				min = child.Len()
			}
			for i := min - 1; i >= 0; i-- {
				if i%2 == 0 {
					child.Set(i, mom.At(i))
				} else {
					child.Set(i, dad.At(i))
				}
			}
		}
		return 1
	}
	return 0
}

// --- Partial-match crossover (PMX) ------------------------------------------

// PartialMatchCrossover swaps each window position into the place its
// counterpart value holds in the other parent. Requires equal parent
// lengths; fails with BadParentLength otherwise. Preserves the multiset
// of elements, so permutation parents yield permutation children.
func PartialMatchCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	r = rep(r)
	if mom.Len() != dad.Len() {
		r.Report(gaerr.Here(), string(DefaultClass), "PartialMatchCrossover", gaerr.BadParentLength, "parents must be the same length")
		return 0
	}
	a := rng.IntRange(0, mom.Len())
	b := rng.IntRange(0, mom.Len())
	if b < a {
		a, b = b, a
	}

	pmxOne := func(child, p1, p2 *Genome[T]) {
		child.SetAll(p1.Elements())
		for i, index := a, a; i < b; i, index = i+1, index+1 {
			j := 0
			for j < child.Len() && child.At(j) != p2.At(index) {
				j++
			}
			child.Swap(i, j)
		}
	}

	if sis != nil && bro != nil {
		pmxOne(sis, mom, dad)
		pmxOne(bro, dad, mom)
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		p1, p2 := mom, dad
		if !rng.Bit() {
			p1, p2 = dad, mom
		}
		pmxOne(child, p1, p2)
		return 1
	}
	return 0
}

// --- Order crossover (OX) ----------------------------------------------------

func isHole[T comparable](child, other *Genome[T], index, a, b int) bool {
	for k := a; k < b; k++ {
		if child.At(index) == other.At(k) {
			return true
		}
	}
	return false
}

func orderCrossoverOne[T comparable](child, p1, p2 *Genome[T], a, b int) {
	size := child.Len()
	child.SetAll(p1.Elements())

	i, index := 0, b
	for ; i < size; i, index = i+1, index+1 {
		if index >= size {
			index = 0
		}
		if isHole(child, p2, index, a, b) {
			break
		}
	}
	for ; i < size-b+a; i, index = i+1, index+1 {
		if index >= size {
			index = 0
		}
		j := index
		for {
			j++
			if j >= size {
				j = 0
			}
			if !isHole(child, p2, j, a, b) {
				break
			}
		}
		child.Swap(index, j)
	}

	for i := a; i < b; i++ {
		if child.At(i) != p2.At(i) {
			for j := i + 1; j < b; j++ {
				if child.At(j) == p2.At(i) {
					child.Swap(i, j)
					break
				}
			}
		}
	}
}

// OrderCrossover keeps the cyclic order of each child's non-hole
// elements outside the window while the window itself takes the order
// induced by the other parent (a position is a hole when its value
// appears in the other parent's window). Requires equal parent lengths;
// fails with BadParentLength otherwise.
func OrderCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	r = rep(r)
	if mom.Len() != dad.Len() {
		r.Report(gaerr.Here(), string(DefaultClass), "OrderCrossover", gaerr.BadParentLength, "parents must be the same length")
		return 0
	}
	a := rng.IntRange(0, mom.Len())
	b := rng.IntRange(0, mom.Len())
	if b < a {
		a, b = b, a
	}

	if sis != nil && bro != nil {
		orderCrossoverOne(sis, mom, dad, a, b)
		orderCrossoverOne(bro, dad, mom, a, b)
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		p1, p2 := mom, dad
		if !rng.Bit() {
			p1, p2 = dad, mom
		}
		orderCrossoverOne(child, p1, p2, a, b)
		return 1
	}
	return 0
}

// --- Cycle crossover (CX) ------------------------------------------------------

func cycleCrossoverOne[T comparable](child, p1, p2 *Genome[T]) {
	size := child.Len()
	mask := bitstring.NewMask(size)

	child.Set(0, p1.At(0))
	mask.Set(0, true)
	current := 0
	for p2.At(current) != p1.At(0) {
		for i := 0; i < size; i++ {
			if p1.At(i) == p2.At(current) {
				child.Set(i, p1.At(i))
				mask.Set(i, true)
				current = i
				break
			}
		}
	}
	for i := 0; i < size; i++ {
		if !mask.Get(i) {
			child.Set(i, p2.At(i))
		}
	}
}

// CycleCrossover copies the cycle rooted at position 0 from the primary
// parent and fills every remaining position from the secondary.
// Requires equal parent lengths; fails with BadParentLength otherwise.
func CycleCrossover[T comparable](r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int {
	r = rep(r)
	if mom.Len() != dad.Len() {
		r.Report(gaerr.Here(), string(DefaultClass), "CycleCrossover", gaerr.BadParentLength, "parents must be the same length")
		return 0
	}

	if sis != nil && bro != nil {
		if sis.Len() != mom.Len() {
			sis.Resize(mom.Len())
		}
		if bro.Len() != mom.Len() {
			bro.Resize(mom.Len())
		}
		cycleCrossoverOne(sis, mom, dad)
		cycleCrossoverOne(bro, dad, mom)
		return 2
	}
	if sis != nil || bro != nil {
		child := sis
		if child == nil {
			child = bro
		}
		p1, p2 := mom, dad
		if !rng.Bit() {
			p1, p2 = dad, mom
		}
		if child.Len() != p1.Len() {
			child.Resize(p1.Len())
		}
		cycleCrossoverOne(child, p1, p2)
		return 1
	}
	return 0
}
