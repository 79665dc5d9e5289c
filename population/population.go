// Package population implements the sorted genome collection:
// insertion-order storage with a lazily rebuilt, score-sorted view and
// cached aggregate statistics (mean, max, min, stddev, diversity).
// Aggregates go through gonum.org/v1/gonum/stat instead of hand-rolled
// accumulators.
package population

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tfki/galib"
)

// Sense is a Population's sort direction: explicitly Minimize or
// Maximize at construction, with every sorted/best/worst query
// funneling through it. There is no package-global flag.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Comparator measures semantic distance between two genomes in [0,1],
// used by Diversity. Population is agnostic to genome representation;
// callers supply the comparator that matches their concrete genome type
// (e.g. array.Compare wrapped to accept galib.Genome).
type Comparator func(a, b galib.Genome) float64

// Population holds genomes in insertion order, maintaining a
// lazily-rebuilt sorted view and cached aggregate statistics. Any
// mutation (Add, Remove, ReplaceAt, or marking Invalidate after mutating
// a contained genome in place) clears both caches.
type Population struct {
	sense      Sense
	comparator Comparator

	genomes []galib.Genome

	sortedDirty bool
	sorted      []int // indexes into genomes, in sense order

	statsDirty bool
	mean       float64
	max        float64
	min        float64
	stddev     float64

	diversityDirty bool
	diversity      float64
}

// New creates an empty Population with the given sort sense. comparator
// may be nil if Diversity is never called.
func New(sense Sense, comparator Comparator) *Population {
	return &Population{sense: sense, comparator: comparator, sortedDirty: true, statsDirty: true, diversityDirty: true}
}

// Sense reports the population's configured sort direction.
func (p *Population) Sense() Sense { return p.sense }

// Len returns the number of genomes held.
func (p *Population) Len() int { return len(p.genomes) }

// Add appends a genome in insertion order and invalidates caches.
func (p *Population) Add(g galib.Genome) {
	p.genomes = append(p.genomes, g)
	p.invalidate()
}

// At returns the genome at insertion-order index i.
func (p *Population) At(i int) galib.Genome { return p.genomes[i] }

// ReplaceAt overwrites the genome at insertion-order index i and
// invalidates caches.
func (p *Population) ReplaceAt(i int, g galib.Genome) {
	p.genomes[i] = g
	p.invalidate()
}

// Remove deletes the genome at insertion-order index i, preserving the
// order of the remainder, and invalidates caches.
func (p *Population) Remove(i int) {
	p.genomes = append(p.genomes[:i], p.genomes[i+1:]...)
	p.invalidate()
}

// Invalidate marks cached aggregates and the sorted view stale without
// changing membership — call after mutating a contained genome in
// place (e.g. after a mutator or an in-place Evaluate of a changed
// score).
func (p *Population) Invalidate() { p.invalidate() }

func (p *Population) invalidate() {
	p.sortedDirty = true
	p.statsDirty = true
	p.diversityDirty = true
}

// less reports whether genome index a ranks ahead of index b under the
// population's Sense (descending for Maximize, ascending for Minimize).
func (p *Population) less(a, b int) bool {
	sa, sb := p.genomes[a].Score(), p.genomes[b].Score()
	if p.sense == Maximize {
		return sa > sb
	}
	return sa < sb
}

func (p *Population) resort() {
	if !p.sortedDirty {
		return
	}
	idx := make([]int, len(p.genomes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return p.less(idx[i], idx[j]) })
	p.sorted = idx
	p.sortedDirty = false
}

// Sorted returns genomes in sense order (best first).
func (p *Population) Sorted() []galib.Genome {
	p.resort()
	out := make([]galib.Genome, len(p.sorted))
	for i, idx := range p.sorted {
		out[i] = p.genomes[idx]
	}
	return out
}

// Best returns the best k genomes in sense order. k is clamped to the
// population's size.
func (p *Population) Best(k int) []galib.Genome {
	p.resort()
	if k > len(p.sorted) {
		k = len(p.sorted)
	}
	out := make([]galib.Genome, k)
	for i := 0; i < k; i++ {
		out[i] = p.genomes[p.sorted[i]]
	}
	return out
}

// Worst returns the worst k genomes in reverse-sense order (worst
// first). k is clamped to the population's size.
func (p *Population) Worst(k int) []galib.Genome {
	p.resort()
	n := len(p.sorted)
	if k > n {
		k = n
	}
	out := make([]galib.Genome, k)
	for i := 0; i < k; i++ {
		out[i] = p.genomes[p.sorted[n-1-i]]
	}
	return out
}

func (p *Population) scores() []float64 {
	out := make([]float64, len(p.genomes))
	for i, g := range p.genomes {
		out[i] = float64(g.Score())
	}
	return out
}

func (p *Population) recomputeStats() {
	if !p.statsDirty {
		return
	}
	p.statsDirty = false
	if len(p.genomes) == 0 {
		p.mean, p.max, p.min, p.stddev = 0, 0, 0, 0
		return
	}
	scores := p.scores()
	p.mean = stat.Mean(scores, nil)
	p.stddev = stat.StdDev(scores, nil)
	p.max, p.min = scores[0], scores[0]
	for _, s := range scores[1:] {
		if s > p.max {
			p.max = s
		}
		if s < p.min {
			p.min = s
		}
	}
}

// Mean returns the cached mean score, recomputing if stale.
func (p *Population) Mean() float64 { p.recomputeStats(); return p.mean }

// Max returns the cached maximum score, recomputing if stale.
func (p *Population) Max() float64 { p.recomputeStats(); return p.max }

// Min returns the cached minimum score, recomputing if stale.
func (p *Population) Min() float64 { p.recomputeStats(); return p.min }

// StdDev returns the cached score standard deviation, recomputing if
// stale.
func (p *Population) StdDev() float64 { p.recomputeStats(); return p.stddev }

// Best1Score returns the single best genome's score, oriented by
// Sense.
func (p *Population) Best1Score() float64 {
	if p.sense == Maximize {
		return p.Max()
	}
	return p.Min()
}

// Diversity returns the mean pairwise comparator distance across the
// population. It is O(N²) and recomputed only on request. Returns 0
// for populations of size < 2 or when no comparator was configured.
func (p *Population) Diversity() float64 {
	if !p.diversityDirty {
		return p.diversity
	}
	p.diversityDirty = false
	n := len(p.genomes)
	if n < 2 || p.comparator == nil {
		p.diversity = 0
		return 0
	}
	sum := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := p.comparator(p.genomes[i], p.genomes[j])
			if d >= 0 {
				sum += d
				pairs++
			}
		}
	}
	if pairs == 0 {
		p.diversity = 0
		return 0
	}
	p.diversity = sum / float64(pairs)
	return p.diversity
}

// RandomIndex returns a uniform-random insertion-order index, for
// selection schemes that need raw uniform access without going through
// the sorted view.
func (p *Population) RandomIndex(intn func(int) int) int {
	return intn(len(p.genomes))
}
