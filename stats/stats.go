// Package stats tracks the performance record of one GA run: operation
// counters, online/offline performance, the convergence ratio, an
// all-time best-genome archive, and flushable per-generation score
// vectors. Aggregates go through gonum.org/v1/gonum/stat.
package stats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/tfki/galib"
	"github.com/tfki/galib/population"
)

// Selector is a bitmask over which per-generation columns Flush
// writes.
type Selector int

const (
	SelectMean Selector = 1 << iota
	SelectMax
	SelectMin
	SelectDeviation
	SelectDiversity
	SelectAll = SelectMean | SelectMax | SelectMin | SelectDeviation | SelectDiversity
)

// generationRecord is one row of the per-generation score vectors.
type generationRecord struct {
	Gen       int
	Mean      float64
	Max       float64
	Min       float64
	StdDev    float64
	Diversity float64
}

// Statistics accumulates the performance record of one GA run.
type Statistics struct {
	// Counters since the last Reset.
	Selections            uint64
	Crossovers            uint64
	Mutations             uint64
	Replacements          uint64
	IndividualEvaluations uint64
	PopulationEvaluations uint64

	sense population.Sense

	generation int

	maxEver float64
	minEver float64

	onlineSum   float64
	onlineCount int

	offlineMaxSum float64
	offlineMinSum float64

	current generationRecord

	nConvergence int
	convWindow   []float64 // ring buffer of best scores, length <= nConvergence
	convAt       int
	convFilled   int

	records   []generationRecord
	flushFreq int
	selected  Selector

	bestCap        int
	bestAll        []galib.Genome
	bestComparator func(a, b galib.Genome) bool // true if a strictly better than b, per sense
}

// New creates a Statistics tracker. nConvergence is the rolling window
// size (default 10); nBestGenomes is the all-time archive size (default
// 1); flushFreq is how many generations accumulate before Flush writes
// and clears the per-generation vectors.
func New(sense population.Sense, nConvergence, nBestGenomes, flushFreq int, selected Selector) *Statistics {
	if nConvergence < 1 {
		nConvergence = 10
	}
	if nBestGenomes < 1 {
		nBestGenomes = 1
	}
	s := &Statistics{
		sense:        sense,
		nConvergence: nConvergence,
		convWindow:   make([]float64, nConvergence),
		flushFreq:    flushFreq,
		selected:     selected,
		bestCap:      nBestGenomes,
	}
	s.bestComparator = func(a, b galib.Genome) bool {
		if sense == population.Maximize {
			return a.Score() > b.Score()
		}
		return a.Score() < b.Score()
	}
	return s
}

// Generation returns the current generation counter.
func (s *Statistics) Generation() int { return s.generation }

// MaxEver returns the highest score seen across the run's lifetime,
// whatever the sense (the best score only under Maximize).
func (s *Statistics) MaxEver() float64 { return s.maxEver }

// MinEver returns the lowest score seen across the run's lifetime,
// whatever the sense (the worst score only under Maximize).
func (s *Statistics) MinEver() float64 { return s.minEver }

// Online returns the mean of every generation's mean score.
func (s *Statistics) Online() float64 {
	if s.onlineCount == 0 {
		return 0
	}
	return s.onlineSum / float64(s.onlineCount)
}

// OfflineMax returns the mean of every generation's maximum score.
func (s *Statistics) OfflineMax() float64 {
	if s.generation == 0 {
		return 0
	}
	return s.offlineMaxSum / float64(s.generation)
}

// OfflineMin returns the mean of every generation's minimum score.
func (s *Statistics) OfflineMin() float64 {
	if s.generation == 0 {
		return 0
	}
	return s.offlineMinSum / float64(s.generation)
}

// Current returns the most recently recorded generation's aggregates.
func (s *Statistics) Current() (mean, max, min, stddev, diversity float64) {
	return s.current.Mean, s.current.Max, s.current.Min, s.current.StdDev, s.current.Diversity
}

// Convergence returns score_oldest / score_newest over the last
// nConvergence generations' best scores, approaching 1 as progress
// stalls. Returns 0 until the window has filled or when the denominator
// is zero.
func (s *Statistics) Convergence() float64 {
	if s.convFilled < s.nConvergence {
		return 0
	}
	newest := s.convWindow[(s.convAt-1+s.nConvergence)%s.nConvergence]
	oldest := s.convWindow[s.convAt%s.nConvergence]
	if newest == 0 {
		return 0
	}
	return oldest / newest
}

// BestPopulation returns the all-time best archive, sense-ordered best
// first.
func (s *Statistics) BestPopulation() []galib.Genome {
	out := make([]galib.Genome, len(s.bestAll))
	copy(out, s.bestAll)
	return out
}

// BestIndividual returns the nth all-time best genome (0 = best).
func (s *Statistics) BestIndividual(n int) galib.Genome {
	if n < 0 || n >= len(s.bestAll) {
		return nil
	}
	return s.bestAll[n]
}

// Reset clears all counters and accumulated records.
func (s *Statistics) Reset() {
	s.Selections, s.Crossovers, s.Mutations, s.Replacements = 0, 0, 0, 0
	s.IndividualEvaluations, s.PopulationEvaluations = 0, 0
	s.generation = 0
	s.onlineSum, s.onlineCount = 0, 0
	s.offlineMaxSum, s.offlineMinSum = 0, 0
	s.convAt, s.convFilled = 0, 0
	s.records = nil
	s.bestAll = nil
}

// Update is called once per generation: it refreshes
// current-generation aggregates, online/offline performance,
// the all-time best archive, the convergence window, and appends a row
// to the per-generation vectors.
func (s *Statistics) Update(p *population.Population) {
	s.generation++
	s.PopulationEvaluations++

	mean, max, min, stddev := p.Mean(), p.Max(), p.Min(), p.StdDev()
	diversity := 0.0
	if s.selected&SelectDiversity != 0 {
		diversity = p.Diversity()
	}
	s.current = generationRecord{Gen: s.generation, Mean: mean, Max: max, Min: min, StdDev: stddev, Diversity: diversity}

	if s.generation == 1 {
		s.maxEver, s.minEver = max, min
	} else {
		if max > s.maxEver {
			s.maxEver = max
		}
		if min < s.minEver {
			s.minEver = min
		}
	}

	s.onlineSum += mean
	s.onlineCount++
	s.offlineMaxSum += max
	s.offlineMinSum += min

	best := s.current.Max
	if s.sense == population.Minimize {
		best = s.current.Min
	}
	s.convWindow[s.convAt%s.nConvergence] = best
	s.convAt++
	if s.convFilled < s.nConvergence {
		s.convFilled++
	}

	s.updateBestPopulation(p)
	s.records = append(s.records, s.current)
}

func (s *Statistics) updateBestPopulation(p *population.Population) {
	candidates := p.Best(s.bestCap)
	merged := append(append([]galib.Genome{}, s.bestAll...), candidates...)
	sortGenomes(merged, s.bestComparator)
	if len(merged) > s.bestCap {
		merged = merged[:s.bestCap]
	}
	s.bestAll = merged
}

func sortGenomes(g []galib.Genome, better func(a, b galib.Genome) bool) {
	for i := 1; i < len(g); i++ {
		for j := i; j > 0 && better(g[j], g[j-1]); j-- {
			g[j], g[j-1] = g[j-1], g[j]
		}
	}
}

func aggregate(scores []float64) (mean, stddev float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	return stat.Mean(scores, nil), stat.StdDev(scores, nil)
}

// BestPopulationStats summarizes the all-time best archive's scores.
func (s *Statistics) BestPopulationStats() (mean, stddev float64) {
	scores := make([]float64, len(s.bestAll))
	for i, g := range s.bestAll {
		scores[i] = float64(g.Score())
	}
	return aggregate(scores)
}

// Flush writes accumulated per-generation rows to w in a fixed tabular
// form ("gen avg max min dev div" columns, gated by the Selector), then
// clears the buffered records. Unless force is true, Flush is a no-op
// when flushFreq is not positive or fewer than flushFreq generations
// have accumulated.
func (s *Statistics) Flush(w io.Writer, force bool) error {
	if !force && (s.flushFreq <= 0 || len(s.records) < s.flushFreq) {
		return nil
	}
	if len(s.records) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "gen")
	if s.selected&SelectMean != 0 {
		fmt.Fprint(tw, "\tavg")
	}
	if s.selected&SelectMax != 0 {
		fmt.Fprint(tw, "\tmax")
	}
	if s.selected&SelectMin != 0 {
		fmt.Fprint(tw, "\tmin")
	}
	if s.selected&SelectDeviation != 0 {
		fmt.Fprint(tw, "\tdev")
	}
	if s.selected&SelectDiversity != 0 {
		fmt.Fprint(tw, "\tdiv")
	}
	fmt.Fprintln(tw)

	for _, rec := range s.records {
		fmt.Fprintf(tw, "%d", rec.Gen)
		if s.selected&SelectMean != 0 {
			fmt.Fprintf(tw, "\t%.6g", rec.Mean)
		}
		if s.selected&SelectMax != 0 {
			fmt.Fprintf(tw, "\t%.6g", rec.Max)
		}
		if s.selected&SelectMin != 0 {
			fmt.Fprintf(tw, "\t%.6g", rec.Min)
		}
		if s.selected&SelectDeviation != 0 {
			fmt.Fprintf(tw, "\t%.6g", rec.StdDev)
		}
		if s.selected&SelectDiversity != 0 {
			fmt.Fprintf(tw, "\t%.6g", rec.Diversity)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s.records = nil
	return nil
}
