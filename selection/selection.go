// Package selection implements the schemes that map a Population and a
// scaling scheme to a chosen index (roulette, tournament, rank,
// uniform), and the scaling schemes that turn raw scores into selection
// weights (linear, sigma truncation, power law, sharing).
package selection

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/population"
	"github.com/tfki/galib/rand"
)

// Scheme picks one genome's population index, given a uniform-random
// source and the weights Scaling assigned each member.
type Scheme func(r rand.Rand, p *population.Population, weights []float64) int

// Scaling transforms a population's raw scores into non-negative
// selection weights; it is orthogonal to the Scheme consuming them.
type Scaling func(p *population.Population) []float64

// Roulette spins a cumulative distribution over scaled weights with a
// single uniform draw. Degenerate all-zero weights fall back to a
// uniform pick.
func Roulette(r rand.Rand, p *population.Population, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return r.Intn(p.Len())
	}
	target := r.Float64() * total
	accum := 0.0
	for i, w := range weights {
		accum += w
		if target < accum {
			return i
		}
	}
	return len(weights) - 1
}

// Tournament returns a Scheme that picks k uniform candidates and
// returns the one with the greatest weight.
func Tournament(k int) Scheme {
	return func(r rand.Rand, p *population.Population, weights []float64) int {
		best := r.Intn(len(weights))
		bestWeight := weights[best]
		for i := 1; i < k; i++ {
			idx := r.Intn(len(weights))
			if weights[idx] > bestWeight {
				best = idx
				bestWeight = weights[idx]
			}
		}
		return best
	}
}

// Rank selects with probability following each member's rank among the
// weights rather than the weight's raw magnitude.
func Rank(r rand.Rand, p *population.Population, weights []float64) int {
	type ranked struct {
		index int
		order int
	}
	n := len(weights)
	entries := make([]ranked, n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return weights[order[i]] > weights[order[j]] })
	for rankPos, idx := range order {
		entries[rankPos] = ranked{index: idx, order: n - rankPos}
	}

	totalRank := n * (n + 1) / 2
	target := r.Intn(totalRank)
	accum := 0
	for _, e := range entries {
		accum += e.order
		if target < accum {
			return e.index
		}
	}
	return entries[n-1].index
}

// Uniform ignores weights entirely and picks a population index with
// equal probability.
func Uniform(r rand.Rand, p *population.Population, weights []float64) int {
	return r.Intn(p.Len())
}

// RawScore is the identity scaling scheme: weight equals the genome's
// raw score. For a Minimize population, scores are inverted, since
// roulette/rank weights must increase with desirability regardless of
// sort direction. The weights are then shifted so that none is negative.
func RawScore(p *population.Population) []float64 {
	out := make([]float64, p.Len())
	for i := 0; i < p.Len(); i++ {
		s := float64(p.At(i).Score())
		if p.Sense() == population.Minimize {
			s = -s
		}
		out[i] = s
	}
	shiftToNonNegative(out)
	return out
}

// Linear implements linear scaling: weight = a*score + b,
// chosen so the mean weight stays at the population mean and the best
// weight is a configurable multiple (Cmult) of it, the classic GA
// linear-scaling formulation.
func Linear(cmult float64) Scaling {
	return func(p *population.Population) []float64 {
		raw := RawScore(p)
		if len(raw) == 0 {
			return raw
		}
		mean := meanOf(raw)
		max := raw[0]
		min := raw[0]
		for _, v := range raw {
			if v > max {
				max = v
			}
			if v < min {
				min = v
			}
		}
		var a, b float64
		if max-mean == 0 {
			a, b = 1, 0
		} else {
			delta := max - mean
			if min < (cmult*mean-max)/(cmult-1) {
				// avoid negative weights near the low end
				delta = mean - min
				if delta == 0 {
					a, b = 1, 0
				} else {
					a = mean / delta
					b = -min * a
				}
			} else {
				a = (cmult - 1) * mean / delta
				b = mean - a*mean
			}
		}
		out := make([]float64, len(raw))
		for i, v := range raw {
			w := a*v + b
			if w < 0 {
				w = 0
			}
			out[i] = w
		}
		return out
	}
}

// SigmaTruncation implements sigma-truncation scaling: weight =
// score - (mean - c*stddev), truncated at 0.
func SigmaTruncation(c float64) Scaling {
	return func(p *population.Population) []float64 {
		raw := RawScore(p)
		if len(raw) == 0 {
			return raw
		}
		mean := meanOf(raw)
		sd := stdDevOf(raw, mean)
		out := make([]float64, len(raw))
		for i, v := range raw {
			w := v - (mean - c*sd)
			if w < 0 {
				w = 0
			}
			out[i] = w
		}
		return out
	}
}

// PowerLaw implements power-law scaling: weight = score^k.
func PowerLaw(k float64) Scaling {
	return func(p *population.Population) []float64 {
		raw := RawScore(p)
		out := make([]float64, len(raw))
		for i, v := range raw {
			out[i] = math.Pow(v, k)
		}
		return out
	}
}

// Sharing implements fitness sharing: each genome's raw score is
// divided by the sum of a similarity kernel against every member
// (itself included),
// penalizing crowded regions of the search space.
// sigma is the similarity cutoff; dist reports semantic distance in
// [0,1] between two population indexes the way population.Comparator
// does. A non-positive sigma is reported and replaced with 1.
func Sharing(sigma float64, dist func(i, j int) float64) Scaling {
	if sigma <= 0 {
		gaerr.Default.Report(gaerr.Here(), "selection", "Sharing", gaerr.BadSharingCutoff,
			fmt.Sprintf("sigma %v must be positive", sigma))
		sigma = 1
	}
	return func(p *population.Population) []float64 {
		raw := RawScore(p)
		n := len(raw)
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			share := 0.0
			for j := 0; j < n; j++ {
				d := dist(i, j)
				if d < sigma {
					share += 1 - d/sigma
				}
			}
			if share == 0 {
				share = 1
			}
			out[i] = raw[i] / share
		}
		return out
	}
}

func shiftToNonNegative(vals []float64) {
	min := 0.0
	for _, v := range vals {
		if v < min {
			min = v
		}
	}
	if min < 0 {
		for i := range vals {
			vals[i] -= min
		}
	}
}

func meanOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

func stdDevOf(vals []float64, mean float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.StdDev(vals, nil)
}
