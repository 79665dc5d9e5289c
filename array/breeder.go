package array

import (
	"github.com/tfki/galib"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/rand"
)

// CrossoverOp is the shape every crossover function in this package
// shares (UniformCrossover, OnePointCrossover, ..., CycleCrossover).
type CrossoverOp[T comparable] func(r *gaerr.Reporter, rng rand.Rand, mom, dad, sis, bro *Genome[T]) int

// asArrayGenome unwraps a galib.Genome to the array genome a crossover
// or mutation operator runs over; AlleleGenome contributes its embedded
// array genome.
func asArrayGenome[T comparable](g galib.Genome) (*Genome[T], bool) {
	switch v := g.(type) {
	case *Genome[T]:
		return v, true
	case *AlleleGenome[T]:
		return v.Genome, true
	}
	return nil, false
}

// Breeder adapts one of this package's crossover operators plus a
// template factory into the generic two-parent-to-two-children shape
// galib-level drivers consume (package ga's Breeder), so a driver never
// needs to import array directly to wire a crossover operator in.
// template is cloned to produce the sis/bro containers the operator
// writes into.
func Breeder[T comparable](template *Genome[T], op CrossoverOp[T]) func(rng rand.Rand, mom, dad galib.Genome) (galib.Genome, galib.Genome, int) {
	return func(rng rand.Rand, mom, dad galib.Genome) (galib.Genome, galib.Genome, int) {
		momT, ok1 := asArrayGenome[T](mom)
		dadT, ok2 := asArrayGenome[T](dad)
		if !ok1 || !ok2 {
			return nil, nil, 0
		}
		sis := template.CloneTyped()
		bro := template.CloneTyped()
		n := op(momT.Reporter, rng, momT, dadT, sis, bro)
		switch n {
		case 2:
			return sis, bro, 2
		case 1:
			return sis, nil, 1
		default:
			return nil, nil, 0
		}
	}
}

// AlleleBreeder is Breeder for allele-constrained genomes: children are
// cloned from an AlleleGenome template, keeping its allele sets and
// initializer, while the crossover operator runs over the embedded
// array genomes.
func AlleleBreeder[T comparable](template *AlleleGenome[T], op CrossoverOp[T]) func(rng rand.Rand, mom, dad galib.Genome) (galib.Genome, galib.Genome, int) {
	return func(rng rand.Rand, mom, dad galib.Genome) (galib.Genome, galib.Genome, int) {
		momT, ok1 := asArrayGenome[T](mom)
		dadT, ok2 := asArrayGenome[T](dad)
		if !ok1 || !ok2 {
			return nil, nil, 0
		}
		sis := template.CloneAllele()
		bro := template.CloneAllele()
		n := op(momT.Reporter, rng, momT, dadT, sis.Genome, bro.Genome)
		switch n {
		case 2:
			return sis, bro, 2
		case 1:
			return sis, nil, 1
		default:
			return nil, nil, 0
		}
	}
}

// MutatorAdapter adapts SwapMutate (or any *Genome[T]-shaped mutator)
// into the galib.Genome-level shape package ga's Mutator consumes.
// Allele genomes are mutated through their embedded array genome.
func MutatorAdapter[T comparable](op func(r rand.Rand, g *Genome[T], p float64) int) func(rng rand.Rand, g galib.Genome, p float64) int {
	return func(rng rand.Rand, g galib.Genome, p float64) int {
		typed, ok := asArrayGenome[T](g)
		if !ok {
			return 0
		}
		return op(rng, typed, p)
	}
}

// AlleleMutatorAdapter adapts FlipMutate (or any allele-aware mutator)
// into the same galib.Genome-level shape; non-allele genomes are left
// untouched.
func AlleleMutatorAdapter[T comparable](op func(r rand.Rand, g *AlleleGenome[T], p float64) int) func(rng rand.Rand, g galib.Genome, p float64) int {
	return func(rng rand.Rand, g galib.Genome, p float64) int {
		typed, ok := g.(*AlleleGenome[T])
		if !ok {
			return 0
		}
		return op(rng, typed, p)
	}
}
