package population_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tfki/galib"
	"github.com/tfki/galib/array"
	"github.com/tfki/galib/population"
)

func scored(n int, score float64) galib.Genome {
	g := array.New[int](n, array.FixedSize(n), func(gg galib.Genome) galib.Fitness {
		return galib.Fitness(score)
	})
	g.Evaluate()
	return g
}

func TestPopulationSortedOrderMaximize(t *testing.T) {
	p := population.New(population.Maximize, nil)
	p.Add(scored(1, 3))
	p.Add(scored(1, 9))
	p.Add(scored(1, 1))

	best := p.Best(1)
	require.Len(t, best, 1)
	require.Equal(t, galib.Fitness(9), best[0].Score())

	worst := p.Worst(1)
	require.Equal(t, galib.Fitness(1), worst[0].Score())
}

func TestPopulationSortedOrderMinimize(t *testing.T) {
	p := population.New(population.Minimize, nil)
	p.Add(scored(1, 3))
	p.Add(scored(1, 9))
	p.Add(scored(1, 1))

	best := p.Best(1)
	require.Equal(t, galib.Fitness(1), best[0].Score())
}

func TestPopulationAggregatesRecomputeLazily(t *testing.T) {
	p := population.New(population.Maximize, nil)
	p.Add(scored(1, 2))
	p.Add(scored(1, 4))

	require.Equal(t, 3.0, p.Mean())
	require.Equal(t, 4.0, p.Max())
	require.Equal(t, 2.0, p.Min())

	p.Add(scored(1, 12))
	require.Equal(t, 12.0, p.Max())
}

func TestPopulationReplaceAtInvalidatesSortedView(t *testing.T) {
	p := population.New(population.Maximize, nil)
	p.Add(scored(1, 1))
	p.Add(scored(1, 2))
	require.Equal(t, galib.Fitness(2), p.Best(1)[0].Score())

	p.ReplaceAt(0, scored(1, 100))
	require.Equal(t, galib.Fitness(100), p.Best(1)[0].Score())
}

func TestPopulationDiversityWithComparator(t *testing.T) {
	cmp := func(a, b galib.Genome) float64 {
		return array.Compare(a.(*array.Genome[int]), b.(*array.Genome[int]))
	}
	p := population.New(population.Maximize, cmp)

	a := array.New[int](3, array.FixedSize(3), nil)
	a.SetAll([]int{1, 2, 3})
	b := array.New[int](3, array.FixedSize(3), nil)
	b.SetAll([]int{1, 9, 3})
	p.Add(a)
	p.Add(b)

	if got := p.Diversity(); got <= 0 {
		t.Fatalf("Diversity() = %v; want > 0 for differing genomes", got)
	}
}

func TestPopulationDiversityWithoutComparatorIsZero(t *testing.T) {
	p := population.New(population.Maximize, nil)
	p.Add(scored(1, 1))
	p.Add(scored(1, 2))
	require.Equal(t, 0.0, p.Diversity())
}

func TestPopulationRemovePreservesOrder(t *testing.T) {
	p := population.New(population.Maximize, nil)
	p.Add(scored(1, 1))
	p.Add(scored(1, 2))
	p.Add(scored(1, 3))
	p.Remove(1)

	require.Equal(t, 2, p.Len())
	require.Equal(t, galib.Fitness(1), p.At(0).Score())
	require.Equal(t, galib.Fitness(3), p.At(1).Score())
}
