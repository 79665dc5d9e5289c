package selection_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tfki/galib"
	"github.com/tfki/galib/array"
	"github.com/tfki/galib/population"
	"github.com/tfki/galib/rand"
	"github.com/tfki/galib/rand/rantest"
	"github.com/tfki/galib/selection"
)

func scored(score float64) galib.Genome {
	g := array.New[int](1, array.FixedSize(1), nil)
	g.SetEvaluator(func(galib.Genome) galib.Fitness { return galib.Fitness(score) })
	g.Evaluate()
	return g
}

func buildPopulation(scores ...float64) *population.Population {
	p := population.New(population.Maximize, nil)
	for _, s := range scores {
		p.Add(scored(s))
	}
	return p
}

func TestRouletteFavorsHigherWeight(t *testing.T) {
	p := buildPopulation(1, 1, 1000)
	weights := selection.RawScore(p)

	r := rantest.New(nil, nil, []float64{0.999})
	idx := selection.Roulette(r, p, weights)
	require.Equal(t, 2, idx, "a draw near the top of the cumulative distribution should land on the heaviest weight")
}

func TestRouletteDegenerateAllZeroWeights(t *testing.T) {
	p := buildPopulation(0, 0, 0)
	weights := selection.RawScore(p)
	r := rand.NewSeeded(1)
	idx := selection.Roulette(r, p, weights)
	if idx < 0 || idx >= p.Len() {
		t.Fatalf("Roulette with zero weights returned out-of-range index %d", idx)
	}
}

func TestTournamentReturnsBestOfK(t *testing.T) {
	p := buildPopulation(1, 5, 9, 2)
	weights := selection.RawScore(p)

	r := rantest.New([]int{2, 1, 0}, nil, nil)
	idx := selection.Tournament(3)(r, p, weights)
	require.Equal(t, 2, idx, "tournament among candidates {2,1,0} must return the index with the greatest weight (index 2, score 9)")
}

func TestRankPicksFromRankedDistribution(t *testing.T) {
	p := buildPopulation(10, 1, 5)
	weights := selection.RawScore(p)
	// totalRank = 3*4/2 = 6; target 5 lands in the last rank bucket,
	// which belongs to the lowest-weight member after sorting descending
	// (rank order by weight desc is index0(10) rank3, index2(5) rank2,
	// index1(1) rank1); cumulative buckets: [0,3)->idx0, [3,5)->idx2,
	// [5,6)->idx1.
	r := rantest.New([]int{5}, nil, nil)
	idx := selection.Rank(r, p, weights)
	require.Equal(t, 1, idx)
}

func TestUniformIgnoresWeights(t *testing.T) {
	p := buildPopulation(1, 1000, 1)
	r := rantest.New([]int{1}, nil, nil)
	idx := selection.Uniform(r, p, nil)
	require.Equal(t, 1, idx)
}

func TestLinearScalingKeepsMeanWeightNearMean(t *testing.T) {
	p := buildPopulation(1, 2, 3, 4, 5)
	weights := selection.Linear(2.0)(p)
	require.Len(t, weights, 5)
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			t.Fatalf("Linear scaling produced a negative weight: %v", w)
		}
		sum += w
	}
	require.InDelta(t, 3.0, sum/5, 1e-9, "mean weight must equal the mean raw score")
}

func TestSigmaTruncationTruncatesAtZero(t *testing.T) {
	p := buildPopulation(-100, 1, 2, 3)
	weights := selection.SigmaTruncation(1.0)(p)
	for _, w := range weights {
		if w < 0 {
			t.Fatalf("SigmaTruncation produced a negative weight: %v", w)
		}
	}
}

func TestPowerLawScalingRaisesScores(t *testing.T) {
	p := buildPopulation(2, 3)
	weights := selection.PowerLaw(2)(p)
	require.InDelta(t, 4.0, weights[0], 1e-9)
	require.InDelta(t, 9.0, weights[1], 1e-9)
}

func TestSharingPenalizesCrowding(t *testing.T) {
	p := buildPopulation(10, 10, 10)
	dist := func(i, j int) float64 {
		if i == j {
			return 0
		}
		return 0 // identical genomes: fully crowded
	}
	weights := selection.Sharing(1.0, dist)(p)
	for _, w := range weights {
		if w <= 0 || w >= 10 {
			t.Fatalf("crowded sharing weight %v should be reduced below the raw score 10 but still positive", w)
		}
	}
}
