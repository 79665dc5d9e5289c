package ga_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tfki/galib"
	"github.com/tfki/galib/allele"
	"github.com/tfki/galib/array"
	"github.com/tfki/galib/ga"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/rand"
)

// oneMax scores a bit-array genome by the count of 1-valued elements, the
// textbook toy objective used to exercise an evolve loop end-to-end.
func oneMax(g galib.Genome) galib.Fitness {
	typed := g.(*array.Genome[int])
	sum := 0
	for i := 0; i < typed.Len(); i++ {
		sum += typed.At(i)
	}
	return galib.Fitness(sum)
}

func newOneMaxGenome(n int) *array.Genome[int] {
	g := array.New[int](n, array.FixedSize(n), oneMax)
	g.Initializer = func(r rand.Rand, g *array.Genome[int]) {
		for i := 0; i < g.Len(); i++ {
			g.Set(i, r.Intn(2))
		}
	}
	return g
}

func oneMaxFactory(n int) ga.Factory {
	return func() galib.Genome { return newOneMaxGenome(n) }
}

func oneMaxBreeder(n int) ga.Breeder {
	template := newOneMaxGenome(n)
	return array.Breeder[int](template, array.OnePointCrossover[int])
}

func oneMaxMutator() ga.Mutator {
	return array.MutatorAdapter[int](array.SwapMutate[int])
}

func testConfig(popSize, generations int) ga.Config {
	cfg := ga.DefaultConfig()
	cfg.PopulationSize = popSize
	cfg.Terminator = fmt.Sprintf("Generations(%d)", generations)
	cfg.Seed = 42
	return cfg
}

func TestDriverLifecycleStates(t *testing.T) {
	cfg := testConfig(10, 3)
	g, err := ga.New(cfg, oneMaxFactory(8), oneMaxBreeder(8), oneMaxMutator(), false)
	require.NoError(t, err)
	require.Equal(t, ga.Created, g.State())

	g.Initialize()
	require.Equal(t, ga.Initialized, g.State())

	g.Pause()
	require.Equal(t, ga.Initialized, g.State(), "Pause is only meaningful from Running")

	more := g.Step()
	require.True(t, more || g.State() == ga.Terminated)
	require.NotEqual(t, ga.Created, g.State())
}

func TestDriverPauseResumeDoesNotAdvanceState(t *testing.T) {
	cfg := testConfig(10, 5)
	g, err := ga.New(cfg, oneMaxFactory(8), oneMaxBreeder(8), oneMaxMutator(), false)
	require.NoError(t, err)
	g.Initialize()
	g.Step()
	g.Pause()
	require.Equal(t, ga.Paused, g.State())
	g.Resume()
	require.Equal(t, ga.Running, g.State())
}

func TestDriverGenerationalRunTerminatesAtGenerationCount(t *testing.T) {
	cfg := testConfig(20, 5)
	g, err := ga.New(cfg, oneMaxFactory(10), oneMaxBreeder(10), oneMaxMutator(), false)
	require.NoError(t, err)
	g.Initialize()
	stats := g.Run()

	require.Equal(t, ga.Terminated, g.State())
	require.GreaterOrEqual(t, stats.Generation(), 5)
	require.Equal(t, 20, g.Population().Len())
}

func TestDriverSteadyStateRunPreservesPopulationSize(t *testing.T) {
	cfg := testConfig(16, 5)
	cfg.PReplacement = 0.25
	g, err := ga.New(cfg, oneMaxFactory(10), oneMaxBreeder(10), oneMaxMutator(), true)
	require.NoError(t, err)
	g.Initialize()
	g.Run()

	require.Equal(t, 16, g.Population().Len())
}

func TestDriverElitismKeepsBestAcrossGenerations(t *testing.T) {
	cfg := testConfig(12, 4)
	cfg.Elitism = true
	cfg.NBestGenomes = 2
	g, err := ga.New(cfg, oneMaxFactory(10), oneMaxBreeder(10), oneMaxMutator(), false)
	require.NoError(t, err)
	g.Initialize()
	bestGen0 := g.Population().Best1Score()

	g.Run()

	require.GreaterOrEqual(t, g.Population().Best1Score(), bestGen0,
		"elitism must never let the best-ever score regress across generations")
}

func TestDriverScoreThresholdTerminator(t *testing.T) {
	cfg := testConfig(30, 1000)
	cfg.Terminator = "ScoreThreshold(10)"
	g, err := ga.New(cfg, oneMaxFactory(10), oneMaxBreeder(10), oneMaxMutator(), false)
	require.NoError(t, err)
	g.Initialize()
	g.Run()

	require.GreaterOrEqual(t, g.Population().Best1Score(), 10.0)
}

// TestDriverPermutationPipeline runs the whole allele-genome stack end
// to end: ordered initializer, PMX crossover, swap mutation. Fitness
// counts fixed points (value == index); every genome must remain a
// permutation of 0..n-1 throughout the run.
func TestDriverPermutationPipeline(t *testing.T) {
	const n = 8
	fixedPoints := func(g galib.Genome) galib.Fitness {
		typed := g.(*array.AlleleGenome[int])
		score := 0
		for i := 0; i < typed.Len(); i++ {
			if typed.At(i) == i {
				score++
			}
		}
		return galib.Fitness(score)
	}
	symbols := make([]int, n)
	for i := range symbols {
		symbols[i] = i
	}
	set := allele.NewEnumerated(symbols...)
	newPerm := func() *array.AlleleGenome[int] {
		g := array.NewAllele[int](n, array.FixedSize(n), fixedPoints, set)
		g.AlleleInitializer = array.OrderedInitializer[int]
		return g
	}

	cfg := testConfig(20, 10)
	g, err := ga.New(cfg,
		func() galib.Genome { return newPerm() },
		array.AlleleBreeder[int](newPerm(), array.PartialMatchCrossover[int]),
		array.MutatorAdapter[int](array.SwapMutate[int]),
		false)
	require.NoError(t, err)
	g.Initialize()
	g.Run()

	pop := g.Population()
	for i := 0; i < pop.Len(); i++ {
		typed := pop.At(i).(*array.AlleleGenome[int])
		seen := make([]bool, n)
		for j := 0; j < typed.Len(); j++ {
			v := typed.At(j)
			require.True(t, v >= 0 && v < n && !seen[v],
				"genome %d is not a permutation: %v", i, typed.Elements())
			seen[v] = true
		}
	}
}

// TestDriverFixedSeedIsReproducible checks the determinism invariant:
// identical configuration and seed must yield identical generation-by-
// generation best scores.
func TestDriverFixedSeedIsReproducible(t *testing.T) {
	run := func() []float64 {
		cfg := testConfig(20, 8)
		g, err := ga.New(cfg, oneMaxFactory(12), oneMaxBreeder(12), oneMaxMutator(), false)
		require.NoError(t, err)
		g.Initialize()
		scores := []float64{g.Population().Best1Score()}
		for g.Step() {
			scores = append(scores, g.Population().Best1Score())
		}
		return scores
	}
	require.Equal(t, run(), run())
}

func TestDriverSanitizesBadConfigValues(t *testing.T) {
	gaerr.Default.Silence(true)
	defer gaerr.Default.Silence(false)

	cfg := testConfig(0, 2)
	cfg.PCrossover = 1.5

	g, err := ga.New(cfg, oneMaxFactory(4), oneMaxBreeder(4), oneMaxMutator(), false)
	require.NoError(t, err, "bad probability/size values are reported, not fatal")
	g.Initialize()
	require.Equal(t, ga.DefaultConfig().PopulationSize, g.Population().Len(),
		"a non-positive populationSize falls back to the default")
}

func TestDriverStepOnEmptyPopulationTerminates(t *testing.T) {
	gaerr.Default.Silence(true)
	defer gaerr.Default.Silence(false)

	cfg := testConfig(10, 3)
	g, err := ga.New(cfg, oneMaxFactory(4), oneMaxBreeder(4), oneMaxMutator(), false)
	require.NoError(t, err)

	// Step without Initialize: unrecoverable, the driver terminates.
	require.False(t, g.Step())
	require.Equal(t, ga.Terminated, g.State())
}

func TestDriverConvergenceTerminator(t *testing.T) {
	cfg := testConfig(10, 1000)
	cfg.Terminator = "Convergence(0.999)"
	cfg.NConvergence = 3
	cfg.PMutation = 0
	cfg.PCrossover = 0
	g, err := ga.New(cfg, oneMaxFactory(4), oneMaxBreeder(4), oneMaxMutator(), false)
	require.NoError(t, err)
	g.Initialize()
	g.Run()

	require.Equal(t, ga.Terminated, g.State())
}
