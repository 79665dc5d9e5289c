package ga

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/tfki/galib"
	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/population"
	"github.com/tfki/galib/rand"
	"github.com/tfki/galib/selection"
	"github.com/tfki/galib/stats"
)

// State is the driver's lifecycle: Created → Initialized → Running ↔
// Paused → Terminated.
type State int

const (
	Created State = iota
	Initialized
	Running
	Paused
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Breeder produces up to two offspring from two parents. Crossover is
// not a galib.Genome method (see galib.Genome's doc comment): it is a
// free function keyed to a concrete representation, so the driver takes
// one as configuration rather than calling a method on Genome.
type Breeder func(rng rand.Rand, mom, dad galib.Genome) (sis, bro galib.Genome, n int)

// Mutator perturbs a genome in place and returns the number of
// positions changed.
type Mutator func(rng rand.Rand, g galib.Genome, p float64) int

// Factory produces a fresh, uninitialized genome for seeding generation
// 0. Breeders do not use it; they clone their own offspring containers.
type Factory func() galib.Genome

// GA drives the generational or steady-state evolve loop: select two
// parents, cross, mutate, evaluate, replace; update statistics; test a
// termination predicate.
type GA struct {
	cfg Config

	rng   rand.Rand
	pop   *population.Population
	stats *stats.Statistics

	factory    Factory
	breed      Breeder
	mutate     Mutator
	terminator func(g *GA) bool

	selScheme selection.Scheme
	scaling   selection.Scaling

	steadyState bool

	state State
	bar   *progressbar.ProgressBar

	// scoreFile is the open handle behind Config.ScoreFilename, flushed
	// to every ScoreFrequency generations and closed by Close. Nil when
	// ScoreFilename is empty.
	scoreFile *os.File
}

// New builds a GA in state Created. steadyState selects the
// steady-state flavour instead of the generational default.
func New(cfg Config, factory Factory, breed Breeder, mutate Mutator, steadyState bool) (*GA, error) {
	cfg = cfg.sanitized()
	selScheme, err := cfg.Selection()
	if err != nil {
		return nil, err
	}
	scaling, err := cfg.Scaling()
	if err != nil {
		return nil, err
	}
	rng := rand.NewSeeded(cfg.Seed)

	var scoreFile *os.File
	if cfg.ScoreFilename != "" {
		f, err := os.Create(cfg.ScoreFilename)
		if err != nil {
			return nil, err
		}
		scoreFile = f
	}

	g := &GA{
		cfg:         cfg,
		rng:         rng,
		pop:         population.New(cfg.Sense(), nil),
		stats:       stats.New(cfg.Sense(), cfg.NConvergence, cfg.NBestGenomes, cfg.FlushFrequency, cfg.SelectorMask()),
		factory:     factory,
		breed:       breed,
		mutate:      mutate,
		selScheme:   selScheme,
		scaling:     scaling,
		steadyState: steadyState,
		state:       Created,
		scoreFile:   scoreFile,
	}
	kind, arg, err := cfg.TerminatorSpec()
	if err != nil {
		return nil, err
	}
	g.terminator = buildTerminator(kind, arg, cfg.Sense())
	if cfg.Verbose {
		g.bar = progressbar.Default(int64(cfg.NGenerations))
	}
	return g, nil
}

func buildTerminator(kind TerminatorKind, arg float64, sense population.Sense) func(g *GA) bool {
	switch kind {
	case TerminateScoreThreshold:
		if sense == population.Minimize {
			return func(g *GA) bool { return g.pop.Best1Score() <= arg }
		}
		return func(g *GA) bool { return g.pop.Best1Score() >= arg }
	case TerminateConvergence:
		return func(g *GA) bool {
			return g.stats.Generation() > 1 && g.stats.Convergence() >= arg
		}
	default:
		return func(g *GA) bool { return g.stats.Generation() >= int(arg) }
	}
}

// State reports the driver's current lifecycle state.
func (g *GA) State() State { return g.state }

// Population exposes the live population for inspection.
func (g *GA) Population() *population.Population { return g.pop }

// Statistics exposes the run's accumulated statistics.
func (g *GA) Statistics() *stats.Statistics { return g.stats }

// Initialize populates and scores generation 0 through each fresh
// genome's initializer and evaluator.
func (g *GA) Initialize() {
	for i := 0; i < g.cfg.PopulationSize; i++ {
		genome := g.factory()
		genome.Initialize(g.rng)
		genome.Evaluate()
		g.pop.Add(genome)
	}
	g.stats.Update(g.pop)
	g.state = Initialized
}

// Step advances exactly one generation (generational) or one
// replacement batch (steady-state), per the driver's configured
// flavour. Returns false if already Terminated.
func (g *GA) Step() bool {
	if g.state == Terminated {
		return false
	}
	if g.state == Paused {
		return true
	}
	if g.pop.Len() == 0 {
		gaerr.Default.Report(gaerr.Here(), "ga.GA", "Step", gaerr.NoIndividuals,
			"population is empty; Initialize must run before Step")
		g.state = Terminated
		return false
	}
	g.state = Running
	if g.steadyState {
		g.stepSteadyState()
	} else {
		g.stepGenerational()
	}
	g.stats.Update(g.pop)
	if g.scoreFile != nil && g.dueForScoreRecord() {
		_ = g.stats.Flush(g.scoreFile, false)
	}
	if g.bar != nil {
		_ = g.bar.Add(1)
	}
	if g.terminator(g) {
		g.state = Terminated
	}
	return g.state != Terminated
}

// dueForScoreRecord reports whether the just-completed generation should
// attempt a score-log flush, per the scoreFrequency option. Flush
// itself still only writes once flushFrequency rows have accumulated.
func (g *GA) dueForScoreRecord() bool {
	freq := g.cfg.ScoreFrequency
	if freq <= 0 {
		freq = 1
	}
	return g.stats.Generation()%freq == 0
}

// Run repeatedly calls Step until termination, flushes and closes any
// configured score file, then returns the final statistics snapshot.
// Initialize must already have been called.
func (g *GA) Run() *stats.Statistics {
	for g.Step() {
	}
	_ = g.Close()
	return g.stats
}

// Close flushes any score rows still buffered and closes the score file
// configured via Config.ScoreFilename. It is a no-op if no score file was
// configured or Close already ran. Callers driving Step directly instead
// of Run should call Close once done.
func (g *GA) Close() error {
	if g.scoreFile == nil {
		return nil
	}
	f := g.scoreFile
	g.scoreFile = nil
	flushErr := g.stats.Flush(f, true)
	closeErr := f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Pause transitions Running -> Paused; Step is a no-op until Resume.
func (g *GA) Pause() {
	if g.state == Running {
		g.state = Paused
	}
}

// Resume transitions Paused -> Running.
func (g *GA) Resume() {
	if g.state == Paused {
		g.state = Running
	}
}

func (g *GA) selectParent(weights []float64) galib.Genome {
	idx := g.selScheme(g.rng, g.pop, weights)
	return g.pop.At(idx)
}

// reproduce runs the configured Breeder with probability PCrossover;
// otherwise it falls back to cloning mom and dad directly into sis/bro.
// crossed reports whether the Breeder actually ran, so callers count
// Statistics.Crossovers only for genuine crossover operations.
func (g *GA) reproduce(mom, dad galib.Genome) (sis, bro galib.Genome, n int, crossed bool) {
	if g.breed != nil && g.rng.CoinFlip(g.cfg.PCrossover) {
		sis, bro, n = g.breed(g.rng, mom, dad)
		return sis, bro, n, n > 0
	}
	return mom.Clone(), dad.Clone(), 2, false
}

func (g *GA) stepGenerational() {
	size := g.pop.Len()
	next := population.New(g.pop.Sense(), nil)

	if g.cfg.Elitism {
		for _, genome := range g.pop.Best(g.cfg.NBestGenomes) {
			next.Add(genome.Clone())
		}
	}

	weights := g.scaling(g.pop)
	for next.Len() < size {
		mom := g.selectParent(weights)
		dad := g.selectParent(weights)
		g.stats.Selections += 2

		sis, bro, _, crossed := g.reproduce(mom, dad)
		if crossed {
			g.stats.Crossovers++
		}
		for _, child := range []galib.Genome{sis, bro} {
			if child == nil || next.Len() >= size {
				continue
			}
			if g.mutate != nil {
				if mutated := g.mutate(g.rng, child, g.cfg.PMutation); mutated > 0 {
					g.stats.Mutations++
				}
			}
			child.Evaluate()
			g.stats.IndividualEvaluations++
			next.Add(child)
		}
	}
	g.pop = next
}

func (g *GA) stepSteadyState() {
	size := g.pop.Len()
	nOffspring := int(g.cfg.PReplacement * float64(size))
	if nOffspring < 1 {
		nOffspring = 1
	}

	weights := g.scaling(g.pop)
	offspring := make([]galib.Genome, 0, nOffspring)
	for len(offspring) < nOffspring {
		mom := g.selectParent(weights)
		dad := g.selectParent(weights)
		g.stats.Selections += 2

		sis, bro, _, crossed := g.reproduce(mom, dad)
		if crossed {
			g.stats.Crossovers++
		}
		for _, child := range []galib.Genome{sis, bro} {
			if child == nil || len(offspring) >= nOffspring {
				continue
			}
			if g.mutate != nil {
				if mutated := g.mutate(g.rng, child, g.cfg.PMutation); mutated > 0 {
					g.stats.Mutations++
				}
			}
			child.Evaluate()
			g.stats.IndividualEvaluations++
			offspring = append(offspring, child)
		}
	}

	for _, child := range offspring {
		g.pop.Add(child)
		g.stats.Replacements++
	}
	truncateToSize(g.pop, size)
}

// truncateToSize removes the worst members of p until it holds exactly
// size genomes (steady-state's merge-then-truncate under the sort
// order).
func truncateToSize(p *population.Population, size int) {
	for p.Len() > size {
		worst := p.Worst(1)
		if len(worst) == 0 {
			break
		}
		removeGenome(p, worst[0])
	}
}

func removeGenome(p *population.Population, target galib.Genome) {
	for i := 0; i < p.Len(); i++ {
		if p.At(i) == target {
			p.Remove(i)
			return
		}
	}
}
