// Package rantest provides a deterministic, scripted rand.Rand for table
// tests: a fake stream that replays a fixed sequence of draws so
// crossover cut-point arithmetic becomes an exact, reproducible
// expectation rather than a randomized one.
package rantest

import "github.com/tfki/galib/rand"

// Script is a scripted rand.Rand: each draw kind is served from its own
// queue, in call order. Exhausting a queue panics — a test that scripts
// too few draws has a wrong expectation, not a runtime fallback.
type Script struct {
	Ints   []int
	Bits   []bool
	Floats []float64

	intAt int
	bitAt int
	fltAt int
}

var _ rand.Rand = (*Script)(nil)

func New(ints []int, bits []bool, floats []float64) *Script {
	return &Script{Ints: ints, Bits: bits, Floats: floats}
}

func (s *Script) nextInt() int {
	if s.intAt >= len(s.Ints) {
		panic("rantest: int script exhausted")
	}
	v := s.Ints[s.intAt]
	s.intAt++
	return v
}

func (s *Script) nextBit() bool {
	if s.bitAt >= len(s.Bits) {
		panic("rantest: bit script exhausted")
	}
	v := s.Bits[s.bitAt]
	s.bitAt++
	return v
}

func (s *Script) nextFloat() float64 {
	if s.fltAt >= len(s.Floats) {
		panic("rantest: float script exhausted")
	}
	v := s.Floats[s.fltAt]
	s.fltAt++
	return v
}

func (s *Script) Intn(int) int          { return s.nextInt() }
func (s *Script) IntRange(int, int) int { return s.nextInt() }
func (s *Script) Int31n(int32) int32    { return int32(s.nextInt()) }
func (s *Script) Int63n(int64) int64    { return int64(s.nextInt()) }
func (s *Script) Bit() bool             { return s.nextBit() }
func (s *Script) CoinFlip(float64) bool { return s.nextBit() }
func (s *Script) Float32() float32      { return float32(s.nextFloat()) }
func (s *Script) Float64() float64      { return s.nextFloat() }

// Perm returns the scripted ints directly as the permutation (a test that
// needs Perm scripts the whole output permutation as Ints).
func (s *Script) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.nextInt()
	}
	return out
}

func (s *Script) Shuffle(n int, swap func(i, j int)) {
	// deterministic no-op: scripted tests that care about order supply
	// parents already in the order they want children compared against.
}

// Deal returns the next k scripted ints as the chosen indexes, in the
// order scripted (tests sort them beforehand when the operator sorts).
func (s *Script) Deal(n, k int) []int {
	out := make([]int, k)
	for i := range out {
		out[i] = s.nextInt()
	}
	return out
}

func (s *Script) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = byte(s.nextInt())
	}
	return len(b), nil
}

func (s *Script) Seed(int64) {}
