package array_test

import (
	"sort"
	"testing"

	"github.com/tfki/galib/allele"
	"github.com/tfki/galib/array"
	"github.com/tfki/galib/rand"
)

func TestUniformInitializerDrawsFromMatchingSet(t *testing.T) {
	evens := allele.NewEnumerated(0, 2, 4)
	odds := allele.NewEnumerated(1, 3, 5)
	g := array.NewAllele[int](6, array.FixedSize(6), nil, evens, odds)
	g.AlleleInitializer = array.UniformInitializer[int](nil)

	r := rand.NewSeeded(1)
	g.Initialize(r)

	for i := 0; i < g.Len(); i++ {
		v := g.At(i)
		if i%2 == 0 {
			if !evens.Contains(v) {
				t.Fatalf("index %d = %d; want a member of the even set", i, v)
			}
		} else {
			if !odds.Contains(v) {
				t.Fatalf("index %d = %d; want a member of the odd set", i, v)
			}
		}
	}
	if g.Evaluated() {
		t.Fatal("Initialize should leave the genome unevaluated")
	}
}

func TestOrderedInitializerProducesPermutation(t *testing.T) {
	symbols := allele.NewEnumerated(10, 20, 30, 40, 50)
	g := array.NewAllele[int](5, array.FixedSize(5), nil, symbols)
	g.AlleleInitializer = array.OrderedInitializer[int]

	r := rand.NewSeeded(2)
	g.Initialize(r)

	got := append([]int(nil), g.Elements()...)
	want := []int{10, 20, 30, 40, 50}
	sort.Ints(got)
	sort.Ints(want)
	if !equalInts(got, want) {
		t.Fatalf("OrderedInitializer produced %v; not a permutation of %v", g.Elements(), want)
	}
}

func TestFlipMutateRespectsAlleleSets(t *testing.T) {
	set := allele.NewEnumerated(7, 8, 9)
	g := array.NewAllele[int](10, array.FixedSize(10), nil, set)
	for i := 0; i < g.Len(); i++ {
		g.Set(i, 7)
	}

	r := rand.NewSeeded(3)
	n := array.FlipMutate(r, g, 1.0)
	if n == 0 {
		t.Fatal("FlipMutate(p=1) performed no mutations")
	}
	for i := 0; i < g.Len(); i++ {
		if !set.Contains(g.At(i)) {
			t.Fatalf("index %d = %d; not a member of the allele set after FlipMutate", i, g.At(i))
		}
	}
}

func TestFlipMutateZeroProbability(t *testing.T) {
	set := allele.NewEnumerated(1, 2, 3)
	g := array.NewAllele[int](8, array.FixedSize(8), nil, set)
	before := append([]int(nil), g.Elements()...)

	r := rand.NewSeeded(4)
	if n := array.FlipMutate(r, g, 0); n != 0 {
		t.Fatalf("FlipMutate(p=0) = %d; want 0", n)
	}
	if !equalInts(g.Elements(), before) {
		t.Fatal("FlipMutate(p=0) altered the genome")
	}
}

func TestAlleleGenomeCloneIsDeepAndKeepsSets(t *testing.T) {
	set := allele.NewEnumerated(1, 2, 3)
	g := array.NewAllele[int](4, array.FixedSize(4), nil, set)
	g.AlleleInitializer = array.UniformInitializer[int](nil)
	g.Initialize(rand.NewSeeded(5))

	cp := g.CloneAllele()
	orig := g.At(0)
	cp.Set(0, orig%3+1)
	if g.At(0) != orig {
		t.Fatal("mutating the clone mutated the original")
	}
	if cp.Class() != array.AlleleClass {
		t.Fatalf("CloneAllele Class() = %q; want %q", cp.Class(), array.AlleleClass)
	}
	if len(cp.Sets) != len(g.Sets) {
		t.Fatalf("CloneAllele Sets length = %d; want %d", len(cp.Sets), len(g.Sets))
	}
}
