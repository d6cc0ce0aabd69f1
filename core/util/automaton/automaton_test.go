package automaton

import (
	"fmt"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrozenIntSetEqualityIgnoresOrderAndCounts(t *testing.T) {
	a := newSortedIntSet(5)
	a.incr(7)
	a.incr(3)
	a.incr(11)

	b := newSortedIntSet(5)
	b.incr(11)
	b.incr(3)
	b.incr(3) // extra reference, same membership
	b.incr(7)
	b.incr(7)

	ha := a.computeHash()
	hb := b.computeHash()
	tassert.Equal(t, ha, hb)

	fa := a.freeze(1)
	fb := b.freeze(2)
	tassert.True(t, fa.equals(hb, b.values))
	tassert.True(t, fb.equals(ha, a.values))
}

func TestFrozenIntSetDistinguishesMembership(t *testing.T) {
	a := newSortedIntSet(5)
	a.incr(1)
	a.incr(2)
	_ = a.computeHash()
	fa := a.freeze(0)

	b := newSortedIntSet(5)
	b.incr(1)
	b.incr(3)
	hb := b.computeHash()
	tassert.False(t, fa.equals(hb, b.values))
}

func TestSingletonFrozenSetMatchesIncrementalOne(t *testing.T) {
	s := newSortedIntSet(5)
	s.incr(42)
	h := s.computeHash()
	single := newFrozenIntSetOf(42, 9)
	tassert.True(t, single.equals(h, s.values))
}

/*
Growing past the internal cutover and shrinking again must not be
observable through hash, freeze, or emptiness.
*/
func TestSortedIntSetCutoverIsTransparent(t *testing.T) {
	big := newSortedIntSet(5)
	for i := 0; i < 35; i++ {
		big.incr(i * 2)
	}
	for i := 5; i < 35; i++ {
		big.decr(i * 2)
	}

	small := newSortedIntSet(5)
	for i := 4; i >= 0; i-- {
		small.incr(i * 2)
	}

	tassert.Equal(t, small.computeHash(), big.computeHash())
	fs := small.freeze(0)
	tassert.True(t, fs.equals(big.computeHash(), big.values))

	// drain completely, then grow again from the reverted representation
	for i := 0; i < 5; i++ {
		big.decr(i * 2)
	}
	tassert.True(t, big.isEmpty())
	big.incr(17)
	big.incr(17)
	big.decr(17)
	tassert.False(t, big.isEmpty())
	tassert.Equal(t, 683+17, int(big.computeHash()))
}

func TestSortedIntSetDecrMissingPanics(t *testing.T) {
	s := newSortedIntSet(5)
	s.incr(1)
	tassert.Panics(t, func() { s.decr(2) })
}

func TestDeterminizeUnionOfStrings(t *testing.T) {
	words := []string{"stop", "stone", "star", "a", ""}
	var l []*Automaton
	for _, w := range words {
		l = append(l, makeString(w))
	}
	a := determinize(unionN(l))
	tassert.True(t, a.deterministic)

	for _, w := range words {
		tassert.True(t, run(a, w), "should accept %q", w)
	}
	for _, w := range []string{"sto", "stones", "b", "stat", "op"} {
		tassert.False(t, run(a, w), "should reject %q", w)
	}
}

func TestDeterminizeIsIdempotentOnDFA(t *testing.T) {
	a := makeString("abc")
	require.True(t, a.deterministic)
	tassert.Same(t, a, determinize(a))
}

func TestWildcardMatching(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"te?t", []string{"test", "text"}, []string{"tet", "tests"}},
		{"st*", []string{"st", "stop", "stone"}, []string{"s", "ast"}},
		{"*ing", []string{"ing", "ring", "string"}, []string{"in", "ringer"}},
		{"a**b", []string{"ab", "axxb"}, []string{"a", "ba"}},
		{"*", []string{"", "anything"}, nil},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			a := determinize(makeWildcard(tc.pattern))
			for _, s := range tc.accept {
				tassert.True(t, run(a, s), "%q should match %q", tc.pattern, s)
			}
			for _, s := range tc.reject {
				tassert.False(t, run(a, s), "%q should not match %q", tc.pattern, s)
			}
		})
	}
}

/*
Determinization stress: a union with more than TREE_MAP_CUTOVER live
NFA states per subset forces the state set through its map
representation and back.
*/
func TestDeterminizeManyOverlappingBranches(t *testing.T) {
	var l []*Automaton
	for i := 0; i < 40; i++ {
		l = append(l, makeString(fmt.Sprintf("common%03d", i)))
	}
	a := determinize(unionN(l))
	tassert.True(t, a.deterministic)
	for i := 0; i < 40; i++ {
		tassert.True(t, run(a, fmt.Sprintf("common%03d", i)))
	}
	tassert.False(t, run(a, "common040"))
	tassert.False(t, run(a, "common"))
}

func TestRemoveDeadStates(t *testing.T) {
	a := newEmptyAutomaton()
	s0 := a.createState()
	s1 := a.createState()
	dead := a.createState()
	a.setAccept(s1, true)
	a.addTransition(s0, s1, 'x')
	a.addTransition(s0, dead, 'y') // no accept reachable from here
	a.finishState()

	trimmed := removeDeadStates(a)
	tassert.Equal(t, 2, trimmed.numStates())
	tassert.True(t, run(trimmed, "x"))
	tassert.False(t, run(trimmed, "y"))
}

func TestEmptyAutomatonRejectsEverything(t *testing.T) {
	a := MakeEmpty()
	tassert.False(t, run(a, ""))
	tassert.False(t, run(a, "x"))
}

func TestMakeEmptyStringAcceptsOnlyEmpty(t *testing.T) {
	a := makeEmptyString()
	tassert.True(t, run(a, ""))
	tassert.False(t, run(a, "x"))
}
