package automaton

import (
	"unicode"
)

// util/automaton/Automata.java

// Returns a new (deterministic) automaton with the empty language.
func MakeEmpty() *Automaton {
	a := newEmptyAutomaton()
	a.finishState()
	return a
}

// Returns a new (deterministic) automaton that accepts only the empty string.
func makeEmptyString() *Automaton {
	a := newEmptyAutomaton()
	a.createState()
	a.setAccept(0, true)
	return a
}

// Returns a new (deterministic) automaton that accepts all strings.
func makeAnyString() *Automaton {
	a := newEmptyAutomaton()
	s := a.createState()
	a.setAccept(s, true)
	a.addTransitionRange(s, s, MIN_CODE_POINT, unicode.MaxRune)
	a.finishState()
	return a
}

// Returns a new (deterministic) automaton that accepts any single codepoint.
func makeAnyChar() *Automaton {
	return makeCharRange(MIN_CODE_POINT, unicode.MaxRune)
}

// Returns a new (deterministic) automaton that accepts a single codepoint of the given value.
func makeChar(c int) *Automaton {
	return makeCharRange(c, c)
}

/*
Returns a new (deterministic) automaton that accepts a single rune
whose value is in the given interval (including both end points)
*/
func makeCharRange(min, max int) *Automaton {
	if min > max {
		return MakeEmpty()
	}

	a := newEmptyAutomaton()
	s1 := a.createState()
	s2 := a.createState()
	a.setAccept(s2, true)
	a.addTransitionRange(s1, s2, min, max)
	a.finishState()
	return a
}

// Returns a new (deterministic) automaton that accepts the single given string
func makeString(s string) *Automaton {
	a := newEmptyAutomaton()
	lastState := a.createState()
	for _, r := range s {
		state := a.createState()
		a.addTransition(lastState, state, int(r))
		lastState = state
	}

	a.setAccept(lastState, true)
	a.finishState()

	assert(a.deterministic)
	assert(!hasDeadStates(a))

	return a
}

/*
Returns a new (possibly nondeterministic) automaton for the given
wildcard pattern: '*' matches any sequence of codepoints, '?' matches
any single codepoint, everything else matches itself. Callers wanting
fast acceptance checks should determinize the result.
*/
func makeWildcard(pattern string) *Automaton {
	a := newEmptyAutomaton()
	state := a.createState()
	starred := false
	for _, r := range pattern {
		switch {
		case r == '*':
			if !starred {
				// consecutive stars collapse into one self-loop
				a.addTransitionRange(state, state, MIN_CODE_POINT, unicode.MaxRune)
				starred = true
			}
		case r == '?':
			next := a.createState()
			a.addTransitionRange(state, next, MIN_CODE_POINT, unicode.MaxRune)
			state = next
			starred = false
		default:
			next := a.createState()
			a.addTransition(state, next, int(r))
			state = next
			starred = false
		}
	}
	a.setAccept(state, true)
	a.finishState()
	return a
}
