package automaton

import (
	"fmt"
	"math/big"
	"sort"
)

// util/automaton/Automaton.java

// Go doesn't have unicode.MinRune which should be 0
const MIN_CODE_POINT = 0

/*
Represents an automaton and all its states and transitions. States
are integers and must be created using createState(). Mark a state as
an accept state using setAccept(). Add transitions using
addTransitionRange(). Each state must have all of its transitions
added at once; once a state is finished, either because you've started
adding transitions to another state or you call finishState(), its
transitions are sorted (first by min, then max, then dest) and reduced
(transitions with adjacent labels going to the same dest are
combined). State 0 is always the initial state.

States and transitions live in flat parallel int slices: two ints per
state (offset into transitions, transition count) and three ints per
transition (dest, min, max).
*/
type Automaton struct {
	curState      int
	states        []int // 2x
	transitions   []int // 3x
	isAccept      *big.Int
	deterministic bool
}

func newEmptyAutomaton() *Automaton {
	return &Automaton{
		deterministic: true,
		curState:      -1,
		isAccept:      big.NewInt(0),
	}
}

/* Create a new state. */
func (a *Automaton) createState() int {
	state := len(a.states) / 2
	a.states = append(a.states, -1, 0)
	return state
}

/* Set or clear this state as an accept state. */
func (a *Automaton) setAccept(state int, accept bool) {
	assert2(state < a.numStates(), "state=%v is out of bounds (numStates=%v)", state, a.numStates())
	if accept {
		a.isAccept.SetBit(a.isAccept, state, 1)
	} else {
		a.isAccept.SetBit(a.isAccept, state, 0)
	}
}

/* Returns true if this state is an accept state. */
func (a *Automaton) isAcceptState(state int) bool {
	return a.isAccept.Bit(state) == 1
}

/* Add a new transition with min = max = label. */
func (a *Automaton) addTransition(source, dest, label int) {
	a.addTransitionRange(source, dest, label, label)
}

/* Add a new transition with the specified source, dest, min, max. */
func (a *Automaton) addTransitionRange(source, dest, min, max int) {
	assert(len(a.transitions)%3 == 0)
	assert2(min <= max, "min=%v must not be > max=%v", min, max)
	assert2(source < a.numStates(), "source=%v is out of bounds (maxState is %v)", source, a.numStates()-1)
	assert2(dest < a.numStates(), "dest=%v is out of bounds (maxState is %v)", dest, a.numStates()-1)

	if a.curState != source {
		if a.curState != -1 {
			a.finishCurrentState()
		}

		// move to next source:
		a.curState = source
		assert2(a.states[2*a.curState] == -1, "from state (%v) already had transitions added", source)
		assert(a.states[2*a.curState+1] == 0)
		a.states[2*a.curState] = len(a.transitions)
	}

	a.transitions = append(a.transitions, dest, min, max)

	// increment transition count for this state
	a.states[2*a.curState+1]++
}

/*
Add a [virtual] epsilon transition between source and dest. Dest state
must already have all transitions added because this method simply
copies those same transitions over to source.
*/
func (a *Automaton) addEpsilon(source, dest int) {
	// snapshot first; the appends below may grow the backing slice
	ts := a.transitionsOf(dest)
	for _, t := range ts {
		a.addTransitionRange(source, t.Dest, t.Min, t.Max)
	}
	if a.isAcceptState(dest) {
		a.setAccept(source, true)
	}
}

/*
Copies over all states and transitions from other. The state numbers
are sequentially assigned (appended).
*/
func (a *Automaton) copy(other *Automaton) {
	// bulk copy and then fixup the state pointers
	stateOffset := a.numStates()
	transOffset := len(a.transitions)
	a.states = append(a.states, other.states...)
	for i := 0; i < len(other.states); i += 2 {
		if a.states[stateOffset*2+i] != -1 {
			a.states[stateOffset*2+i] += transOffset
		}
	}
	for state, limit := 0, other.numStates(); state < limit; state++ {
		if other.isAcceptState(state) {
			a.setAccept(stateOffset+state, true)
		}
	}

	// bulk copy and then fixup dest for each transition
	a.transitions = append(a.transitions, other.transitions...)
	for i := 0; i < len(other.transitions); i += 3 {
		a.transitions[transOffset+i] += stateOffset
	}

	if !other.deterministic {
		a.deterministic = false
	}
}

/* Freezes the last state, sorting and reducing the transitions. */
func (a *Automaton) finishCurrentState() {
	numTransitions := a.states[2*a.curState+1]
	assert(numTransitions > 0)
	offset := a.states[2*a.curState]

	ts := make([]Transition, numTransitions)
	for i := range ts {
		ts[i] = Transition{
			Dest: a.transitions[offset+3*i],
			Min:  a.transitions[offset+3*i+1],
			Max:  a.transitions[offset+3*i+2],
		}
	}

	// sort by dest, min, max, then reduce any "adjacent" transitions
	// leading to the same dest:
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Dest != ts[j].Dest {
			return ts[i].Dest < ts[j].Dest
		}
		if ts[i].Min != ts[j].Min {
			return ts[i].Min < ts[j].Min
		}
		return ts[i].Max < ts[j].Max
	})
	reduced := ts[:0]
	for _, t := range ts {
		if n := len(reduced); n > 0 && reduced[n-1].Dest == t.Dest && t.Min <= reduced[n-1].Max+1 {
			if t.Max > reduced[n-1].Max {
				reduced[n-1].Max = t.Max
			}
			continue
		}
		reduced = append(reduced, t)
	}

	// sort transitions by min, max, dest:
	sort.Slice(reduced, func(i, j int) bool {
		if reduced[i].Min != reduced[j].Min {
			return reduced[i].Min < reduced[j].Min
		}
		if reduced[i].Max != reduced[j].Max {
			return reduced[i].Max < reduced[j].Max
		}
		return reduced[i].Dest < reduced[j].Dest
	})

	for i, t := range reduced {
		a.transitions[offset+3*i] = t.Dest
		a.transitions[offset+3*i+1] = t.Min
		a.transitions[offset+3*i+2] = t.Max
	}
	a.transitions = a.transitions[:offset+3*len(reduced)]
	a.states[2*a.curState+1] = len(reduced)

	if a.deterministic {
		for i := 1; i < len(reduced); i++ {
			if reduced[i].Min <= reduced[i-1].Max {
				a.deterministic = false
				break
			}
		}
	}
}

/*
Finishes the current state; call this once you are done adding
transitions for a state. This is automatically called if you start
adding transitions to a new source state, but for the last state you
add, you need to call this method yourself.
*/
func (a *Automaton) finishState() {
	if a.curState != -1 {
		a.finishCurrentState()
		a.curState = -1
	}
}

func (a *Automaton) numStates() int {
	return len(a.states) / 2
}

func (a *Automaton) numTransitionsOf(state int) int {
	if a.states[2*state] == -1 {
		return 0
	}
	return a.states[2*state+1]
}

/* Returns a snapshot of all transitions leaving the given state. */
func (a *Automaton) transitionsOf(state int) []Transition {
	n := a.numTransitionsOf(state)
	if n == 0 {
		return nil
	}
	offset := a.states[2*state]
	ts := make([]Transition, n)
	for i := range ts {
		ts[i] = Transition{
			Source: state,
			Dest:   a.transitions[offset+3*i],
			Min:    a.transitions[offset+3*i+1],
			Max:    a.transitions[offset+3*i+2],
		}
	}
	return ts
}

/*
Performs one deterministic step from the given state on the given
codepoint, returning the destination state or -1 if the label is not
accepted. The state must be finished.
*/
func (a *Automaton) step(state, label int) int {
	offset := a.states[2*state]
	for i, n := 0, a.numTransitionsOf(state); i < n; i++ {
		min := a.transitions[offset+3*i+1]
		if label < min {
			break // transitions are sorted by min
		}
		if label <= a.transitions[offset+3*i+2] {
			return a.transitions[offset+3*i]
		}
	}
	return -1
}

func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
