package automaton

import (
	"sort"
)

// util/automaton/Operations.java

// Basic automata operations.

/*
Returns an automaton that accepts the union of the languages of the
given automata.

Complexity: linear in number of states.
*/
func union(a1, a2 *Automaton) *Automaton {
	return unionN([]*Automaton{a1, a2})
}

/*
Returns an automaton that accepts the union of the languages of the
given automata.

Complexity: linear in number of states.
*/
func unionN(l []*Automaton) *Automaton {
	ans := newEmptyAutomaton()
	// create initial state
	ans.createState()
	// copy over all automata
	for _, a := range l {
		ans.copy(a)
	}
	// add epsilon transition from new initial state
	stateOffset := 1
	for _, a := range l {
		if a.numStates() == 0 {
			continue
		}
		ans.addEpsilon(0, stateOffset)
		stateOffset += a.numStates()
	}
	ans.finishState()
	return removeDeadStates(ans)
}

// Holds all transitions that start on this int point, or end at this
// point-1
type PointTransitions struct {
	point  int
	ends   []Transition
	starts []Transition
}

func newPointTransitions() *PointTransitions {
	return &PointTransitions{
		ends:   make([]Transition, 0, 2),
		starts: make([]Transition, 0, 2),
	}
}

func (pt *PointTransitions) reset(point int) {
	pt.point = point
	pt.ends = pt.ends[:0]     // reuse slice
	pt.starts = pt.starts[:0] // reuse slice
}

const HASHMAP_CUTOVER = 30

/*
Collates transitions of a merged NFA-state set by the points where
intervals open (min) and close (max+1). Like the state set itself, it
switches from a linear scan to a map above a small cutover.
*/
type PointTransitionSet struct {
	points  []*PointTransitions
	dict    map[int]*PointTransitions
	useHash bool
}

func newPointTransitionSet() *PointTransitionSet {
	return &PointTransitionSet{
		points: make([]*PointTransitions, 0, 5),
		dict:   make(map[int]*PointTransitions),
	}
}

func (pts *PointTransitionSet) next(point int) *PointTransitions {
	// 1st time we are seeing this point
	p := newPointTransitions()
	pts.points = append(pts.points, p)
	p.reset(point)
	return p
}

func (pts *PointTransitionSet) find(point int) *PointTransitions {
	if pts.useHash {
		p, ok := pts.dict[point]
		if !ok {
			p = pts.next(point)
			pts.dict[point] = p
		}
		return p
	}

	for _, p := range pts.points {
		if p.point == point {
			return p
		}
	}

	p := pts.next(point)
	if len(pts.points) == HASHMAP_CUTOVER {
		// switch to hash map on the fly
		assert(len(pts.dict) == 0)
		for _, v := range pts.points {
			pts.dict[v.point] = v
		}
		pts.useHash = true
	}
	return p
}

func (pts *PointTransitionSet) reset() {
	if pts.useHash {
		pts.dict = make(map[int]*PointTransitions)
		pts.useHash = false
	}
	pts.points = pts.points[:0] // reuse slice
}

func (pts *PointTransitionSet) sort() {
	sort.Slice(pts.points, func(i, j int) bool {
		return pts.points[i].point < pts.points[j].point
	})
}

func (pts *PointTransitionSet) add(t Transition) {
	p1 := pts.find(t.Min)
	p1.starts = append(p1.starts, t)

	p2 := pts.find(1 + t.Max)
	p2.ends = append(p2.ends, t)
}

/*
Determinizes the given automaton using subset construction: the merged
NFA-state sets reached while sweeping the codepoint space become DFA
states, deduplicated through their hash-consed frozen identities.

Split the code points in ranges, and merge overlapping states.

Worst case complexity: exponential in number of states.
*/
func determinize(a *Automaton) *Automaton {
	if a.deterministic || a.numStates() <= 1 {
		// already deterministic
		return a
	}

	b := newEmptyAutomaton()
	b.createState()
	b.setAccept(0, a.isAcceptState(0))

	initialset := newFrozenIntSetOf(0, 0)
	worklist := []*FrozenIntSet{initialset}

	// frozen sets so far, keyed by hash; each bucket is scanned for a
	// value-wise equal set
	newstate := map[int64][]*FrozenIntSet{initialset.hashCode: {initialset}}

	// like map[int]*PointTransitions
	points := newPointTransitionSet()

	// like sorted map[int]int
	statesSet := newSortedIntSet(5)

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		r := s.state

		// Collate all outgoing transitions by min/1+max
		for _, v := range s.values {
			for _, t := range a.transitionsOf(v) {
				points.add(t)
			}
		}

		if len(points.points) == 0 {
			// No outgoing transitions -- skip it
			continue
		}

		points.sort()

		lastPoint := -1
		accCount := 0

		for _, v := range points.points {
			point := v.point

			if !statesSet.isEmpty() {
				assert(lastPoint != -1)

				hashCode := statesSet.computeHash()

				var q = -1
				for _, fis := range newstate[hashCode] {
					if fis.equals(hashCode, statesSet.values) {
						q = fis.state
						assert2(fis == initialset || b.isAcceptState(q) == (accCount > 0),
							"accCount=%v vs existing accept=%v states=%v",
							accCount, b.isAcceptState(q), statesSet)
						break
					}
				}
				if q == -1 {
					q = b.createState()
					p := statesSet.freeze(q)
					worklist = append(worklist, p)
					b.setAccept(q, accCount > 0)
					newstate[hashCode] = append(newstate[hashCode], p)
				}

				b.addTransitionRange(r, q, lastPoint, point-1)
			}

			// process transitions that end on this point
			// (closes an overlapping interval)
			for _, t := range v.ends {
				statesSet.decr(t.Dest)
				if a.isAcceptState(t.Dest) {
					accCount--
				}
			}
			v.ends = v.ends[:0] // reuse slice

			// process transitions that start on this point
			// (opens a new interval)
			for _, t := range v.starts {
				statesSet.incr(t.Dest)
				if a.isAcceptState(t.Dest) {
					accCount++
				}
			}
			v.starts = v.starts[:0] // reuse slice
			lastPoint = point
		}
		points.reset()
		assert2(statesSet.isEmpty(), "set should be empty, got %v", statesSet)
	}
	b.finishState()
	b.deterministic = true
	return b
}

/*
Returns true if the given string is accepted by the automaton, which
must be deterministic.

Complexity: linear in the length of the string.
*/
func run(a *Automaton, s string) bool {
	assert2(a.deterministic, "automaton must be deterministic")
	if a.numStates() == 0 {
		return false
	}
	state := 0
	for _, ch := range s {
		if state = a.step(state, int(ch)); state == -1 {
			return false
		}
	}
	return a.isAcceptState(state)
}

/*
Removes dead states (a state is "dead" if it is not reachable from the
initial state or no accept state is reachable from it), renumbering
the survivors.
*/
func removeDeadStates(a *Automaton) *Automaton {
	numStates := a.numStates()
	live := liveStates(a)

	remap := make([]int, numStates)
	b := newEmptyAutomaton()
	for s := 0; s < numStates; s++ {
		if live[s] {
			remap[s] = b.createState()
			b.setAccept(remap[s], a.isAcceptState(s))
		} else {
			remap[s] = -1
		}
	}
	for s := 0; s < numStates; s++ {
		if !live[s] {
			continue
		}
		for _, t := range a.transitionsOf(s) {
			if live[t.Dest] {
				b.addTransitionRange(remap[s], remap[t.Dest], t.Min, t.Max)
			}
		}
	}
	b.finishState()
	b.deterministic = a.deterministic
	return b
}

func hasDeadStates(a *Automaton) bool {
	live := liveStates(a)
	for s := 0; s < a.numStates(); s++ {
		if !live[s] {
			return true
		}
	}
	return false
}

/* States both reachable from the initial state and co-reachable from an accept state. */
func liveStates(a *Automaton) []bool {
	numStates := a.numStates()
	reachable := make([]bool, numStates)
	if numStates > 0 {
		reachable[0] = true
		for queue := []int{0}; len(queue) > 0; {
			s := queue[0]
			queue = queue[1:]
			for _, t := range a.transitionsOf(s) {
				if !reachable[t.Dest] {
					reachable[t.Dest] = true
					queue = append(queue, t.Dest)
				}
			}
		}
	}

	// reverse edges, then walk back from the accept states
	prev := make([][]int, numStates)
	for s := 0; s < numStates; s++ {
		for _, t := range a.transitionsOf(s) {
			prev[t.Dest] = append(prev[t.Dest], s)
		}
	}
	coreachable := make([]bool, numStates)
	var queue []int
	for s := 0; s < numStates; s++ {
		if a.isAcceptState(s) {
			coreachable[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range prev[s] {
			if !coreachable[p] {
				coreachable[p] = true
				queue = append(queue, p)
			}
		}
	}

	live := make([]bool, numStates)
	for s := 0; s < numStates; s++ {
		live[s] = reachable[s] && coreachable[s]
	}
	return live
}
