package automaton

import (
	"fmt"
)

// util/automaton/Transition.java

/*
Holds one transition of an Automaton: an inclusive codepoint interval
[Min,Max] from Source to Dest. Transitions are plain values; mutating
one never mutates the automaton it was read from.
*/
type Transition struct {
	Source, Dest int
	Min, Max     int
}

func (t Transition) String() string {
	if t.Min == t.Max {
		return fmt.Sprintf("%v --%v--> %v", t.Source, t.Min, t.Dest)
	}
	return fmt.Sprintf("%v --%v-%v--> %v", t.Source, t.Min, t.Max, t.Dest)
}
