package automaton

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// util/automaton/SortedIntSet.java

// If we hold more than this many states, we switch from O(N^2)
// linear ops to O(N log(N)) TreeMap
const TREE_MAP_CUTOVER = 30

/*
A multiset of int states (NFA state ids with reference counts), used
by determinize(). Below TREE_MAP_CUTOVER distinct values it is two
parallel sorted slices with linear insert/remove; at the cutover it
transparently switches to a map, and reverts to the slices only once
the set fully drains, never flapping near the boundary.

The same instance is reused and drained across all determinization
steps; freeze() snapshots the current contents as an immutable
FrozenIntSet identity.
*/
type SortedIntSet struct {
	values   []int
	counts   []int
	dict     map[int]int // keys need sort
	hashCode int64

	useTreeMap bool
}

func newSortedIntSet(capacity int) *SortedIntSet {
	return &SortedIntSet{
		values: make([]int, 0, capacity),
		counts: make([]int, 0, capacity),
	}
}

// Adds this state to the set
func (sis *SortedIntSet) incr(num int) {
	if sis.useTreeMap {
		sis.dict[num]++
		return
	}

	for i, v := range sis.values {
		if v == num {
			sis.counts[i]++
			return
		} else if num < v {
			// insert here
			sis.values = append(sis.values, 0)
			copy(sis.values[i+1:], sis.values[i:])
			sis.values[i] = num
			sis.counts = append(sis.counts, 0)
			copy(sis.counts[i+1:], sis.counts[i:])
			sis.counts[i] = 1
			return
		}
	}

	// append
	sis.values = append(sis.values, num)
	sis.counts = append(sis.counts, 1)

	if len(sis.values) == TREE_MAP_CUTOVER {
		sis.useTreeMap = true
		sis.dict = make(map[int]int)
		for i, v := range sis.values {
			sis.dict[v] = sis.counts[i]
		}
	}
}

// Removes the state from the set, if count decrs to 0
func (sis *SortedIntSet) decr(num int) {
	if sis.useTreeMap {
		count, ok := sis.dict[num]
		assert(ok)
		if count == 1 {
			delete(sis.dict, num)
			// Fall back to simple slices once the set fully drains
			if len(sis.dict) == 0 {
				sis.useTreeMap = false
				sis.values = sis.values[:0] // reuse slice
				sis.counts = sis.counts[:0] // reuse slice
			}
		} else {
			sis.dict[num] = count - 1
		}
		return
	}

	for i, v := range sis.values {
		if v == num {
			sis.counts[i]--
			if sis.counts[i] == 0 {
				sis.values = append(sis.values[:i], sis.values[i+1:]...)
				sis.counts = append(sis.counts[:i], sis.counts[i+1:]...)
			}
			return
		}
	}

	panic(fmt.Sprintf("state %v missing from set %v", num, sis))
}

func (sis *SortedIntSet) isEmpty() bool {
	if sis.useTreeMap {
		return len(sis.dict) == 0
	}
	return len(sis.values) == 0
}

/*
Recomputes the canonical hash over the sorted distinct values, seeded
with the cardinality. Must be called before freeze() or equals(): the
tree-map path re-materializes the sorted value slice here, since map
iteration order is not sorted.
*/
func (sis *SortedIntSet) computeHash() int64 {
	if sis.useTreeMap {
		sis.values = sis.values[:0]
		for state := range sis.dict {
			sis.values = append(sis.values, state)
		}
		sort.Ints(sis.values) // keys in map are not sorted
	}
	sis.hashCode = int64(len(sis.values))
	for _, v := range sis.values {
		sis.hashCode = 683*sis.hashCode + int64(v)
	}
	return sis.hashCode
}

/*
Snapshots the current sorted distinct values as an immutable identity
paired with the caller-assigned DFA state. computeHash() must have
been called since the last mutation.
*/
func (sis *SortedIntSet) freeze(state int) *FrozenIntSet {
	c := make([]int, len(sis.values))
	copy(c, sis.values)
	return &FrozenIntSet{values: c, hashCode: sis.hashCode, state: state}
}

func (sis *SortedIntSet) String() string {
	var b bytes.Buffer
	b.WriteRune('[')
	if sis.useTreeMap {
		first := true
		for _, v := range sortedKeys(sis.dict) {
			if !first {
				b.WriteRune(' ')
			}
			first = false
			fmt.Fprintf(&b, "%v:%v", v, sis.dict[v])
		}
	} else {
		for i, v := range sis.values {
			if i > 0 {
				b.WriteRune(' ')
			}
			fmt.Fprintf(&b, "%v:%v", v, sis.counts[i])
		}
	}
	b.WriteRune(']')
	return b.String()
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

/*
The immutable, hash-consed identity of one merged NFA-state set, used
as a DFA state key. Identity is the hash AND the sorted distinct
values; reference counts are deliberately excluded, since only which
NFA states are live matters for DFA-state deduplication.
*/
type FrozenIntSet struct {
	values   []int
	hashCode int64
	state    int
}

func newFrozenIntSetOf(num, state int) *FrozenIntSet {
	hashCode := 683*int64(1) + int64(num)
	return &FrozenIntSet{
		values:   []int{num},
		hashCode: hashCode,
		state:    state,
	}
}

func (fis *FrozenIntSet) equals(hashCode int64, values []int) bool {
	if fis.hashCode != hashCode || len(fis.values) != len(values) {
		return false
	}
	for i, v := range fis.values {
		if values[i] != v {
			return false
		}
	}
	return true
}

func (fis *FrozenIntSet) String() string {
	var b bytes.Buffer
	b.WriteRune('[')
	for i, v := range fis.values {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteRune(']')
	return b.String()
}
