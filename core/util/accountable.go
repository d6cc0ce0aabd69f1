package util

import (
	"fmt"
	"sort"
)

// util/Accountable.java

/* An object whose RAM usage can be computed. */
type Accountable interface {
	// Return the memory usage of this object in bytes. Negative
	// values are illegal.
	RamBytesUsed() int64
}

// util/Accountables.java

/*
An Accountable with a description, used to report the composition of
a larger structure for diagnostics.
*/
type NamedAccountable struct {
	description string
	bytes       int64
}

func NewNamedAccountable(description string, bytes int64) *NamedAccountable {
	assert2(bytes >= 0, "bytes must be non-negative, got %v", bytes)
	return &NamedAccountable{description, bytes}
}

func (a *NamedAccountable) RamBytesUsed() int64 {
	return a.bytes
}

func (a *NamedAccountable) String() string {
	return fmt.Sprintf("%v [%v bytes]", a.description, a.bytes)
}

/*
Returns accountables for the provided map, one per entry, named by
prefix and the entry's key. The returned list is a copy, sorted by
description, so callers may keep it after the map has changed.
*/
func NamedAccountables(prefix string, in map[interface{}]Accountable) []Accountable {
	type pair struct {
		desc  string
		bytes int64
	}
	pairs := make([]pair, 0, len(in))
	for k, v := range in {
		pairs = append(pairs, pair{fmt.Sprintf("%v '%v'", prefix, k), v.RamBytesUsed()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].desc < pairs[j].desc })
	resources := make([]Accountable, 0, len(pairs))
	for _, p := range pairs {
		resources = append(resources, NewNamedAccountable(p.desc, p.bytes))
	}
	return resources
}
