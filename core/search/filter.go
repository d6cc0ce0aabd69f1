package search

import (
	"fmt"

	"github.com/ironsweet/gosegment/core/util"
)

// search/Filter.java
// index/LeafReaderContext.java

/*
SegmentContext describes one segment during filter evaluation: its
stable core identity, its doc-id space, and the current live docs.

CoreKey survives doc-id-preserving changes such as new deletions, but
not a true segment rewrite; caches key on it.
*/
type SegmentContext struct {
	// Stable identity token of the segment's core reader.
	CoreKey interface{}
	// One greater than the largest possible document number in this
	// segment.
	MaxDoc int
	// One greater than the largest possible document number across
	// the whole index this segment belongs to.
	TotalMaxDoc int
	// Live docs of the segment at the time the context was obtained,
	// or nil if nothing is deleted.
	LiveDocs util.Bits
}

/*
Convenient base for building restrictions on the documents a query may
match: a Filter computes, per segment, the set of acceptable doc ids.
*/
type Filter interface {
	/*
		Creates a DocIdSet enumerating the documents that should be
		permitted in search results, or nil if the filter matches nothing
		in this segment.

		acceptDocs are the documents that are alive, or nil if all
		documents are; the returned set must not match deleted docs.
	*/
	GetDocIdSet(ctx *SegmentContext, acceptDocs util.Bits) (DocIdSet, error)
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
