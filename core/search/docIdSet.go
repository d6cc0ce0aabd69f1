package search

import (
	"math"

	"github.com/ironsweet/gosegment/core/util"
)

// search/DocIdSetIterator.java

/*
When returned by NextDoc(), Advance(target) and DocID() it means there
are no more docs in the iterator.
*/
const NO_MORE_DOCS = int(math.MaxInt32)

/*
This abstract class defines methods to iterate over a set of
non-decreasing doc ids. Note that this class assumes it iterates on
doc ids, and therefore NO_MORE_DOCS is set to MaxInt32 in order to be
used as a sentinel object.
*/
type DocIdSetIterator interface {
	// Returns the following:
	//   -1 if NextDoc() or Advance(int) were not called yet.
	//   NO_MORE_DOCS if the iterator has exhausted.
	//   Otherwise it should return the doc ID it is currently on.
	DocID() int
	// Advances to the next document in the set and returns the doc it
	// is currently on, or NO_MORE_DOCS if there are no more docs in
	// the set.
	NextDoc() (int, error)
	// Advances to the first beyond the current whose document number
	// is greater than or equal to target, and returns the document
	// number itself. Exhausts the iterator and returns NO_MORE_DOCS if
	// target is greater than the highest document number in the set.
	Advance(target int) (int, error)
}

// search/DocIdSet.java

/*
A DocIdSet contains a set of doc ids. Implementing classes must only
implement Iterator() to provide access to the set.
*/
type DocIdSet interface {
	util.Accountable
	// Provides a DocIdSetIterator to access the set. This
	// implementation can return nil if there are no docs that match.
	Iterator() DocIdSetIterator
	// Optionally provides a Bits interface for random access. Returns
	// nil if this DocIdSet does not support random access.
	Bits() util.Bits
	// This method is a hint for CachingWrapperFilter, if this DocIdSet
	// should be cached without copying it.
	IsCacheable() bool
}

/*
The sentinel set for the empty doc-id universe. Cached in place of nil
so a cache lookup can distinguish "evaluated, matched nothing" from
"not yet evaluated".
*/
var EMPTY_DOC_ID_SET DocIdSet = &emptyDocIdSet{}

type emptyDocIdSet struct{}

func (s *emptyDocIdSet) Iterator() DocIdSetIterator { return nil }
func (s *emptyDocIdSet) Bits() util.Bits            { return nil }
func (s *emptyDocIdSet) IsCacheable() bool          { return true }
func (s *emptyDocIdSet) RamBytesUsed() int64        { return 0 }

// search/BitsFilteredDocIdSet.java

/*
Wraps a DocIdSet with a live-docs mask, filtering out deleted
documents at iteration time. The mask is applied here, at return time,
never baked into the wrapped set, so one cached set serves many delete
states.
*/
func WrapWithBits(set DocIdSet, acceptDocs util.Bits) DocIdSet {
	if set == nil {
		return nil
	}
	if acceptDocs == nil {
		return set
	}
	return &bitsFilteredDocIdSet{set, acceptDocs}
}

type bitsFilteredDocIdSet struct {
	inner      DocIdSet
	acceptDocs util.Bits
}

func (s *bitsFilteredDocIdSet) Iterator() DocIdSetIterator {
	it := s.inner.Iterator()
	if it == nil {
		return nil
	}
	return &filteredDocIdSetIterator{inner: it, acceptDocs: s.acceptDocs, doc: -1}
}

func (s *bitsFilteredDocIdSet) Bits() util.Bits {
	return nil
}

func (s *bitsFilteredDocIdSet) IsCacheable() bool {
	// the mask changes between delete states; only the inner set is stable
	return false
}

func (s *bitsFilteredDocIdSet) RamBytesUsed() int64 {
	return s.inner.RamBytesUsed()
}

type filteredDocIdSetIterator struct {
	inner      DocIdSetIterator
	acceptDocs util.Bits
	doc        int
}

func (it *filteredDocIdSetIterator) DocID() int {
	return it.doc
}

func (it *filteredDocIdSetIterator) NextDoc() (int, error) {
	doc, err := it.inner.NextDoc()
	for err == nil && doc != NO_MORE_DOCS && !it.acceptDocs.At(doc) {
		doc, err = it.inner.NextDoc()
	}
	it.doc = doc
	return doc, err
}

func (it *filteredDocIdSetIterator) Advance(target int) (int, error) {
	doc, err := it.inner.Advance(target)
	for err == nil && doc != NO_MORE_DOCS && !it.acceptDocs.At(doc) {
		doc, err = it.inner.NextDoc()
	}
	it.doc = doc
	return doc, err
}
