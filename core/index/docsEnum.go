package index

import (
	"math"

	"github.com/ironsweet/gosegment/core/util"
)

// search/DocIdSetIterator.java
// index/DocsEnum.java

/*
When returned by NextDoc(), Advance(target) and DocID() it means there
are no more docs in the iterator.
*/
const NO_MORE_DOCS = int(math.MaxInt32)

const (
	// Flag to pass to TermsEnum.Docs() if you don't require term
	// frequencies in the returned enum.
	DOCS_ENUM_FLAG_NONE = 0
	// Flag to pass to TermsEnum.Docs() if you require term frequencies
	// in the returned enum.
	DOCS_ENUM_FLAG_FREQS = 1
)

/*
Iterates through the documents containing a term. NOTE: you must
first call NextDoc() before using any of the per-doc methods.
*/
type DocsEnum interface {
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
	// Returns term frequency in the current document, or 1 if the
	// field was indexed with INDEX_OPT_DOCS.
	Freq() (int, error)
}

/* DocsEnum over parallel doc/freq slices, honoring a live-docs mask. */
type sliceDocsEnum struct {
	docs     []int
	freqs    []int
	liveDocs util.Bits
	i        int // index of next doc to surface
	doc      int
}

func newSliceDocsEnum() *sliceDocsEnum {
	return &sliceDocsEnum{doc: -1}
}

func (de *sliceDocsEnum) reset(docs, freqs []int, liveDocs util.Bits) {
	de.docs = docs
	de.freqs = freqs
	de.liveDocs = liveDocs
	de.i = 0
	de.doc = -1
}

func (de *sliceDocsEnum) DocID() int {
	return de.doc
}

func (de *sliceDocsEnum) NextDoc() (int, error) {
	for de.i < len(de.docs) {
		doc := de.docs[de.i]
		de.i++
		if de.liveDocs == nil || de.liveDocs.At(doc) {
			de.doc = doc
			return doc, nil
		}
	}
	de.doc = NO_MORE_DOCS
	return NO_MORE_DOCS, nil
}

func (de *sliceDocsEnum) Advance(target int) (int, error) {
	doc, err := de.NextDoc()
	for err == nil && doc < target {
		doc, err = de.NextDoc()
	}
	return doc, err
}

func (de *sliceDocsEnum) Freq() (int, error) {
	assert2(de.doc >= 0 && de.doc != NO_MORE_DOCS, "DocsEnum is unpositioned")
	if de.freqs == nil {
		return 1, nil
	}
	return de.freqs[de.i-1], nil
}
