package search

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ironsweet/gosegment/core/util"
)

// util/RoaringDocIdSet.java

/*
A DocIdSet over a compressed bitmap of ordered doc-id runs. This is
the compact, cacheable representation CachingWrapperFilter
materializes filter results into.
*/
type RoaringDocIdSet struct {
	bitmap *roaring.Bitmap
	maxDoc int
}

func (s *RoaringDocIdSet) Iterator() DocIdSetIterator {
	if s.bitmap.IsEmpty() {
		return nil
	}
	return &roaringIterator{it: s.bitmap.Iterator(), doc: -1}
}

func (s *RoaringDocIdSet) Bits() util.Bits {
	return &roaringBits{s.bitmap, s.maxDoc}
}

func (s *RoaringDocIdSet) IsCacheable() bool {
	return true
}

func (s *RoaringDocIdSet) RamBytesUsed() int64 {
	return int64(s.bitmap.GetSizeInBytes())
}

func (s *RoaringDocIdSet) Cardinality() int {
	return int(s.bitmap.GetCardinality())
}

type roaringBits struct {
	bitmap *roaring.Bitmap
	maxDoc int
}

func (b *roaringBits) At(index int) bool {
	return b.bitmap.Contains(uint32(index))
}

func (b *roaringBits) Length() int {
	return b.maxDoc
}

type roaringIterator struct {
	it  roaring.IntPeekable
	doc int
}

func (it *roaringIterator) DocID() int {
	return it.doc
}

func (it *roaringIterator) NextDoc() (int, error) {
	if !it.it.HasNext() {
		it.doc = NO_MORE_DOCS
		return NO_MORE_DOCS, nil
	}
	it.doc = int(it.it.Next())
	return it.doc, nil
}

func (it *roaringIterator) Advance(target int) (int, error) {
	it.it.AdvanceIfNeeded(uint32(target))
	return it.NextDoc()
}

/* Builder for a RoaringDocIdSet; doc ids must be added in increasing order. */
type RoaringDocIdSetBuilder struct {
	bitmap  *roaring.Bitmap
	maxDoc  int
	lastDoc int
}

func NewRoaringDocIdSetBuilder(maxDoc int) *RoaringDocIdSetBuilder {
	return &RoaringDocIdSetBuilder{
		bitmap:  roaring.New(),
		maxDoc:  maxDoc,
		lastDoc: -1,
	}
}

/* Add the given doc id to this builder. */
func (b *RoaringDocIdSetBuilder) Add(doc int) *RoaringDocIdSetBuilder {
	assert2(doc > b.lastDoc, "doc ids must be added in increasing order: %v <= %v", doc, b.lastDoc)
	assert2(doc < b.maxDoc, "doc=%v is out of bounds (maxDoc=%v)", doc, b.maxDoc)
	b.bitmap.Add(uint32(doc))
	b.lastDoc = doc
	return b
}

/* Add the content of the given iterator to this builder. */
func (b *RoaringDocIdSetBuilder) AddIterator(it DocIdSetIterator) (*RoaringDocIdSetBuilder, error) {
	doc, err := it.NextDoc()
	for err == nil && doc != NO_MORE_DOCS {
		b.Add(doc)
		doc, err = it.NextDoc()
	}
	return b, err
}

/* Build the RoaringDocIdSet; the builder must not be used after this. */
func (b *RoaringDocIdSetBuilder) Build() *RoaringDocIdSet {
	set := &RoaringDocIdSet{bitmap: b.bitmap, maxDoc: b.maxDoc}
	b.bitmap = nil
	return set
}
