package search

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsweet/gosegment/core/util"
)

// a filter over fixed doc ids whose result is deliberately not
// cacheable, forcing the wrapper to materialize a copy
type sliceFilter struct {
	docs      []int
	callCount int
}

func (f *sliceFilter) GetDocIdSet(ctx *SegmentContext, acceptDocs util.Bits) (DocIdSet, error) {
	f.callCount++
	if len(f.docs) == 0 {
		return nil, nil
	}
	return &sliceDocIdSet{docs: f.docs}, nil
}

type sliceDocIdSet struct {
	docs []int
}

func (s *sliceDocIdSet) Iterator() DocIdSetIterator {
	return &sliceIterator{docs: s.docs, doc: -1}
}
func (s *sliceDocIdSet) Bits() util.Bits     { return nil }
func (s *sliceDocIdSet) IsCacheable() bool   { return false }
func (s *sliceDocIdSet) RamBytesUsed() int64 { return int64(8 * len(s.docs)) }

type sliceIterator struct {
	docs []int
	i    int
	doc  int
}

func (it *sliceIterator) DocID() int { return it.doc }

func (it *sliceIterator) NextDoc() (int, error) {
	if it.i >= len(it.docs) {
		it.doc = NO_MORE_DOCS
		return NO_MORE_DOCS, nil
	}
	it.doc = it.docs[it.i]
	it.i++
	return it.doc, nil
}

func (it *sliceIterator) Advance(target int) (int, error) {
	doc, err := it.NextDoc()
	for err == nil && doc < target {
		doc, err = it.NextDoc()
	}
	return doc, err
}

// accepts only the given doc ids
type setBits struct {
	accepted map[int]bool
	length   int
}

func (b *setBits) At(index int) bool { return b.accepted[index] }
func (b *setBits) Length() int       { return b.length }

func newSegment(key interface{}, maxDoc, totalMaxDoc int) *SegmentContext {
	return &SegmentContext{CoreKey: key, MaxDoc: maxDoc, TotalMaxDoc: totalMaxDoc}
}

func collect(t *testing.T, set DocIdSet) []int {
	if set == nil {
		return nil
	}
	it := set.Iterator()
	if it == nil {
		return nil
	}
	var docs []int
	for {
		doc, err := it.NextDoc()
		require.NoError(t, err)
		if doc == NO_MORE_DOCS {
			return docs
		}
		docs = append(docs, doc)
	}
}

func TestCachingWrapperFilterCachesPerSegment(t *testing.T) {
	inner := &sliceFilter{docs: []int{1, 5, 9}}
	f := NewCachingWrapperFilter(inner, CacheAllPolicy{})
	seg1 := newSegment("core1", 10, 20)
	seg2 := newSegment("core2", 10, 20)

	set, err := f.GetDocIdSet(seg1, nil)
	require.NoError(t, err)
	tassert.Equal(t, []int{1, 5, 9}, collect(t, set))
	tassert.Equal(t, 0, f.hitCount)
	tassert.Equal(t, 1, f.missCount)
	tassert.Equal(t, 1, inner.callCount)

	// second call on the same segment is served from the cache and
	// agrees on membership
	set, err = f.GetDocIdSet(seg1, nil)
	require.NoError(t, err)
	tassert.Equal(t, []int{1, 5, 9}, collect(t, set))
	tassert.Equal(t, 1, f.hitCount)
	tassert.Equal(t, 1, f.missCount)
	tassert.Equal(t, 1, inner.callCount)

	// a different core key is a different entry
	_, err = f.GetDocIdSet(seg2, nil)
	require.NoError(t, err)
	tassert.Equal(t, 2, f.missCount)
	tassert.Equal(t, 2, inner.callCount)
}

func TestCachingWrapperFilterAppliesAcceptDocsOnTop(t *testing.T) {
	inner := &sliceFilter{docs: []int{1, 5, 9}}
	f := NewCachingWrapperFilter(inner, CacheAllPolicy{})
	seg := newSegment("core1", 10, 10)

	live := &setBits{accepted: map[int]bool{1: true, 9: true}, length: 10}
	set, err := f.GetDocIdSet(seg, live)
	require.NoError(t, err)
	tassert.Equal(t, []int{1, 9}, collect(t, set))

	// the cached entry is unrestricted; a later call without a mask
	// sees everything, and a different mask sees its own view
	set, err = f.GetDocIdSet(seg, nil)
	require.NoError(t, err)
	tassert.Equal(t, []int{1, 5, 9}, collect(t, set))
	tassert.Equal(t, 1, inner.callCount)

	set, err = f.GetDocIdSet(seg, &setBits{accepted: map[int]bool{5: true}, length: 10})
	require.NoError(t, err)
	tassert.Equal(t, []int{5}, collect(t, set))
}

func TestCachingWrapperFilterCachesEmptyResult(t *testing.T) {
	inner := &sliceFilter{docs: nil}
	f := NewCachingWrapperFilter(inner, CacheAllPolicy{})
	seg := newSegment("core1", 10, 10)

	set, err := f.GetDocIdSet(seg, nil)
	require.NoError(t, err)
	tassert.Nil(t, set)
	tassert.Equal(t, 1, f.missCount)

	// empty is remembered, not recomputed
	set, err = f.GetDocIdSet(seg, nil)
	require.NoError(t, err)
	tassert.Nil(t, set)
	tassert.Equal(t, 1, f.hitCount)
	tassert.Equal(t, 1, inner.callCount)
}

func TestCachingWrapperFilterPolicyDecline(t *testing.T) {
	inner := &sliceFilter{docs: []int{2, 3}}
	f := NewCachingWrapperFilter(inner, CACHE_ON_LARGE_SEGMENTS_DEFAULT)
	// 10 of 10000 docs: well under the 3% default
	tiny := newSegment("tiny", 10, 10000)

	for i := 0; i < 2; i++ {
		set, err := f.GetDocIdSet(tiny, nil)
		require.NoError(t, err)
		tassert.Equal(t, []int{2, 3}, collect(t, set))
	}
	// declined results are computed every time and never hit
	tassert.Equal(t, 0, f.hitCount)
	tassert.Equal(t, 0, f.missCount)
	tassert.Equal(t, 2, inner.callCount)

	// a large segment of the same index is cached
	large := newSegment("large", 5000, 10000)
	_, err := f.GetDocIdSet(large, nil)
	require.NoError(t, err)
	tassert.Equal(t, 1, f.missCount)
}

func TestCachingWrapperFilterRamAccounting(t *testing.T) {
	inner := &sliceFilter{docs: []int{1, 2, 3, 4, 5}}
	f := NewCachingWrapperFilter(inner, CacheAllPolicy{})

	tassert.EqualValues(t, 0, f.RamBytesUsed())

	_, err := f.GetDocIdSet(newSegment("core1", 10, 20), nil)
	require.NoError(t, err)
	afterOne := f.RamBytesUsed()
	tassert.True(t, afterOne > 0)

	_, err = f.GetDocIdSet(newSegment("core2", 10, 20), nil)
	require.NoError(t, err)
	afterTwo := f.RamBytesUsed()
	tassert.True(t, afterTwo >= afterOne)
	tassert.Len(t, f.ChildResources(), 2)

	f.OnSegmentClosed("core1")
	tassert.True(t, f.RamBytesUsed() < afterTwo)
	tassert.Len(t, f.ChildResources(), 1)

	// evicting again or evicting an unknown key is harmless
	f.OnSegmentClosed("core1")
	f.OnSegmentClosed("never-seen")
	tassert.Len(t, f.ChildResources(), 1)
}

func TestNewCacheOnLargeSegmentsPolicyValidatesRatio(t *testing.T) {
	tassert.Panics(t, func() { NewCacheOnLargeSegmentsPolicy(0) })
	tassert.Panics(t, func() { NewCacheOnLargeSegmentsPolicy(1.5) })
	tassert.NotNil(t, NewCacheOnLargeSegmentsPolicy(0.5))
}

func TestRoaringDocIdSetBuilder(t *testing.T) {
	set := NewRoaringDocIdSetBuilder(100).Add(3).Add(17).Add(64).Build()
	tassert.Equal(t, 3, set.Cardinality())
	tassert.True(t, set.IsCacheable())
	tassert.Equal(t, []int{3, 17, 64}, collect(t, set))

	bits := set.Bits()
	require.NotNil(t, bits)
	tassert.True(t, bits.At(17))
	tassert.False(t, bits.At(18))
	tassert.Equal(t, 100, bits.Length())

	it := set.Iterator()
	doc, err := it.Advance(18)
	require.NoError(t, err)
	tassert.Equal(t, 64, doc)

	tassert.Panics(t, func() { NewRoaringDocIdSetBuilder(10).Add(5).Add(5) })
	tassert.Panics(t, func() { NewRoaringDocIdSetBuilder(10).Add(10) })
}
