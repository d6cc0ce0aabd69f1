package search

import (
	"fmt"
	"sync"

	"github.com/ironsweet/gosegment/core/util"
)

// search/CachingWrapperFilter.java

/*
Wraps another Filter's result and caches it per segment. The purpose
is to allow filters to simply filter, and then wrap with this type to
add caching.

The cache is keyed by the segment's CoreKey. Entries are evicted
explicitly through OnSegmentClosed, invoked by whoever owns the
segment's lifecycle; the cache itself never extends a segment's
lifetime. Two goroutines racing on the same key may both compute and
store (last write wins); the map itself stays consistent.
*/
type CachingWrapperFilter struct {
	filter Filter
	policy FilterCachingPolicy

	cacheLock sync.Mutex
	cache     map[interface{}]DocIdSet

	// for testing
	hitCount, missCount int
}

/*
Wraps another filter's result and caches it according to the provided
policy.
*/
func NewCachingWrapperFilter(filter Filter, policy FilterCachingPolicy) *CachingWrapperFilter {
	return &CachingWrapperFilter{
		filter: filter,
		policy: policy,
		cache:  make(map[interface{}]DocIdSet),
	}
}

/* Same as NewCachingWrapperFilter with the large-segments-only default policy. */
func NewDefaultCachingWrapperFilter(filter Filter) *CachingWrapperFilter {
	return NewCachingWrapperFilter(filter, CACHE_ON_LARGE_SEGMENTS_DEFAULT)
}

/* Gets the contained filter. */
func (f *CachingWrapperFilter) Filter() Filter {
	return f.filter
}

/*
Provide the DocIdSet to be cached, using the DocIdSet provided by the
wrapped Filter. Returns the given set if it is already cacheable, else
materializes its iterator into a RoaringDocIdSet. Returns
EMPTY_DOC_ID_SET if the given set is nil or has no iterator; the empty
sentinel is stored in the cache instead of nil so "evaluated, empty"
stays distinguishable from "not yet evaluated".
*/
func (f *CachingWrapperFilter) docIdSetToCache(set DocIdSet, maxDoc int) (DocIdSet, error) {
	if set == nil {
		return EMPTY_DOC_ID_SET, nil
	}
	if set.IsCacheable() {
		return set, nil
	}
	it := set.Iterator()
	if it == nil {
		return EMPTY_DOC_ID_SET, nil
	}
	builder, err := NewRoaringDocIdSetBuilder(maxDoc).AddIterator(it)
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

func (f *CachingWrapperFilter) GetDocIdSet(ctx *SegmentContext, acceptDocs util.Bits) (DocIdSet, error) {
	key := ctx.CoreKey

	f.cacheLock.Lock()
	set, ok := f.cache[key]
	if ok {
		f.hitCount++
	}
	f.cacheLock.Unlock()

	if !ok {
		// compute with no live-docs restriction: the unrestricted
		// result is what gets cached, for reuse across delete states
		var err error
		set, err = f.filter.GetDocIdSet(ctx, nil)
		if err != nil {
			return nil, err
		}
		// compute once, then decide: a declined set is still returned
		if f.policy.ShouldCache(f.filter, ctx, set) {
			if set, err = f.docIdSetToCache(set, ctx.MaxDoc); err != nil {
				return nil, err
			}
			assert(set.IsCacheable())
			f.cacheLock.Lock()
			f.missCount++
			f.cache[key] = set
			f.cacheLock.Unlock()
		}
	}

	if set == EMPTY_DOC_ID_SET {
		return nil, nil
	}
	return WrapWithBits(set, acceptDocs), nil
}

/*
Drops the cache entry of the given segment. The segment's owner must
call this when the segment is closed or retired; the entry then
becomes reclaimable immediately.
*/
func (f *CachingWrapperFilter) OnSegmentClosed(coreKey interface{}) {
	f.cacheLock.Lock()
	delete(f.cache, coreKey)
	f.cacheLock.Unlock()
}

func (f *CachingWrapperFilter) RamBytesUsed() int64 {
	// Lock only to pull the current set of values:
	f.cacheLock.Lock()
	sets := make([]DocIdSet, 0, len(f.cache))
	for _, set := range f.cache {
		sets = append(sets, set)
	}
	f.cacheLock.Unlock()

	var total int64
	for _, set := range sets {
		total += set.RamBytesUsed()
	}
	return total
}

/* Named (segment, size) pairs of the current cache contents, for diagnostics. */
func (f *CachingWrapperFilter) ChildResources() []util.Accountable {
	f.cacheLock.Lock()
	snapshot := make(map[interface{}]util.Accountable, len(f.cache))
	for k, v := range f.cache {
		snapshot[k] = v
	}
	f.cacheLock.Unlock()
	return util.NamedAccountables("segment", snapshot)
}

func (f *CachingWrapperFilter) String() string {
	return fmt.Sprintf("CachingWrapperFilter(%v)", f.filter)
}
