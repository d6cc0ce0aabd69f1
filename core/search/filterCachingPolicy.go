package search

// search/FilterCachingPolicy.java

/*
A policy defining which filters should be cached on which segments.

Implementations must be thread-safe: ShouldCache may be invoked
concurrently from many searching goroutines.
*/
type FilterCachingPolicy interface {
	/*
		Whether the given DocIdSet, computed for the given filter on the
		given segment, is worth keeping in the cache. The set has already
		been computed; declining only skips the store, never the result.
	*/
	ShouldCache(filter Filter, ctx *SegmentContext, set DocIdSet) bool
}

/*
A simple policy that caches on any segment holding at least a minimum
share of the index's documents: caching on tiny segments is mostly
wasted work, since they are the first to be merged away.
*/
type CacheOnLargeSegmentsPolicy struct {
	minSizeRatio float32
}

func NewCacheOnLargeSegmentsPolicy(minSizeRatio float32) *CacheOnLargeSegmentsPolicy {
	assert2(minSizeRatio > 0 && minSizeRatio <= 1,
		"minSizeRatio must be in (0,1], got %v", minSizeRatio)
	return &CacheOnLargeSegmentsPolicy{minSizeRatio}
}

/* Caches on segments holding >= 3% of the index's documents. */
var CACHE_ON_LARGE_SEGMENTS_DEFAULT = &CacheOnLargeSegmentsPolicy{minSizeRatio: 0.03}

func (p *CacheOnLargeSegmentsPolicy) ShouldCache(filter Filter, ctx *SegmentContext, set DocIdSet) bool {
	return float32(ctx.MaxDoc) >= p.minSizeRatio*float32(ctx.TotalMaxDoc)
}

/* A policy that caches everything, mainly useful for tests. */
type CacheAllPolicy struct{}

func (p CacheAllPolicy) ShouldCache(filter Filter, ctx *SegmentContext, set DocIdSet) bool {
	return true
}
