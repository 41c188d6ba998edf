package zcache

// Metrics reported by cache instances.
const (
	// MetricHit is a counter of fresh cache reads.
	MetricHit = "cache_hit"

	// MetricExpired is a counter of stale cache reads.
	MetricExpired = "cache_expired"

	// MetricMiss is a counter of failed cache reads.
	MetricMiss = "cache_miss"

	// MetricWrite is a counter of cache writes.
	MetricWrite = "cache_write"

	// MetricBuild is a counter of produced cache values.
	MetricBuild = "cache_build"

	// MetricFailedBuild is a counter of failures to produce cache value.
	MetricFailedBuild = "cache_failed_build"
)
