package memoize

// Observer receives lookup outcomes from a Cache.
//
// Implementations must be safe for concurrent use. Callbacks may be
// invoked while the cache holds its write lock, so an Observer must not
// call back into the cache.
type Observer interface {
	OnHit()
	OnMiss()
	OnComputeError(key string, err error)
}
