// Package memoize implements a single-process, in-memory memoization cache.
//
// Goals for this package:
//   - Make the core data structure explicit (a map from derived string keys to outputs)
//   - Provide get-or-compute semantics with at-most-once computation per key
//   - Give callers direct control of the store (Set/SetMany/Delete/Clear)
//   - Be concurrency-safe (RWMutex) with correctness as the primary goal
package memoize
