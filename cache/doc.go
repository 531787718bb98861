// Package cache provides a bounded, time-expiring memoization layer for
// adapter results.
//
// The cache is keyed by operation name plus a stable serialization of the
// call inputs. Eviction is insertion-ordered (FIFO): at capacity the
// oldest-inserted surviving entry is dropped, regardless of how recently it
// was read. Expiry is lazy - checked on read, with the expired entry
// removed by that read - so an expired entry can occupy memory until it is
// read or evicted by capacity pressure.
//
// Adapter wraps any swephruntime.Adapter with this cache. Errors are never
// cached, and the global-mode setters (sidereal mode, ephemeris path)
// invalidate all entries since they change what the engine would compute.
package cache
