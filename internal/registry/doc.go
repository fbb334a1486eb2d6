// Package registry provides the name-keyed store behind the type registry.
//
// A Registry maps the human-readable names used by tooling (e.g. "Person",
// "int[]") to the descriptor that owns that name. Every name is bound once:
// the first registration wins and later attempts are rejected with
// ErrDuplicate, leaving the original binding in place.
//
// The store is populated during program startup, while types are registered,
// and is read-only afterwards. It holds a lock so that late registrations and
// concurrent readers do not corrupt the map, but it does not make descriptor
// construction itself concurrency-safe.
package registry
