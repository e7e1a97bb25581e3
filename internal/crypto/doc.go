// Package crypto holds the small amount of hashing flashysurf needs.
//
// Visitors are identified by a keyed BLAKE2b digest of their client address
// and user agent. The key is derived from a configured salt so identifiers are
// stable for one deployment but cannot be recomputed, or linked across
// deployments, without it. NewSalt produces a fresh random salt.
package crypto
