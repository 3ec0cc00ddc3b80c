// Package dedupe deduplicates trace-variation fingerprints, grounded on
// alterx's internal/dedupe (the same Map/LevelDB backend split) and
// alterx's top-level dedupe.go (the size-threshold selection between
// them).
package dedupe

// MaxInMemoryFingerprints bounds how many trace-variation fingerprints are
// kept in the in-memory MapBackend before falling back to the disk-backed
// LevelDBBackend, mirroring alterx's MaxInMemoryDedupeSize byte threshold
// with a fingerprint-count threshold instead (fingerprints here are
// small, fixed-shape strings, not arbitrary-length subdomain text).
var MaxInMemoryFingerprints = 200_000

// Backend is the minimal dedupe storage contract a generation run needs.
type Backend interface {
	Upsert(elem string)
	IterCallback(callback func(elem string))
	Cleanup()
}

// NewBackend picks MapBackend for runs expected to produce at most
// MaxInMemoryFingerprints distinct fingerprints, and LevelDBBackend
// otherwise.
func NewBackend(estimatedFingerprints int) Backend {
	if estimatedFingerprints <= MaxInMemoryFingerprints {
		return NewMapBackend()
	}
	return NewLevelDBBackend()
}
