package engine

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// duplicatePair records a stream whose payload byte-identically matches an
// earlier-seen stream's payload.
type duplicatePair struct {
	dup       int
	canonical int
}

// findDuplicateStreams hashes every stream payload and reports duplicates.
// The hash is a fast non-cryptographic one, so a hash match alone is never
// trusted: candidates are verified byte-for-byte before a pair is recorded.
// Reference rewriting is not done here; the container's compaction pass
// unifies the duplicates the pairs point at.
func findDuplicateStreams(streams []StreamObject) []duplicatePair {
	seen := make(map[uint64][]StreamObject, len(streams))
	var pairs []duplicatePair

	// streams arrive ordered by object number, so the canonical object of
	// any duplicate group is the lowest-numbered one.
	for _, s := range streams {
		if len(s.SD.Raw) == 0 {
			continue
		}
		h := xxhash.Sum64(s.SD.Raw)
		matched := false
		for _, prev := range seen[h] {
			if bytes.Equal(prev.SD.Raw, s.SD.Raw) {
				pairs = append(pairs, duplicatePair{dup: s.ObjNr, canonical: prev.ObjNr})
				matched = true
				break
			}
		}
		if !matched {
			seen[h] = append(seen[h], s)
		}
	}
	return pairs
}
