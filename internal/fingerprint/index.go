// Package fingerprint builds an inverted index over winnowed fingerprints
// and extracts the shared-fingerprint structure between any two ingested
// files.
package fingerprint

import (
	"sort"

	"github.com/oakmoss/platon/internal/winnow"
)

// Occurrence is a single (file, k-gram position) pair registered under a
// hash in the inverted index.
type Occurrence struct {
	FileID   string
	Position int
}

// SharedKGram is a k-gram hash that both files selected, with each side's
// k-gram position.
type SharedKGram struct {
	Hash     uint64
	LeftPos  int
	RightPos int
}

// Index is an inverted map from fingerprint hash to the occurrences that
// produced it, filled by AddFile (the ingest phase) and read-only for every
// subsequent pairwise query (the query phase) — safe to query from
// multiple goroutines concurrently once ingestion is complete. The engine
// builds a fresh Index for each file pair it compares.
type Index struct {
	occurrences map[uint64][]Occurrence
	totals      map[string]int
}

// New creates an empty fingerprint index.
func New() *Index {
	return &Index{
		occurrences: make(map[uint64][]Occurrence),
		totals:      make(map[string]int),
	}
}

// AddFile registers every selected fingerprint of fileID under the
// inverted map. Ingesting the same fileID twice is the caller's error to
// avoid, since occurrences would simply accumulate; AddFile does not check
// for it.
func (idx *Index) AddFile(fileID string, fps []winnow.Fingerprint) {
	idx.totals[fileID] = len(fps)
	for _, fp := range fps {
		idx.occurrences[fp.Hash] = append(idx.occurrences[fp.Hash], Occurrence{FileID: fileID, Position: fp.Position})
	}
}

// Total returns the number of selected fingerprints registered for fileID.
func (idx *Index) Total(fileID string) int {
	return idx.totals[fileID]
}

// SharedKGrams enumerates the cross product of positions for every hash
// observed in both fileA and fileB, sorted primarily by left position and
// secondarily by right position. A file is never paired with itself: when
// fileA == fileB every occurrence is counted on the left side only, so the
// result is empty.
func (idx *Index) SharedKGrams(fileA, fileB string) []SharedKGram {
	var shared []SharedKGram

	for hash, occs := range idx.occurrences {
		var left, right []int
		for _, o := range occs {
			switch o.FileID {
			case fileA:
				left = append(left, o.Position)
			case fileB:
				right = append(right, o.Position)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		for _, l := range left {
			for _, r := range right {
				shared = append(shared, SharedKGram{Hash: hash, LeftPos: l, RightPos: r})
			}
		}
	}

	sort.Slice(shared, func(i, j int) bool {
		if shared[i].LeftPos != shared[j].LeftPos {
			return shared[i].LeftPos < shared[j].LeftPos
		}
		return shared[i].RightPos < shared[j].RightPos
	})

	return shared
}
