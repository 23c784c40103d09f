// Package winnow implements the Schleimer-Wilkerson-Aiken winnowing
// algorithm: selecting a sparse, noise-resistant set of fingerprints from a
// k-gram hash sequence.
package winnow

import "github.com/oakmoss/platon/internal/kgram"

// Fingerprint is a selected (hash, k-gram position) pair.
type Fingerprint struct {
	Hash     uint64
	Position int
}

// Select runs the winnowing rule over hashes with window width w: in every
// window of w consecutive hashes, the position of the minimum hash is
// selected; ties break to the rightmost minimum in the window; a position
// already selected from the previous window is not re-emitted. The result
// is sorted by position (ascending), which winnowing naturally produces.
//
// Given identical input the result is bit-identical across runs and
// platforms — no map iteration, no randomised hashing.
func Select(hashes []kgram.Hash, w int) []Fingerprint {
	if w < 1 || len(hashes) == 0 {
		return nil
	}
	if w == 1 {
		// every k-gram is its own window of size one; select everything
		out := make([]Fingerprint, len(hashes))
		for i, h := range hashes {
			out[i] = Fingerprint{Hash: h.Value, Position: h.Position}
		}
		return out
	}

	// A document shorter than the window produces no full window of width w;
	// fall back to treating the whole sequence as a single window rather
	// than selecting nothing.
	if len(hashes) < w {
		w = len(hashes)
	}

	var selected []Fingerprint
	lastSelectedIdx := -1

	for start := 0; start+w <= len(hashes); start++ {
		end := start + w // exclusive

		minIdx := start
		for i := start + 1; i < end; i++ {
			if hashes[i].Value <= hashes[minIdx].Value {
				minIdx = i // rightmost minimum on ties
			}
		}

		if minIdx != lastSelectedIdx {
			selected = append(selected, Fingerprint{
				Hash:     hashes[minIdx].Value,
				Position: hashes[minIdx].Position,
			})
			lastSelectedIdx = minIdx
		}
	}

	return selected
}
