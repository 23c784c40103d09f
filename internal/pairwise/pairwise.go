// Package pairwise derives coverage and similarity metrics between two
// tokenized files from their shared fingerprints.
package pairwise

import (
	"sort"

	"github.com/oakmoss/platon/internal/fingerprint"
)

// Pair holds the shared-fingerprint structure and derived metrics between
// file A and file B. It borrows the shared k-gram list from the index; it
// does not own it.
type Pair struct {
	FileA, FileB string
	Shared       []fingerprint.SharedKGram

	Overlap     int
	LeftTotal   int
	RightTotal  int
	LeftCovered int
	// RightCovered is the number of distinct fingerprint positions on the B
	// side that participate in any shared k-gram with A.
	RightCovered int
	// Similarity is the Dice coefficient over each side's selected
	// fingerprint sets: 2*overlap / (leftTotal + rightTotal).
	Similarity float64
	// Longest is the longest contiguous run of shared-fingerprint positions
	// on the A side, measured in tokens (run length + K - 1).
	Longest int
}

// Analyze computes the Pair structure between fileA and fileB from idx. k
// is the k-gram size used to extend a k-gram run into a token span.
func Analyze(idx *fingerprint.Index, fileA, fileB string, k int) *Pair {
	shared := idx.SharedKGrams(fileA, fileB)

	p := &Pair{
		FileA:      fileA,
		FileB:      fileB,
		Shared:     shared,
		Overlap:    len(shared),
		LeftTotal:  idx.Total(fileA),
		RightTotal: idx.Total(fileB),
	}

	p.LeftCovered = countDistinct(shared, func(s fingerprint.SharedKGram) int { return s.LeftPos })
	p.RightCovered = countDistinct(shared, func(s fingerprint.SharedKGram) int { return s.RightPos })

	if p.LeftTotal+p.RightTotal > 0 {
		p.Similarity = 2.0 * float64(p.Overlap) / float64(p.LeftTotal+p.RightTotal)
	}

	p.Longest = longestRunTokens(shared, k)

	return p
}

func countDistinct(shared []fingerprint.SharedKGram, key func(fingerprint.SharedKGram) int) int {
	seen := make(map[int]bool, len(shared))
	for _, s := range shared {
		seen[key(s)] = true
	}
	return len(seen)
}

// longestRunTokens finds the longest run of consecutive integer k-gram
// positions on the left side that all participate in some shared k-gram,
// and converts the run length from k-grams to tokens (run + k - 1).
func longestRunTokens(shared []fingerprint.SharedKGram, k int) int {
	if len(shared) == 0 {
		return 0
	}

	positions := make([]int, 0, len(shared))
	seen := make(map[int]bool, len(shared))
	for _, s := range shared {
		if !seen[s.LeftPos] {
			seen[s.LeftPos] = true
			positions = append(positions, s.LeftPos)
		}
	}
	sort.Ints(positions)

	best := 1
	run := 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	return best + k - 1
}
