package pairwise

import (
	"testing"

	"github.com/oakmoss/platon/internal/fingerprint"
	"github.com/oakmoss/platon/internal/winnow"
)

func TestAnalyzeSimilarityIsDice(t *testing.T) {
	idx := fingerprint.New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 1}})
	idx.AddFile("b", []winnow.Fingerprint{{Hash: 1, Position: 0}})

	p := Analyze(idx, "a", "b", 8)
	want := 2.0 * 1.0 / float64(2+1)
	if p.Similarity != want {
		t.Errorf("Similarity = %v, want %v", p.Similarity, want)
	}
}

func TestAnalyzeNoFingerprintsIsZero(t *testing.T) {
	idx := fingerprint.New()
	idx.AddFile("a", nil)
	idx.AddFile("b", nil)

	p := Analyze(idx, "a", "b", 8)
	if p.Similarity != 0 {
		t.Errorf("Similarity = %v, want 0 for empty fingerprint sets", p.Similarity)
	}
}

func TestAnalyzeLongestRunExtendsByK(t *testing.T) {
	idx := fingerprint.New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 1}, {Hash: 3, Position: 2}, {Hash: 9, Position: 10}})
	idx.AddFile("b", []winnow.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 1}, {Hash: 3, Position: 2}, {Hash: 9, Position: 50}})

	p := Analyze(idx, "a", "b", 8)
	// three consecutive left positions (0,1,2) -> run of 3 k-grams + k-1 tokens
	if p.Longest != 3+8-1 {
		t.Errorf("Longest = %d, want %d", p.Longest, 3+8-1)
	}
}

func TestAnalyzeCoverageCountsDistinctPositions(t *testing.T) {
	idx := fingerprint.New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 0}})
	idx.AddFile("b", []winnow.Fingerprint{{Hash: 1, Position: 0}, {Hash: 1, Position: 5}})

	p := Analyze(idx, "a", "b", 8)
	if p.LeftCovered != 1 {
		t.Errorf("LeftCovered = %d, want 1", p.LeftCovered)
	}
	if p.RightCovered != 2 {
		// both of file b's positions under hash 1 participate in the cross product
		t.Errorf("RightCovered = %d, want 2", p.RightCovered)
	}
}
