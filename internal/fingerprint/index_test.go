package fingerprint

import (
	"testing"

	"github.com/oakmoss/platon/internal/winnow"
)

func TestSharedKGramsCrossProduct(t *testing.T) {
	idx := New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 0}, {Hash: 2, Position: 3}})
	idx.AddFile("b", []winnow.Fingerprint{{Hash: 1, Position: 5}, {Hash: 1, Position: 9}})

	shared := idx.SharedKGrams("a", "b")
	if len(shared) != 2 {
		t.Fatalf("got %d shared k-grams, want 2 (1 left pos x 2 right pos)", len(shared))
	}
	for _, s := range shared {
		if s.Hash != 1 {
			t.Errorf("unexpected hash %d in shared set, hash 2 has no right-side match", s.Hash)
		}
		if s.LeftPos != 0 {
			t.Errorf("LeftPos = %d, want 0", s.LeftPos)
		}
	}
}

func TestSharedKGramsSortedByPosition(t *testing.T) {
	idx := New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 5}, {Hash: 2, Position: 1}})
	idx.AddFile("b", []winnow.Fingerprint{{Hash: 1, Position: 10}, {Hash: 2, Position: 2}})

	shared := idx.SharedKGrams("a", "b")
	for i := 1; i < len(shared); i++ {
		if shared[i-1].LeftPos > shared[i].LeftPos {
			t.Errorf("shared k-grams not sorted by left position: %v", shared)
		}
	}
}

func TestNoSelfPairing(t *testing.T) {
	idx := New()
	idx.AddFile("a", []winnow.Fingerprint{{Hash: 1, Position: 0}})
	// Querying a file against itself counts every occurrence on the left
	// side only, so no shared k-grams come back.
	if total := idx.Total("a"); total != 1 {
		t.Errorf("Total(a) = %d, want 1", total)
	}
	if shared := idx.SharedKGrams("a", "a"); len(shared) != 0 {
		t.Errorf("SharedKGrams(a, a) = %v, want none", shared)
	}
}
