package kgram

import "testing"

func TestHashesCountAndPositions(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e"}
	hashes := Hashes(tokens, 3)

	if len(hashes) != 3 {
		t.Fatalf("got %d hashes, want 3", len(hashes))
	}
	for i, h := range hashes {
		if h.Position != i {
			t.Errorf("hash %d has position %d, want %d", i, h.Position, i)
		}
	}
}

func TestHashesShorterThanKIsEmpty(t *testing.T) {
	if got := Hashes([]string{"a", "b"}, 5); len(got) != 0 {
		t.Errorf("got %d hashes, want 0", len(got))
	}
}

func TestHashesDeterministic(t *testing.T) {
	tokens := []string{"begin", "IDENT", ":=", "NUM", ";", "end", "."}
	a := Hashes(tokens, 4)
	b := Hashes(tokens, 4)

	if len(a) != len(b) {
		t.Fatalf("length mismatch across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("hash %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestHashesDistinguishTokenBoundaries(t *testing.T) {
	// "AB","C" must not hash the same as "A","BC" despite equal concatenation.
	h1 := hashWindow([]string{"AB", "C"})
	h2 := hashWindow([]string{"A", "BC"})
	if h1 == h2 {
		t.Error("boundary-distinct windows hashed identically")
	}
}
