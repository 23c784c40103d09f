package fragment

import (
	"testing"

	"github.com/oakmoss/platon/internal/fingerprint"
	"github.com/oakmoss/platon/internal/tokenizer"
)

func TestBuildMergesAdjacentRun(t *testing.T) {
	shared := []fingerprint.SharedKGram{
		{Hash: 1, LeftPos: 0, RightPos: 0},
		{Hash: 2, LeftPos: 1, RightPos: 1},
		{Hash: 3, LeftPos: 2, RightPos: 2},
	}

	frags := Build(shared, Options{})
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	if frags[0].Left != (Range{From: 0, To: 2}) {
		t.Errorf("Left = %+v, want {0 2}", frags[0].Left)
	}
	if len(frags[0].Pairs) != 3 {
		t.Errorf("Pairs = %d, want 3", len(frags[0].Pairs))
	}
}

func TestBuildSplitsOnGapBeyondTolerance(t *testing.T) {
	shared := []fingerprint.SharedKGram{
		{Hash: 1, LeftPos: 0, RightPos: 0},
		{Hash: 2, LeftPos: 1, RightPos: 1},
		{Hash: 3, LeftPos: 20, RightPos: 20},
	}

	frags := Build(shared, Options{GapTolerance: 1})
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}
}

func TestBuildSplitsOnDrift(t *testing.T) {
	shared := []fingerprint.SharedKGram{
		{Hash: 1, LeftPos: 0, RightPos: 0},
		{Hash: 2, LeftPos: 1, RightPos: 1},
		// offset jumps from 0 to 5, outside the default drift band of 1
		{Hash: 3, LeftPos: 2, RightPos: 7},
	}

	frags := Build(shared, Options{})
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2 (drift should split)", len(frags))
	}
}

func TestBuildDiscardsBelowMinOccurrences(t *testing.T) {
	shared := []fingerprint.SharedKGram{
		{Hash: 1, LeftPos: 0, RightPos: 0},
		{Hash: 2, LeftPos: 50, RightPos: 50},
	}

	frags := Build(shared, Options{MinOccurrences: 2})
	if len(frags) != 0 {
		t.Fatalf("got %d fragments, want 0 (each is a lone occurrence)", len(frags))
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if frags := Build(nil, Options{}); frags != nil {
		t.Errorf("Build(nil) = %v, want nil", frags)
	}
}

func TestLiftExtendsTokenRangeByK(t *testing.T) {
	left, err := tokenizer.Tokenize("left.pas", "program P;\nbegin\nx := 1;\nend.\n")
	if err != nil {
		t.Fatalf("Tokenize(left): %v", err)
	}
	right, err := tokenizer.Tokenize("right.pas", "program Q;\nbegin\ny := 1;\nend.\n")
	if err != nil {
		t.Fatalf("Tokenize(right): %v", err)
	}

	f := Fragment{
		Left:  Range{From: 0, To: 1},
		Right: Range{From: 0, To: 1},
		Pairs: []fingerprint.SharedKGram{{Hash: 1, LeftPos: 0, RightPos: 0}, {Hash: 2, LeftPos: 1, RightPos: 1}},
	}

	lifted := Lift(left, right, 3, f)
	if lifted.LeftTokenRange != (Range{From: 0, To: 3}) {
		t.Errorf("LeftTokenRange = %+v, want {0 3}", lifted.LeftTokenRange)
	}
	if lifted.LeftKGramRange != (Range{From: 0, To: 1}) {
		t.Errorf("LeftKGramRange = %+v, want {0 1} (unextended k-gram positions)", lifted.LeftKGramRange)
	}
	if lifted.SharedFingerprints != 2 {
		t.Errorf("SharedFingerprints = %d, want 2", lifted.SharedFingerprints)
	}
	if len(lifted.SharedTokens) != 4 {
		t.Errorf("SharedTokens = %v, want 4 tokens", lifted.SharedTokens)
	}
}

func TestLiftLineRangeClampedToFileBounds(t *testing.T) {
	left, err := tokenizer.Tokenize("left.pas", "program P;\nbegin\nend.\n")
	if err != nil {
		t.Fatalf("Tokenize(left): %v", err)
	}
	right, err := tokenizer.Tokenize("right.pas", "program Q;\nbegin\nend.\n")
	if err != nil {
		t.Fatalf("Tokenize(right): %v", err)
	}

	f := Fragment{
		Left:  Range{From: 0, To: left.TokenCount() - 1},
		Right: Range{From: 0, To: right.TokenCount() - 1},
		Pairs: []fingerprint.SharedKGram{{Hash: 1, LeftPos: 0, RightPos: 0}},
	}

	lifted := Lift(left, right, 1, f)
	if lifted.LeftLineRange.From < 1 || lifted.LeftLineRange.To > left.LineCount() {
		t.Errorf("LeftLineRange = %+v out of bounds [1,%d]", lifted.LeftLineRange, left.LineCount())
	}
}
