package scoring

import (
	"testing"

	"github.com/oakmoss/platon/internal/fragment"
	"github.com/oakmoss/platon/internal/tokenizer"
)

func tokenize(t *testing.T, name, src string) *tokenizer.TokenizedFile {
	t.Helper()
	tf, err := tokenizer.Tokenize(name, src)
	if err != nil {
		t.Fatalf("Tokenize(%s): %v", name, err)
	}
	return tf
}

func TestScoreClassifiesByConfidenceThreshold(t *testing.T) {
	left := tokenize(t, "a.pas", "program P;\nbegin\nx := 1;\nend.\n")
	right := tokenize(t, "b.pas", "program Q;\nbegin\ny := 1;\nend.\n")

	sharedTokens := make([]string, 50)
	for i := range sharedTokens {
		sharedTokens[i] = "IDENT"
	}

	lifted := fragment.Lifted{
		LeftKGramRange:     fragment.Range{From: 0, To: 42},
		LeftTokenRange:     fragment.Range{From: 0, To: 49},
		RightTokenRange:    fragment.Range{From: 0, To: 49},
		LeftLineRange:      fragment.Range{From: 1, To: left.LineCount()},
		RightLineRange:     fragment.Range{From: 1, To: right.LineCount()},
		SharedTokens:       sharedTokens,
		SharedFingerprints: 200,
	}

	mf := Score("f1", 8, lifted, left, right)
	if mf.FragmentType != ClassExact {
		t.Errorf("FragmentType = %s, want EXACT for a dense, large fragment", mf.FragmentType)
	}
	if mf.Confidence < 0.8 {
		t.Errorf("Confidence = %v, want >= 0.8", mf.Confidence)
	}
}

func TestScoreLowDensityIsStructural(t *testing.T) {
	left := tokenize(t, "a.pas", "program P;\nbegin\nx := 1;\nend.\n")
	right := tokenize(t, "b.pas", "program Q;\nbegin\ny := 1;\nend.\n")

	lifted := fragment.Lifted{
		LeftKGramRange:     fragment.Range{From: 0, To: 0},
		LeftTokenRange:     fragment.Range{From: 0, To: left.TokenCount() - 1},
		RightTokenRange:    fragment.Range{From: 0, To: right.TokenCount() - 1},
		LeftLineRange:      fragment.Range{From: 1, To: left.LineCount()},
		RightLineRange:     fragment.Range{From: 1, To: right.LineCount()},
		SharedTokens:       left.Tokens[:2],
		SharedFingerprints: 1,
	}

	mf := Score("f2", 8, lifted, left, right)
	if mf.FragmentType != ClassStructural {
		t.Errorf("FragmentType = %s, want STRUCTURAL for a tiny, sparse fragment", mf.FragmentType)
	}
}

func TestPatternTruncatesLongTokenLists(t *testing.T) {
	tokens := make([]string, 30)
	for i := range tokens {
		tokens[i] = "IDENT"
	}
	got := pattern(tokens)
	want := "IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT ... IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT IDENT"
	if got != want {
		t.Errorf("pattern() = %q, want %q", got, want)
	}
}

func TestPatternKeepsShortTokenListsWhole(t *testing.T) {
	tokens := []string{"begin", "IDENT", ":=", "NUM", ";", "end", "."}
	got := pattern(tokens)
	want := "begin IDENT := NUM ; end ."
	if got != want {
		t.Errorf("pattern() = %q, want %q", got, want)
	}
}

func TestSignificantFiltersOnConfidenceAndSize(t *testing.T) {
	mf := MappedFragment{Confidence: 0.5, SharedTokens: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	if !Significant(mf, 8) {
		t.Errorf("Significant = false, want true (confidence 0.5 >= 0.3, len(tokens) 8 >= k 8)")
	}

	tooSmall := MappedFragment{Confidence: 0.9, SharedTokens: []string{"a"}}
	if Significant(tooSmall, 8) {
		t.Errorf("Significant = true, want false (len(tokens) 1 < k 8)")
	}

	tooLow := MappedFragment{Confidence: 0.1, SharedTokens: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	if Significant(tooLow, 8) {
		t.Errorf("Significant = true, want false (confidence 0.1 < 0.3)")
	}
}

func TestAdaptiveThresholdTable(t *testing.T) {
	cases := []struct {
		similarity    float64
		fragmentCount int
		want          float64
	}{
		{0.9, 6, 0.7},
		{0.7, 4, 0.5},
		{0.5, 2, 0.35},
		{0.1, 0, 0.3},
	}
	for _, c := range cases {
		if got := AdaptiveThreshold(c.similarity, c.fragmentCount); got != c.want {
			t.Errorf("AdaptiveThreshold(%v, %d) = %v, want %v", c.similarity, c.fragmentCount, got, c.want)
		}
	}
}

func TestLabelVeryHighRequiresStrongSignals(t *testing.T) {
	label := Label(0.95, 0.9, 20, 0.8, 0.8, 10, 30)
	if label != LabelVeryHigh {
		t.Errorf("Label = %s, want VERY_HIGH", label)
	}
}

func TestLabelLowOnWeakSignals(t *testing.T) {
	label := Label(0.1, 0.1, 0, 0.1, 0.1, 0, 0)
	if label != LabelLow {
		t.Errorf("Label = %s, want LOW", label)
	}
}

func TestBatchThresholdClampedToRange(t *testing.T) {
	if got := BatchThreshold([]float64{0.01, 0.01, 0.01}); got != 0.25 {
		t.Errorf("BatchThreshold(low variance, low mean) = %v, want 0.25 floor", got)
	}
	if got := BatchThreshold([]float64{0.95, 0.99, 1.0}); got != 0.8 {
		t.Errorf("BatchThreshold(high mean) = %v, want 0.8 ceiling", got)
	}
	if got := BatchThreshold(nil); got != 0.25 {
		t.Errorf("BatchThreshold(nil) = %v, want 0.25", got)
	}
}
