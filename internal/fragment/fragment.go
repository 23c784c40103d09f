// Package fragment clusters sparse shared fingerprints into contiguous
// regions that co-occur in both files, then lifts those regions from
// k-gram ranges back to token ranges, line ranges, and source snippets.
package fragment

import (
	"sort"

	"github.com/oakmoss/platon/internal/fingerprint"
	"github.com/oakmoss/platon/internal/tokenizer"
)

// Range is an inclusive [From, To] span, either of k-gram positions or of
// token indices depending on context.
type Range struct {
	From int
	To   int
}

// Fragment is a maximal cluster of shared k-grams that track each other
// monotonically, in k-gram-position space.
type Fragment struct {
	Left  Range
	Right Range
	Pairs []fingerprint.SharedKGram
}

// Options configures the clustering pass. Zero values fall back to the
// spec's defaults.
type Options struct {
	// GapTolerance is the maximum allowed gap, in k-gram positions, between
	// the current fragment's right edge and the next shared k-gram before a
	// new fragment is started. Default 1 (consecutive or adjacent).
	GapTolerance int
	// DriftBand is the maximum allowed deviation, in k-grams, between a
	// candidate's right-minus-left offset and the fragment's seed offset.
	// Default 1.
	DriftBand int
	// MinOccurrences discards fragments with fewer shared k-grams than this.
	// Default 1.
	MinOccurrences int
}

func (o Options) withDefaults() Options {
	if o.GapTolerance == 0 {
		o.GapTolerance = 1
	}
	if o.DriftBand == 0 {
		o.DriftBand = 1
	}
	if o.MinOccurrences == 0 {
		o.MinOccurrences = 1
	}
	return o
}

// Build clusters a sorted shared-k-gram list into Fragments, in
// left-position order, deterministically and independent of platform.
func Build(shared []fingerprint.SharedKGram, opts Options) []Fragment {
	opts = opts.withDefaults()
	if len(shared) == 0 {
		return nil
	}

	sorted := make([]fingerprint.SharedKGram, len(shared))
	copy(sorted, shared)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].LeftPos != sorted[j].LeftPos {
			return sorted[i].LeftPos < sorted[j].LeftPos
		}
		return sorted[i].RightPos < sorted[j].RightPos
	})

	var fragments []Fragment
	cur := newFragment(sorted[0])
	seedOffset := sorted[0].RightPos - sorted[0].LeftPos

	for _, s := range sorted[1:] {
		offset := s.RightPos - s.LeftPos
		if s.LeftPos-cur.Left.To <= opts.GapTolerance &&
			s.RightPos-cur.Right.To <= opts.GapTolerance &&
			abs(offset-seedOffset) <= opts.DriftBand {
			extend(&cur, s)
			continue
		}

		fragments = append(fragments, cur)
		cur = newFragment(s)
		seedOffset = offset
	}
	fragments = append(fragments, cur)

	var kept []Fragment
	for _, f := range fragments {
		if len(f.Pairs) >= opts.MinOccurrences {
			kept = append(kept, f)
		}
	}

	return kept
}

func newFragment(seed fingerprint.SharedKGram) Fragment {
	return Fragment{
		Left:  Range{From: seed.LeftPos, To: seed.LeftPos},
		Right: Range{From: seed.RightPos, To: seed.RightPos},
		Pairs: []fingerprint.SharedKGram{seed},
	}
}

func extend(f *Fragment, s fingerprint.SharedKGram) {
	if s.LeftPos < f.Left.From {
		f.Left.From = s.LeftPos
	}
	if s.LeftPos > f.Left.To {
		f.Left.To = s.LeftPos
	}
	if s.RightPos < f.Right.From {
		f.Right.From = s.RightPos
	}
	if s.RightPos > f.Right.To {
		f.Right.To = s.RightPos
	}
	f.Pairs = append(f.Pairs, s)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Lifted is a Fragment lifted into token and line coordinates via the two
// files' position maps, ready for scoring.
type Lifted struct {
	LeftKGramRange     Range
	LeftTokenRange     Range
	RightTokenRange    Range
	LeftLineRange      Range
	RightLineRange     Range
	SharedTokens       []string
	SharedFingerprints int
}

// Lift converts k-gram ranges to token ranges (extending by K-1 tokens),
// looks up line ranges via each file's position map (clamped to
// [1, lineCount]), and copies the shared token values from the left file.
// LeftKGramRange is kept alongside LeftTokenRange since scoring's coherence
// term is defined over k-gram positions, not the extended token span.
func Lift(left, right *tokenizer.TokenizedFile, k int, f Fragment) Lifted {
	leftTokenRange := Range{From: f.Left.From, To: f.Left.To + k - 1}
	rightTokenRange := Range{From: f.Right.From, To: f.Right.To + k - 1}

	l := Lifted{
		LeftKGramRange:  f.Left,
		LeftTokenRange:  leftTokenRange,
		RightTokenRange: rightTokenRange,
		LeftLineRange: Range{
			From: left.LineAt(leftTokenRange.From),
			To:   left.LineAt(leftTokenRange.To),
		},
		RightLineRange: Range{
			From: right.LineAt(rightTokenRange.From),
			To:   right.LineAt(rightTokenRange.To),
		},
		SharedFingerprints: len(f.Pairs),
	}

	if leftTokenRange.From >= 0 && leftTokenRange.To < len(left.Tokens) {
		l.SharedTokens = append([]string{}, left.Tokens[leftTokenRange.From:leftTokenRange.To+1]...)
	}

	return l
}
