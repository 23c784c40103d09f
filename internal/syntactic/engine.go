// Package syntactic composes the tokenizer, k-gram hasher, winnowing
// selector, fingerprint index, pair analyser, fragment builder, and scorer
// into the single entry point external callers use: Detect and
// DetectBatch.
package syntactic

import (
	"fmt"
	"time"

	"github.com/oakmoss/platon/internal/fingerprint"
	"github.com/oakmoss/platon/internal/fragment"
	"github.com/oakmoss/platon/internal/kgram"
	"github.com/oakmoss/platon/internal/pairwise"
	"github.com/oakmoss/platon/internal/scoring"
	"github.com/oakmoss/platon/internal/tokenizer"
	"github.com/oakmoss/platon/internal/winnow"
)

// Config holds the engine's construction-time parameters.
type Config struct {
	// KGramSize is K, the number of tokens per k-gram. Default 8.
	KGramSize int
	// WindowSize is W, the winnowing window width. Default 15.
	WindowSize int
	// SyntacticWeight scales syntactic similarity into overall similarity.
	// Default 1.0; room is left for future non-syntactic contributions.
	SyntacticWeight float64
}

// DefaultConfig returns the spec's recommended defaults.
func DefaultConfig() Config {
	return Config{KGramSize: 8, WindowSize: 15, SyntacticWeight: 1.0}
}

func (c Config) validate() error {
	if c.KGramSize < 2 {
		return &InvalidParameterError{Param: "kgramSize", Value: c.KGramSize, Rule: "must be >= 2"}
	}
	if c.WindowSize < 1 {
		return &InvalidParameterError{Param: "windowSize", Value: c.WindowSize, Rule: "must be >= 1"}
	}
	return nil
}

// DetectOptions are the per-call overrides a caller may supply.
type DetectOptions struct {
	// Threshold overrides the adaptive isPlagiarism boundary when non-nil.
	Threshold *float64
	// MinOccurrences overrides the fragment builder's default of 1 shared
	// k-gram per surviving fragment.
	MinOccurrences *int
}

// Engine is a configured syntactic similarity detector. It holds no
// mutable state between calls; every Detect/DetectBatch is independent.
type Engine struct {
	cfg Config
}

// New validates cfg and returns a ready Engine. InvalidParameterError is
// fatal: the caller must not proceed with an invalid configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.SyntacticWeight == 0 {
		cfg.SyntacticWeight = 1.0
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Result is the full report for one file pair, matching the external
// result schema.
type Result struct {
	SyntacticSimilarity float64 `json:"syntacticSimilarity"`
	OverallSimilarity   float64 `json:"overallSimilarity"`

	SharedFragments int `json:"sharedFragments"`
	LongestFragment int `json:"longestFragment"`
	Coverage1       float64 `json:"coverage1"`
	Coverage2       float64 `json:"coverage2"`

	MappedFragments            []scoring.MappedFragment `json:"mappedFragments"`
	TotalMappedFragments       int                      `json:"totalMappedFragments"`
	SignificantMappedFragments int                      `json:"significantMappedFragments"`

	TotalSharedLines  int `json:"totalSharedLines"`
	TotalSharedTokens int `json:"totalSharedTokens"`

	IsPlagiarism bool                    `json:"isPlagiarism"`
	Confidence   scoring.ConfidenceLabel `json:"confidence"`

	File1 string `json:"file1"`
	File2 string `json:"file2"`

	ProcessingTime int64 `json:"processingTime"`
}

// Detect tokenizes both files and reports their syntactic similarity.
// LexError and EmptyFile from either side are not fatal: Detect returns a
// degraded zero-similarity Result alongside the wrapped error so the
// caller can log it without losing the pair.
func (e *Engine) Detect(file1Name, file1Text, file2Name, file2Text string, opts DetectOptions) (*Result, error) {
	start := time.Now()

	tf1, err := tokenizer.Tokenize(file1Name, file1Text)
	if err != nil {
		return emptyResult(file1Name, file2Name, start), fmt.Errorf("tokenize %s: %w", file1Name, err)
	}
	tf2, err := tokenizer.Tokenize(file2Name, file2Text)
	if err != nil {
		return emptyResult(file1Name, file2Name, start), fmt.Errorf("tokenize %s: %w", file2Name, err)
	}

	if tf1.TokenCount() == 0 {
		return emptyResult(file1Name, file2Name, start), &tokenizer.EmptyFileError{File: file1Name}
	}
	if tf2.TokenCount() == 0 {
		return emptyResult(file1Name, file2Name, start), &tokenizer.EmptyFileError{File: file2Name}
	}

	result := e.detectPair(tf1, tf2, opts)
	result.ProcessingTime = time.Since(start).Milliseconds()
	return result, nil
}

// detectPair runs the fingerprinting-through-scoring pipeline over two
// already-tokenized, non-empty files. It never fails: an empty shared set
// simply yields a zero-similarity Result.
func (e *Engine) detectPair(tf1, tf2 *tokenizer.TokenizedFile, opts DetectOptions) *Result {
	k := e.cfg.KGramSize
	w := e.cfg.WindowSize

	fps1 := winnow.Select(kgram.Hashes(tf1.Tokens, k), w)
	fps2 := winnow.Select(kgram.Hashes(tf2.Tokens, k), w)

	idx := fingerprint.New()
	idx.AddFile(tf1.Name, fps1)
	idx.AddFile(tf2.Name, fps2)

	pair := pairwise.Analyze(idx, tf1.Name, tf2.Name, k)

	minOccurrences := 1
	if opts.MinOccurrences != nil {
		minOccurrences = *opts.MinOccurrences
	}
	frags := fragment.Build(pair.Shared, fragment.Options{MinOccurrences: minOccurrences})

	mapped := make([]scoring.MappedFragment, 0, len(frags))
	totalSharedLines := 0
	totalSharedTokens := 0
	significant := 0

	for i, f := range frags {
		lifted := fragment.Lift(tf1, tf2, k, f)
		mf := scoring.Score(fmt.Sprintf("frag-%d", i), k, lifted, tf1, tf2)
		mapped = append(mapped, mf)

		totalSharedTokens += len(mf.SharedTokens)
		if scoring.Significant(mf, k) {
			significant++
			totalSharedLines += mf.File1Lines.Count
		}
	}

	coverage1 := ratio(pair.LeftCovered, pair.LeftTotal)
	coverage2 := ratio(pair.RightCovered, pair.RightTotal)

	overall := e.cfg.SyntacticWeight * pair.Similarity

	threshold := scoring.AdaptiveThreshold(overall, significant)
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}

	label := scoring.Label(overall, pair.Similarity, pair.Longest, coverage1, coverage2, significant, totalSharedLines)

	return &Result{
		SyntacticSimilarity:         pair.Similarity,
		OverallSimilarity:           overall,
		SharedFragments:             len(frags),
		LongestFragment:             pair.Longest,
		Coverage1:                   coverage1,
		Coverage2:                   coverage2,
		MappedFragments:            mapped,
		TotalMappedFragments:       len(mapped),
		SignificantMappedFragments: significant,
		TotalSharedLines:           totalSharedLines,
		TotalSharedTokens:          totalSharedTokens,
		IsPlagiarism:               overall >= threshold,
		Confidence:                 label,
		File1:                      tf1.Name,
		File2:                      tf2.Name,
	}
}

func emptyResult(file1, file2 string, start time.Time) *Result {
	return &Result{
		MappedFragments: []scoring.MappedFragment{},
		File1:           file1,
		File2:           file2,
		Confidence:      scoring.LabelLow,
		ProcessingTime:  time.Since(start).Milliseconds(),
	}
}

func ratio(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total)
}
