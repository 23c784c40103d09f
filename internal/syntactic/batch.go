package syntactic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oakmoss/platon/internal/scoring"
	"github.com/oakmoss/platon/internal/tokenizer"
	"github.com/oakmoss/platon/internal/worker"
)

// SourceFile is one named input to a batch run.
type SourceFile struct {
	Name string
	Text string
}

// BatchResult is the report for every unordered pair among a batch's
// input files.
type BatchResult struct {
	Results          []*Result `json:"results"`
	Threshold        float64   `json:"threshold"`
	TotalComparisons int       `json:"totalComparisons"`
	SuspiciousPairs  int       `json:"suspiciousPairs"`
	ProcessingTime   int64     `json:"processingTime"`
}

// pairJob evaluates one file pair and writes its Result into a
// pre-allocated slot, reported via done when finished.
type pairJob struct {
	engine   *Engine
	tf1, tf2 *tokenizer.TokenizedFile
	name1, name2 string
	opts     DetectOptions
	slot     *Result
	done     chan<- struct{}
}

func (j *pairJob) Execute(ctx context.Context) error {
	defer func() { j.done <- struct{}{} }()

	if j.tf1 == nil || j.tf2 == nil || j.tf1.TokenCount() == 0 || j.tf2.TokenCount() == 0 {
		*j.slot = *emptyResult(j.name1, j.name2, time.Now())
		return nil
	}

	start := time.Now()
	result := j.engine.detectPair(j.tf1, j.tf2, j.opts)
	result.ProcessingTime = time.Since(start).Milliseconds()
	*j.slot = *result
	return nil
}

// DetectBatch tokenizes every input once, then evaluates all unordered
// pairs concurrently via a worker pool. Pairs touching a LexError or empty
// file degrade to a zero-similarity Result rather than aborting the run.
// Results are returned sorted by descending OverallSimilarity. When the
// caller supplies no Threshold, a batch-adaptive one is derived from the
// observed similarity distribution and applied uniformly to every pair's
// IsPlagiarism verdict.
func (e *Engine) DetectBatch(ctx context.Context, files []SourceFile, opts DetectOptions) (*BatchResult, error) {
	start := time.Now()

	tokenized := make([]*tokenizer.TokenizedFile, len(files))
	for i, f := range files {
		tf, err := tokenizer.Tokenize(f.Name, f.Text)
		if err != nil {
			continue // leaves tokenized[i] nil; any pair with it degrades to zero
		}
		tokenized[i] = tf
	}

	type pairIndex struct{ i, j int }
	var pairs []pairIndex
	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			pairs = append(pairs, pairIndex{i, j})
		}
	}

	results := make([]*Result, len(pairs))
	for k := range results {
		results[k] = &Result{}
	}

	if len(pairs) == 0 {
		return &BatchResult{
			Results:        []*Result{},
			Threshold:      0.25,
			ProcessingTime: time.Since(start).Milliseconds(),
		}, nil
	}

	pool := worker.New(ctx)
	done := make(chan struct{}, len(pairs))

	for k, p := range pairs {
		job := &pairJob{
			engine: e,
			tf1:    tokenized[p.i],
			tf2:    tokenized[p.j],
			name1:  files[p.i].Name,
			name2:  files[p.j].Name,
			opts:   opts,
			slot:   results[k],
			done:   done,
		}
		if err := pool.Submit(job); err != nil {
			return nil, fmt.Errorf("submit pair job: %w", err)
		}
	}

	completed := 0
	for completed < len(pairs) {
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-done:
			completed++
		}
	}
	pool.Close()

	similarities := make([]float64, len(results))
	for i, r := range results {
		similarities[i] = r.OverallSimilarity
	}

	threshold := scoring.BatchThreshold(similarities)
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}

	suspicious := 0
	for _, r := range results {
		r.IsPlagiarism = r.OverallSimilarity >= threshold
		if r.IsPlagiarism {
			suspicious++
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].OverallSimilarity > results[b].OverallSimilarity
	})

	return &BatchResult{
		Results:          results,
		Threshold:        threshold,
		TotalComparisons: len(results),
		SuspiciousPairs:  suspicious,
		ProcessingTime:   time.Since(start).Milliseconds(),
	}, nil
}
