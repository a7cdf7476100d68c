package usecase

import (
	"context"
	"runtime"
	"sync"

	"github.com/layoutforge/backend/internal/domain"
)

// ImageInput is one raw image handed to analysis.
type ImageInput struct {
	FileName  string
	SourceRef string // optional; defaults to FileName
	Data      []byte
}

// AnalysisOutcome pairs an input with its analysis or its failure.
// A decode failure is isolated to its own outcome and never aborts
// the rest of the batch.
type AnalysisOutcome struct {
	Input    ImageInput
	Analysis *domain.ImageAnalysis
	Err      error
}

// AnalyzeBatch runs Analyze over inputs with a bounded worker pool.
// Outcomes come back indexed by submission order regardless of
// completion order, because downstream placement is order-sensitive.
// Cancelling the context stops dispatching new work; images already
// in flight finish.
func (a *ImageAnalyzer) AnalyzeBatch(ctx context.Context, inputs []ImageInput, workers int) []AnalysisOutcome {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]AnalysisOutcome, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			outcomes[i] = AnalysisOutcome{Input: in, Err: err}
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, in ImageInput) {
			defer wg.Done()
			defer func() { <-sem }()

			analysis, err := a.Analyze(in.Data, in.FileName)
			if err == nil && in.SourceRef != "" {
				analysis.SourceRef = in.SourceRef
			}
			outcomes[i] = AnalysisOutcome{Input: in, Analysis: analysis, Err: err}
		}(i, in)
	}

	wg.Wait()
	return outcomes
}
