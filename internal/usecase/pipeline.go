package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/layoutforge/backend/internal/domain"
)

// PipelineConfig holds configuration for the generation pipeline.
type PipelineConfig struct {
	Analyzer AnalyzerConfig
	Workers  int           // analysis workers; 0 means one per CPU
	CacheTTL time.Duration // how long analyses stay cached
}

// GenerateRequest carries one pipeline run's inputs. Table, Frame,
// and Icons are optional.
type GenerateRequest struct {
	Images []ImageInput
	Table  []byte
	Frame  *domain.Asset
	Icons  []domain.Asset
}

// ImageFailure reports one image that could not be analyzed.
type ImageFailure struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

// GenerateResponse is everything one pipeline run produced. Failures
// sit alongside successful results; a bad image never fails the batch.
type GenerateResponse struct {
	RunID    string                 `json:"runId"`
	Analyses []domain.ImageAnalysis `json:"analyses"`
	Failures []ImageFailure         `json:"failures,omitempty"`
	Table    *domain.ParseResult    `json:"table,omitempty"`
	Match    *domain.MatchResult    `json:"match,omitempty"`
	Layouts  []domain.Layout        `json:"layouts"`
}

// Pipeline orchestrates analyze -> parse -> match -> compose. The
// core components are pure; the pipeline adds the analysis cache and
// batch concurrency around them.
type Pipeline struct {
	analyzer   *ImageAnalyzer
	normalizer *ProductTableNormalizer
	matcher    *SkuMatcher
	composer   *LayoutComposer
	cache      domain.AnalysisCache
	workers    int
	cacheTTL   time.Duration
}

// NewPipeline creates a pipeline with its dependencies. The cache may
// be nil, in which case every image is analyzed from scratch.
func NewPipeline(cache domain.AnalysisCache, config PipelineConfig) *Pipeline {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &Pipeline{
		analyzer:   NewImageAnalyzer(config.Analyzer),
		normalizer: NewProductTableNormalizer(),
		matcher:    NewSkuMatcher(),
		composer:   NewLayoutComposer(),
		cache:      cache,
		workers:    config.Workers,
		cacheTTL:   cacheTTL,
	}
}

// AnalyzeImages runs cached batch analysis over the inputs. Analyses
// come back in submission order; failures are reported alongside.
func (p *Pipeline) AnalyzeImages(ctx context.Context, inputs []ImageInput) ([]domain.ImageAnalysis, []ImageFailure, error) {
	if len(inputs) == 0 {
		return nil, nil, domain.ErrNoImages
	}

	keys := make([]string, len(inputs))
	analyses := make([]*domain.ImageAnalysis, len(inputs))
	var pending []int

	for i, in := range inputs {
		keys[i] = analysisCacheKey(in.Data)
		if p.cache == nil {
			pending = append(pending, i)
			continue
		}
		cached, err := p.cache.Get(ctx, keys[i])
		if err != nil || cached == nil {
			pending = append(pending, i)
			continue
		}
		// Same bytes may arrive under a different name.
		hit := *cached
		hit.FileName = in.FileName
		hit.SourceRef = in.FileName
		if in.SourceRef != "" {
			hit.SourceRef = in.SourceRef
		}
		analyses[i] = &hit
	}

	var failures []ImageFailure
	if len(pending) > 0 {
		batch := make([]ImageInput, len(pending))
		for j, i := range pending {
			batch[j] = inputs[i]
		}

		outcomes := p.analyzer.AnalyzeBatch(ctx, batch, p.workers)
		for j, out := range outcomes {
			i := pending[j]
			if out.Err != nil {
				failures = append(failures, ImageFailure{
					FileName: out.Input.FileName,
					Error:    out.Err.Error(),
				})
				continue
			}
			analyses[i] = out.Analysis
			if p.cache != nil {
				// Cache write failures are non-fatal.
				_ = p.cache.Set(ctx, keys[i], out.Analysis, p.cacheTTL)
			}
		}
	}

	ordered := make([]domain.ImageAnalysis, 0, len(inputs))
	for _, a := range analyses {
		if a != nil {
			ordered = append(ordered, *a)
		}
	}
	return ordered, failures, nil
}

// ParseTable normalizes a CSV product table.
func (p *Pipeline) ParseTable(tableBytes []byte) (*domain.ParseResult, error) {
	return p.normalizer.Parse(tableBytes)
}

// GenerateLayouts runs the full pipeline for one request. Matching
// runs only when the table yields records; composition always runs
// over whichever images decoded successfully.
func (p *Pipeline) GenerateLayouts(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil || len(req.Images) == 0 {
		return nil, domain.ErrNoImages
	}

	resp := &GenerateResponse{RunID: uuid.NewString()}

	analyses, failures, err := p.AnalyzeImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}
	resp.Analyses = analyses
	resp.Failures = failures
	if len(analyses) == 0 {
		return nil, fmt.Errorf("%w: no image could be decoded", domain.ErrNoImages)
	}

	if len(req.Table) > 0 {
		parsed, err := p.normalizer.Parse(req.Table)
		if err != nil {
			return nil, err
		}
		resp.Table = parsed

		if len(parsed.Records) > 0 {
			refs := make([]domain.ImageRef, len(analyses))
			for i := range analyses {
				refs[i] = analyses[i].Ref()
			}
			match, err := p.matcher.Match(refs, parsed.Records)
			if err != nil {
				return nil, err
			}
			resp.Match = match
		}
	}

	layouts, err := p.composer.Compose(ComposeInput{
		Images:  analyses,
		Frame:   req.Frame,
		Icons:   req.Icons,
		Matches: resp.Match,
	})
	if err != nil {
		return nil, err
	}
	resp.Layouts = layouts

	return resp, nil
}

// analysisCacheKey is the content hash of the image bytes.
func analysisCacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "analysis:" + hex.EncodeToString(sum[:])
}
