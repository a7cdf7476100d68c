package domain

import (
	"context"
	"time"
)

// AnalysisCache stores computed image analyses keyed by content hash.
// Analyses are deterministic per image bytes, so re-uploads of the
// same file skip the pixel work. Layouts are never cached.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*ImageAnalysis, error)
	Set(ctx context.Context, key string, analysis *ImageAnalysis, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
