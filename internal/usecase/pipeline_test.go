package usecase

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/layoutforge/backend/internal/domain"
	"github.com/layoutforge/backend/internal/infrastructure/cache"
)

func TestGenerateLayouts(t *testing.T) {
	ctx := context.Background()

	t.Run("fails with zero images", func(t *testing.T) {
		pipeline := NewPipeline(nil, PipelineConfig{})
		_, err := pipeline.GenerateLayouts(ctx, &GenerateRequest{})
		if !errors.Is(err, domain.ErrNoImages) {
			t.Errorf("error = %v, want ErrNoImages", err)
		}
	})

	t.Run("full run with table and frame", func(t *testing.T) {
		pipeline := NewPipeline(cache.NewMemoryCache(), PipelineConfig{CacheTTL: time.Minute})

		req := &GenerateRequest{
			Images: []ImageInput{
				{FileName: "SKU123.png", Data: encodePNG(t, 60, 40, solid(color.NRGBA{200, 10, 10, 255}))},
				{FileName: "unrelated.png", Data: encodePNG(t, 40, 60, solid(color.NRGBA{10, 200, 10, 255}))},
			},
			Table: []byte("sku,product_name,price\nSKU123,Widget,9.99\nSKU999,Gadget,5.00\n"),
			Frame: &domain.Asset{SourceRef: "/frames/gold.png"},
		}

		resp, err := pipeline.GenerateLayouts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.RunID == "" {
			t.Error("runID is empty")
		}
		if len(resp.Analyses) != 2 {
			t.Fatalf("analyses = %d, want 2", len(resp.Analyses))
		}
		if resp.Analyses[0].FileName != "SKU123.png" {
			t.Errorf("analyses[0] = %v, submission order not preserved", resp.Analyses[0].FileName)
		}
		if len(resp.Failures) != 0 {
			t.Errorf("failures = %v, want none", resp.Failures)
		}
		if resp.Table == nil || len(resp.Table.Records) != 2 {
			t.Fatalf("table = %+v, want 2 records", resp.Table)
		}
		if resp.Match == nil {
			t.Fatal("match result missing")
		}
		if resp.Match.MatchRate != 50.0 {
			t.Errorf("matchRate = %v, want 50.0", resp.Match.MatchRate)
		}
		if len(resp.Layouts) != 4 {
			t.Errorf("layouts = %d, want 4", len(resp.Layouts))
		}
	})

	t.Run("isolates a bad image", func(t *testing.T) {
		pipeline := NewPipeline(nil, PipelineConfig{})

		req := &GenerateRequest{
			Images: []ImageInput{
				{FileName: "good.png", Data: encodePNG(t, 30, 30, solid(color.NRGBA{1, 2, 3, 255}))},
				{FileName: "bad.png", Data: []byte("not an image")},
			},
		}

		resp, err := pipeline.GenerateLayouts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Analyses) != 1 {
			t.Errorf("analyses = %d, want 1", len(resp.Analyses))
		}
		if len(resp.Failures) != 1 || resp.Failures[0].FileName != "bad.png" {
			t.Errorf("failures = %v, want one for bad.png", resp.Failures)
		}
		if len(resp.Layouts) != 4 {
			t.Errorf("layouts = %d, want 4 from the surviving image", len(resp.Layouts))
		}
	})

	t.Run("fails when no image decodes", func(t *testing.T) {
		pipeline := NewPipeline(nil, PipelineConfig{})

		_, err := pipeline.GenerateLayouts(ctx, &GenerateRequest{
			Images: []ImageInput{{FileName: "bad.png", Data: []byte("junk")}},
		})
		if !errors.Is(err, domain.ErrNoImages) {
			t.Errorf("error = %v, want ErrNoImages", err)
		}
	})

	t.Run("surfaces a broken table header", func(t *testing.T) {
		pipeline := NewPipeline(nil, PipelineConfig{})

		_, err := pipeline.GenerateLayouts(ctx, &GenerateRequest{
			Images: []ImageInput{{FileName: "a.png", Data: encodePNG(t, 10, 10, solid(color.NRGBA{0, 0, 0, 255}))}},
			Table:  []byte(""),
		})
		if !errors.Is(err, domain.ErrTableHeader) {
			t.Errorf("error = %v, want ErrTableHeader", err)
		}
	})

	t.Run("skips matching when the table has no records", func(t *testing.T) {
		pipeline := NewPipeline(nil, PipelineConfig{})

		resp, err := pipeline.GenerateLayouts(ctx, &GenerateRequest{
			Images: []ImageInput{{FileName: "a.png", Data: encodePNG(t, 10, 10, solid(color.NRGBA{0, 0, 0, 255}))}},
			Table:  []byte("sku,name\n"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Match != nil {
			t.Errorf("match = %+v, want nil for an empty table", resp.Match)
		}
	})
}

func TestAnalyzeImagesCaching(t *testing.T) {
	ctx := context.Background()
	memCache := cache.NewMemoryCache()
	pipeline := NewPipeline(memCache, PipelineConfig{CacheTTL: time.Minute})

	data := encodePNG(t, 50, 50, solid(color.NRGBA{120, 130, 140, 255}))

	first, failures, err := pipeline.AnalyzeImages(ctx, []ImageInput{{FileName: "one.png", Data: data}})
	if err != nil || len(failures) != 0 {
		t.Fatalf("first run: err=%v failures=%v", err, failures)
	}
	if memCache.Size() != 1 {
		t.Fatalf("cache size = %d after first run, want 1", memCache.Size())
	}

	// Same bytes under a new name hit the cache but keep the new name.
	second, failures, err := pipeline.AnalyzeImages(ctx, []ImageInput{{FileName: "renamed.png", Data: data}})
	if err != nil || len(failures) != 0 {
		t.Fatalf("second run: err=%v failures=%v", err, failures)
	}
	if second[0].FileName != "renamed.png" {
		t.Errorf("cached hit fileName = %v, want renamed.png", second[0].FileName)
	}
	if second[0].Brightness != first[0].Brightness || second[0].DominantColor != first[0].DominantColor {
		t.Errorf("cached metrics differ: %+v vs %+v", second[0], first[0])
	}
	if memCache.Size() != 1 {
		t.Errorf("cache size = %d after cache hit, want still 1", memCache.Size())
	}
}
