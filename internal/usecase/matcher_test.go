package usecase

import (
	"errors"
	"testing"

	"github.com/layoutforge/backend/internal/domain"
)

func record(rowIndex int, values map[string]string) domain.ProductRecord {
	return domain.ProductRecord{RowIndex: rowIndex, Values: values}
}

func TestMatch(t *testing.T) {
	matcher := NewSkuMatcher()

	t.Run("fails with zero records", func(t *testing.T) {
		_, err := matcher.Match([]domain.ImageRef{{FileName: "a.jpg"}}, nil)
		if !errors.Is(err, domain.ErrNoRecords) {
			t.Errorf("error = %v, want ErrNoRecords", err)
		}
	})

	t.Run("exact base name match", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "SKU123.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU123"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Fatalf("matched = %d, want 1", len(result.Matched))
		}
		if result.Matched[0].MatchedSku != "sku123" {
			t.Errorf("matchedSku = %q, want sku123", result.Matched[0].MatchedSku)
		}
		if result.MatchRate != 100.0 {
			t.Errorf("matchRate = %v, want 100.0", result.MatchRate)
		}
	})

	t.Run("sku contained in base name", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "product-SKU123-photo.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU123"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Errorf("matched = %d, want 1", len(result.Matched))
		}
	})

	t.Run("base name contained in sku", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "123.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "PROD-123-XL"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Errorf("matched = %d, want 1", len(result.Matched))
		}
	})

	t.Run("no overlap lands on both unmatched lists", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "holiday-photo.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU999"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.UnmatchedImages) != 1 {
			t.Errorf("unmatchedImages = %d, want 1", len(result.UnmatchedImages))
		}
		if len(result.UnmatchedProducts) != 1 {
			t.Errorf("unmatchedProducts = %d, want 1", len(result.UnmatchedProducts))
		}
		if result.MatchRate != 0 {
			t.Errorf("matchRate = %v, want 0", result.MatchRate)
		}
	})

	t.Run("match rate with zero images is exactly zero", func(t *testing.T) {
		result, err := matcher.Match(nil,
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU1"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.MatchRate != 0 {
			t.Errorf("matchRate = %v, want exactly 0", result.MatchRate)
		}
	})

	t.Run("match rate rounds to one decimal", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "SKU1.jpg"}, {FileName: "nothing.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU1"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.MatchRate != 50.0 {
			t.Errorf("matchRate = %v, want 50.0", result.MatchRate)
		}

		// 1 of 3 -> 33.333... -> 33.3
		result, err = matcher.Match(
			[]domain.ImageRef{{FileName: "SKU1.jpg"}, {FileName: "x.jpg"}, {FileName: "y.jpg"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU1"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.MatchRate != 33.3 {
			t.Errorf("matchRate = %v, want 33.3", result.MatchRate)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "sku123.JPG"}},
			[]domain.ProductRecord{record(0, map[string]string{"sku": "SKU123"})},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Errorf("matched = %d, want 1", len(result.Matched))
		}
	})

	t.Run("duplicate skus: first occurrence wins", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "DUP1.jpg"}},
			[]domain.ProductRecord{
				record(0, map[string]string{"sku": "DUP1", "brand": "first"}),
				record(1, map[string]string{"sku": "dup1", "brand": "second"}),
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Fatalf("matched = %d, want 1", len(result.Matched))
		}
		if got := result.Matched[0].Record.Brand(); got != "first" {
			t.Errorf("matched record brand = %q, want first (declaration order)", got)
		}
	})

	t.Run("overlapping substrings resolve in declaration order", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "x12.jpg"}},
			[]domain.ProductRecord{
				record(0, map[string]string{"sku": "1", "brand": "short"}),
				record(1, map[string]string{"sku": "12", "brand": "long"}),
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Matched) != 1 {
			t.Fatalf("matched = %d, want 1", len(result.Matched))
		}
		if got := result.Matched[0].Record.Brand(); got != "short" {
			t.Errorf("matched record brand = %q, want short (first declared)", got)
		}
	})

	t.Run("records without a sku are unmatched products", func(t *testing.T) {
		result, err := matcher.Match(
			[]domain.ImageRef{{FileName: "SKU1.jpg"}},
			[]domain.ProductRecord{
				record(0, map[string]string{"sku": "SKU1"}),
				record(1, map[string]string{"brand": "Acme"}),
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.UnmatchedProducts) != 1 {
			t.Errorf("unmatchedProducts = %d, want 1", len(result.UnmatchedProducts))
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		images := []domain.ImageRef{{FileName: "alpha-77.jpg"}, {FileName: "beta-88.png"}}
		records := []domain.ProductRecord{
			record(0, map[string]string{"sku": "77"}),
			record(1, map[string]string{"sku": "88"}),
			record(2, map[string]string{"sku": "7"}),
		}

		first, err := matcher.Match(images, records)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 10; i++ {
			again, err := matcher.Match(images, records)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(again.Matched) != len(first.Matched) {
				t.Fatalf("run %d: matched count changed", i)
			}
			for j := range again.Matched {
				if again.Matched[j].MatchedSku != first.Matched[j].MatchedSku {
					t.Errorf("run %d: match %d resolved to %q, first run %q",
						i, j, again.Matched[j].MatchedSku, first.Matched[j].MatchedSku)
				}
			}
		}
	})
}
