package usecase

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/layoutforge/backend/internal/domain"
)

// skuEntry is one row of the ordered SKU lookup. A slice, not a map:
// resolution order between overlapping SKU substrings is the table's
// declaration order, a documented contract rather than incidental
// iteration order.
type skuEntry struct {
	sku    string // lowercased
	record *domain.ProductRecord
}

// SkuMatcher matches images to product records using ordered
// filename-vs-SKU heuristics.
type SkuMatcher struct{}

// NewSkuMatcher creates a matcher.
func NewSkuMatcher() *SkuMatcher {
	return &SkuMatcher{}
}

// Match associates each image with a product record by SKU. Per image
// the strategies run in strict order, stopping at the first hit:
//
//  1. the file's base name equals a known SKU
//  2. a known SKU is a substring of the base name
//  3. the base name is a substring of a known SKU
//
// SKUs compare case-insensitively. Duplicate SKUs in the table:
// first occurrence wins, later rows are shadowed. Deterministic for
// identical inputs.
func (m *SkuMatcher) Match(images []domain.ImageRef, records []domain.ProductRecord) (*domain.MatchResult, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}

	entries := make([]skuEntry, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		sku := strings.ToLower(strings.TrimSpace(records[i].SKU()))
		if sku == "" || seen[sku] {
			continue
		}
		seen[sku] = true
		entries = append(entries, skuEntry{sku: sku, record: &records[i]})
	}

	result := &domain.MatchResult{}
	matchedSkus := make(map[string]bool)

	for _, img := range images {
		base := strings.ToLower(baseName(img.FileName))
		entry := findSkuMatch(base, entries)
		if entry == nil {
			result.UnmatchedImages = append(result.UnmatchedImages, img)
			continue
		}
		matchedSkus[entry.sku] = true
		result.Matched = append(result.Matched, domain.ImageMatch{
			Image:      img,
			Record:     *entry.record,
			MatchedSku: entry.sku,
		})
	}

	for i := range records {
		sku := strings.ToLower(strings.TrimSpace(records[i].SKU()))
		if sku == "" || !matchedSkus[sku] {
			result.UnmatchedProducts = append(result.UnmatchedProducts, records[i])
		}
	}

	if n := len(images); n > 0 {
		rate := float64(len(result.Matched)) / float64(n) * 100
		result.MatchRate = math.Round(rate*10) / 10
	}

	return result, nil
}

// findSkuMatch runs the strategy cascade over the ordered SKU table.
func findSkuMatch(base string, entries []skuEntry) *skuEntry {
	if base == "" {
		return nil
	}
	for i := range entries {
		if entries[i].sku == base {
			return &entries[i]
		}
	}
	for i := range entries {
		if strings.Contains(base, entries[i].sku) {
			return &entries[i]
		}
	}
	for i := range entries {
		if strings.Contains(entries[i].sku, base) {
			return &entries[i]
		}
	}
	return nil
}

// baseName strips any path and the extension from an image file name.
func baseName(fileName string) string {
	name := filepath.Base(fileName)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
