package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/layoutforge/backend/internal/domain"
)

var headerWhitespaceRegex = regexp.MustCompile(`\s+`)

// fieldAlias maps one canonical product field to the real-world header
// spellings that should resolve to it, in priority order.
type fieldAlias struct {
	canonical string
	aliases   []string
}

// columnAliases is the resolution table for product table headers.
// Declaration order is the resolution order: for each row, the first
// alias with a non-empty value wins. Kept as data so it is trivially
// testable and extensible.
var columnAliases = []fieldAlias{
	{domain.FieldSKU, []string{"sku", "product_sku", "item_sku", "code", "product_code", "item_code", "article"}},
	{domain.FieldBrand, []string{"brand", "brand_name", "manufacturer", "vendor"}},
	{domain.FieldProductName, []string{"product_name", "name", "title", "product", "item_name"}},
	{domain.FieldFullPrice, []string{"full_price", "price", "original_price", "regular_price", "list_price"}},
	{domain.FieldDiscountedPrice, []string{"discounted_price", "sale_price", "discount_price", "special_price", "promo_price"}},
	{domain.FieldDiscountPercent, []string{"discount_percent", "discount", "discount_pct", "sale_percent", "percent_off"}},
	{domain.FieldDescription, []string{"description", "desc", "details", "product_description"}},
	{domain.FieldCategory, []string{"category", "product_category", "department", "group"}},
	{domain.FieldImageURL, []string{"image_url", "image", "img", "photo", "picture", "image_link"}},
}

// ProductTableNormalizer parses CSV product tables into typed records
// with column-alias resolution.
type ProductTableNormalizer struct{}

// NewProductTableNormalizer creates a normalizer.
func NewProductTableNormalizer() *ProductTableNormalizer {
	return &ProductTableNormalizer{}
}

// Parse reads a CSV product table. The header row is mandatory; data
// rows are parsed best-effort, with structural issues collected as
// warnings rather than raised as errors.
func (n *ProductTableNormalizer) Parse(tableBytes []byte) (*domain.ParseResult, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(tableBytes)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, domain.ErrTableHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTableHeader, err)
	}

	columns := make([]string, len(header))
	empty := true
	for i, h := range header {
		columns[i] = canonicalizeHeader(h)
		if columns[i] != "" {
			empty = false
		}
	}
	if empty {
		return nil, domain.ErrTableHeader
	}

	result := &domain.ParseResult{Columns: columns}

	rowNum := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v (skipped)", rowNum, err))
			continue
		}
		if rowEmpty(row) {
			continue
		}

		if len(row) < len(columns) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: %d of %d columns, padded with empty values", rowNum, len(row), len(columns)))
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		} else if len(row) > len(columns) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: %d extra cells ignored", rowNum, len(row)-len(columns)))
			row = row[:len(columns)]
		}

		values := make(map[string]string, len(columns)+len(columnAliases))
		for i, col := range columns {
			if col == "" {
				continue
			}
			values[col] = strings.TrimSpace(row[i])
		}
		resolveAliases(values)

		result.Records = append(result.Records, domain.ProductRecord{
			RowIndex: len(result.Records),
			Values:   values,
		})
	}

	return result, nil
}

// resolveAliases adds canonical keys alongside the original columns.
// For each canonical field the first alias (in table order) with a
// non-empty value wins.
func resolveAliases(values map[string]string) {
	for _, fa := range columnAliases {
		for _, alias := range fa.aliases {
			if v := values[alias]; v != "" {
				values[fa.canonical] = v
				break
			}
		}
	}
}

// canonicalizeHeader lowercases, trims, and collapses inner whitespace
// to underscores so "Product Name " resolves the same as "product_name".
func canonicalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return headerWhitespaceRegex.ReplaceAllString(h, "_")
}

// sanitizeUTF8 strips a UTF-8 BOM and drops invalid byte sequences so
// the CSV reader never chokes on encoding junk.
func sanitizeUTF8(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, nil)
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
