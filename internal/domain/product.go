package domain

// Canonical field keys produced by product table normalization.
// Alias resolution adds these alongside the original column values.
const (
	FieldSKU             = "sku"
	FieldBrand           = "brand"
	FieldProductName     = "product_name"
	FieldFullPrice       = "full_price"
	FieldDiscountedPrice = "discounted_price"
	FieldDiscountPercent = "discount_percent"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldImageURL        = "image_url"
)

// ProductRecord is one normalized row of the product table. Values
// retains every original column verbatim plus the canonical keys, so
// no information is lost during normalization. RowIndex is the
// 0-based position among data rows and stays stable across a run.
type ProductRecord struct {
	RowIndex int               `json:"rowIndex"`
	Values   map[string]string `json:"values"`
}

// Get returns the value for a column or canonical key, or "".
func (r *ProductRecord) Get(key string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[key]
}

func (r *ProductRecord) SKU() string             { return r.Get(FieldSKU) }
func (r *ProductRecord) Brand() string           { return r.Get(FieldBrand) }
func (r *ProductRecord) ProductName() string     { return r.Get(FieldProductName) }
func (r *ProductRecord) FullPrice() string       { return r.Get(FieldFullPrice) }
func (r *ProductRecord) DiscountedPrice() string { return r.Get(FieldDiscountedPrice) }
func (r *ProductRecord) DiscountPercent() string { return r.Get(FieldDiscountPercent) }
func (r *ProductRecord) Description() string     { return r.Get(FieldDescription) }
func (r *ProductRecord) Category() string        { return r.Get(FieldCategory) }
func (r *ProductRecord) ImageURL() string        { return r.Get(FieldImageURL) }

// ParseResult is the outcome of normalizing a product table.
// Warnings carry non-fatal structural issues (ragged rows, stray
// quoting); parsing is best-effort and only a missing header fails.
type ParseResult struct {
	Records  []ProductRecord `json:"records"`
	Columns  []string        `json:"columns"`
	Warnings []string        `json:"warnings"`
}
