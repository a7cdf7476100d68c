package domain

// ImageMatch pairs an image with the product record it resolved to.
type ImageMatch struct {
	Image      ImageRef      `json:"image"`
	Record     ProductRecord `json:"record"`
	MatchedSku string        `json:"matchedSku"` // lowercased SKU that hit
}

// MatchResult reports one matching run over a batch of images and a
// product table. MatchRate is matched/totalImages*100 rounded to one
// decimal, and exactly 0 when there are no images.
type MatchResult struct {
	Matched           []ImageMatch    `json:"matched"`
	UnmatchedProducts []ProductRecord `json:"unmatchedProducts"`
	UnmatchedImages   []ImageRef      `json:"unmatchedImages"`
	MatchRate         float64         `json:"matchRate"`
}

// RecordFor returns the matched record for an image file name, if any.
func (m *MatchResult) RecordFor(fileName string) (*ProductRecord, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Matched {
		if m.Matched[i].Image.FileName == fileName {
			return &m.Matched[i].Record, true
		}
	}
	return nil, false
}
