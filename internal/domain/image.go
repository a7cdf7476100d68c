package domain

// Recommended use classifications derived from an image's aspect ratio
const (
	UseBanner   = "banner"
	UseVertical = "vertical"
	UseSquare   = "square"
)

// ImageRef identifies one campaign image by its filename-like reference.
// The SourceRef is whatever the storage layer serves the image under
// (URL or path); matching and captioning key off FileName.
type ImageRef struct {
	FileName  string `json:"fileName"`
	SourceRef string `json:"sourceRef"`
}

// Asset references a frame or icon overlay. Only the source is exposed
// to layout composition; the bytes stay with the storage layer.
type Asset struct {
	SourceRef string `json:"sourceRef"`
}

// ImageAnalysis holds the visual metrics computed for a single image.
// Immutable once computed; created exactly once per image.
type ImageAnalysis struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Format         string   `json:"format"`
	AspectRatio    float64  `json:"aspectRatio"`
	FileName       string   `json:"fileName"`
	Brightness     float64  `json:"brightness"`     // mean luminance, 0-255
	Complexity     float64  `json:"complexity"`     // edge density, 0-1
	DominantColor  string   `json:"dominantColor"`  // "#rrggbb"
	RecommendedUse string   `json:"recommendedUse"` // banner | vertical | square
	LayoutPriority int      `json:"layoutPriority"` // 1..5, resolution buckets
	SourceRef      string   `json:"sourceRef"`
	Warnings       []string `json:"warnings,omitempty"` // non-fatal metric issues
}

// Ref returns the image reference this analysis was computed for.
func (a *ImageAnalysis) Ref() ImageRef {
	return ImageRef{FileName: a.FileName, SourceRef: a.SourceRef}
}
