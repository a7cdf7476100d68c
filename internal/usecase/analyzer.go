package usecase

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/layoutforge/backend/internal/domain"
)

// Defaults substituted when a sub-metric cannot produce a value.
// The analysis itself only fails when the base metadata is unreadable.
const (
	defaultBrightness    = 128.0
	defaultComplexity    = 0.1
	defaultDominantColor = "#808080"
)

// Aspect ratio thresholds for the three-way use classification.
const (
	bannerAspectRatio   = 1.5
	verticalAspectRatio = 0.8
)

// AnalyzerConfig holds tuning knobs for the image analyzer.
type AnalyzerConfig struct {
	EdgeThreshold     int // luminance delta that counts as an edge, 8-bit scale
	ComplexityMaxSide int // longest side of the complexity downscale
	SwatchSize        int // dominant color sample grid side
}

// ImageAnalyzer computes per-image visual metrics from raw pixel data.
// It is stateless and safe for concurrent use.
type ImageAnalyzer struct {
	edgeThreshold     int
	complexityMaxSide int
	swatchSize        int
}

// NewImageAnalyzer creates an analyzer with the given configuration,
// falling back to defaults for zero values.
func NewImageAnalyzer(config AnalyzerConfig) *ImageAnalyzer {
	threshold := config.EdgeThreshold
	if threshold <= 0 {
		threshold = 30
	}

	maxSide := config.ComplexityMaxSide
	if maxSide <= 0 {
		maxSide = 100
	}

	swatch := config.SwatchSize
	if swatch <= 0 {
		swatch = 10
	}

	return &ImageAnalyzer{
		edgeThreshold:     threshold,
		complexityMaxSide: maxSide,
		swatchSize:        swatch,
	}
}

// Analyze decodes one image and computes its visual metrics.
// Sub-metric failures degrade to documented defaults and are recorded
// as warnings on the analysis; only an undecodable image returns an error.
func (a *ImageAnalyzer) Analyze(data []byte, fileName string) (*domain.ImageAnalysis, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageDecode, fileName, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %s: empty bounds", domain.ErrImageDecode, fileName)
	}

	analysis := &domain.ImageAnalysis{
		Width:       w,
		Height:      h,
		Format:      format,
		AspectRatio: float64(w) / float64(h),
		FileName:    fileName,
		SourceRef:   fileName,
	}
	analysis.RecommendedUse = classifyUse(analysis.AspectRatio)
	analysis.LayoutPriority = layoutPriority(w * h)

	if v, err := meanBrightness(img); err != nil {
		analysis.Brightness = defaultBrightness
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("brightness: %v", err))
	} else {
		analysis.Brightness = v
	}

	if v, err := a.edgeComplexity(img); err != nil {
		analysis.Complexity = defaultComplexity
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("complexity: %v", err))
	} else {
		analysis.Complexity = v
	}

	if v, err := a.dominantColor(img); err != nil {
		analysis.DominantColor = defaultDominantColor
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("dominant color: %v", err))
	} else {
		analysis.DominantColor = v
	}

	return analysis, nil
}

// classifyUse maps an aspect ratio to a recommended template slot.
// Boundary values (exactly 1.5, exactly 0.8) classify as square.
func classifyUse(aspectRatio float64) string {
	switch {
	case aspectRatio > bannerAspectRatio:
		return domain.UseBanner
	case aspectRatio < verticalAspectRatio:
		return domain.UseVertical
	default:
		return domain.UseSquare
	}
}

// layoutPriority buckets total resolution into 1..5. Strict > on each
// boundary, so the boundary pixel count belongs to the lower bucket.
func layoutPriority(pixels int) int {
	switch {
	case pixels > 2_000_000:
		return 5
	case pixels > 1_000_000:
		return 4
	case pixels > 500_000:
		return 3
	case pixels > 200_000:
		return 2
	default:
		return 1
	}
}

// luminance is the Rec. 601 luma of an 8-bit RGB triple.
func luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// meanBrightness averages luminance over every pixel of the full image.
func meanBrightness(img image.Image) (float64, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var sum float64
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			sum += luminance(row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	// Guard against float drift past the 8-bit ceiling.
	return math.Min(sum/float64(w*h), 255), nil
}

// edgeComplexity is a cheap edge-density proxy, not true edge
// detection. The image is downscaled to bound cost, then every
// interior pixel is compared against its right and bottom neighbors;
// a luminance delta above the threshold on either axis counts as an
// edge. Normalized by the downscaled pixel count.
func (a *ImageAnalyzer) edgeComplexity(img image.Image) (float64, error) {
	small := imaging.Fit(img, a.complexityMaxSide, a.complexityMaxSide, imaging.Box)
	gray := imaging.Grayscale(small)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 2 || h < 2 {
		return 0, fmt.Errorf("downscaled image too small (%dx%d)", w, h)
	}

	threshold := float64(a.edgeThreshold)
	lum := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x*4])
	}

	edges := 0
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			v := lum(x, y)
			if math.Abs(v-lum(x+1, y)) > threshold || math.Abs(v-lum(x, y+1)) > threshold {
				edges++
			}
		}
	}
	return float64(edges) / float64(w*h), nil
}

// dominantColor downsamples to a small swatch grid and averages each
// channel independently. Coarse by design; a representative swatch,
// not a palette extraction.
func (a *ImageAnalyzer) dominantColor(img image.Image) (string, error) {
	small := imaging.Resize(img, a.swatchSize, a.swatchSize, imaging.Box)
	w, h := small.Rect.Dx(), small.Rect.Dy()
	if w == 0 || h == 0 {
		return "", fmt.Errorf("downscaled image is empty")
	}

	var rSum, gSum, bSum float64
	for y := 0; y < h; y++ {
		row := small.Pix[y*small.Stride : y*small.Stride+w*4]
		for x := 0; x < w; x++ {
			rSum += float64(row[x*4])
			gSum += float64(row[x*4+1])
			bSum += float64(row[x*4+2])
		}
	}

	n := float64(w * h)
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(rSum/n)),
		uint8(math.Round(gSum/n)),
		uint8(math.Round(bSum/n)),
	), nil
}
