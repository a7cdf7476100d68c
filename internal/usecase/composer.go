package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/layoutforge/backend/internal/domain"
)

// Template priorities. Grid's is derived from the product count; the
// other three are a static ranking policy, not re-derived per request.
const (
	bannerPriority   = 4
	storyPriority    = 3
	carouselPriority = 5
)

// Paint order bands. Frames always paint first, photographic content
// above them, icons above photos, and text/badges above everything.
const (
	zFrame = 0
	zPhoto = 1
	zIcon  = 2
	zText  = 10
)

// Base text sizes per template, in px at the recommended canvas size.
const (
	gridFontSize     = 16
	bannerFontSize   = 20
	storyFontSize    = 24
	carouselFontSize = 18
)

// Palette for CSV-driven text composition.
const (
	headlineColor   = "#212121"
	mutedColor      = "#757575"
	accentColor     = "#e53935"
	badgeTextColor  = "#ffffff"
	badgeBackground = "#e53935"
)

// ComposeInput bundles everything one composition run consumes.
// Matches may be nil when no product table was supplied; Frame and
// Icons are optional overlays.
type ComposeInput struct {
	Images  []domain.ImageAnalysis
	Frame   *domain.Asset
	Icons   []domain.Asset
	Matches *domain.MatchResult
}

// LayoutComposer builds layout element trees for the four canvas
// templates. Pure and idempotent: identical inputs produce
// structurally identical output.
type LayoutComposer struct{}

// NewLayoutComposer creates a composer.
func NewLayoutComposer() *LayoutComposer {
	return &LayoutComposer{}
}

// Compose generates all four layouts, sorted descending by priority.
func (c *LayoutComposer) Compose(input ComposeInput) ([]domain.Layout, error) {
	if len(input.Images) == 0 {
		return nil, domain.ErrNoImages
	}

	layouts := []domain.Layout{
		c.composeGrid(input),
		c.composeBanner(input),
		c.composeStory(input),
		c.composeCarousel(input),
	}

	sort.SliceStable(layouts, func(i, j int) bool {
		return layouts[i].Priority > layouts[j].Priority
	})
	return layouts, nil
}

// gridPriority scales with how many products the grid shows.
func gridPriority(productCount int) int {
	switch {
	case productCount >= 9:
		return 5
	case productCount >= 6:
		return 4
	case productCount >= 4:
		return 3
	case productCount >= 2:
		return 2
	default:
		return 1
	}
}

// composeGrid lays images out on a ceil(sqrt(n)) square grid. Each
// cell keeps a 2% margin; the image takes 90% of the cell width and
// 60% of its height, leaving the lower band for text.
func (c *LayoutComposer) composeGrid(input ComposeInput) domain.Layout {
	n := len(input.Images)
	gridSize := int(math.Ceil(math.Sqrt(float64(n))))
	cell := 100.0 / float64(gridSize)

	var elements []domain.Element
	if input.Frame != nil {
		elements = append(elements, fullBleedFrame(input.Frame))
	}

	for i := range input.Images {
		img := &input.Images[i]
		row := i / gridSize
		col := i % gridSize

		cellX := float64(col)*cell + 2
		cellY := float64(row)*cell + 2
		inner := cell - 4

		imagePos := domain.Position{
			X:      cellX,
			Y:      cellY,
			Width:  inner * 0.9,
			Height: inner * 0.6,
		}
		elements = append(elements, domain.ImageElement{
			Position: imagePos,
			ZIndex:   zPhoto,
			Source:   img.SourceRef,
		})

		if rec, ok := input.Matches.RecordFor(img.FileName); ok {
			textRegion := domain.Position{
				X:      cellX,
				Y:      cellY + inner*0.62,
				Width:  inner * 0.9,
				Height: inner * 0.34,
			}
			elements = append(elements, productText(rec, textRegion, imagePos, gridFontSize)...)
		}
	}

	return domain.Layout{
		Type:                  domain.LayoutGrid,
		Name:                  "Product Grid",
		Description:           fmt.Sprintf("%d products on a %dx%d grid", n, gridSize, gridSize),
		RecommendedCanvasSize: domain.CanvasSize{Width: 1080, Height: 1080},
		Priority:              gridPriority(n),
		Elements:              elements,
	}
}

// composeBanner puts the hero product in the top-right quadrant with
// up to three secondary products and three icons stacked on the left.
func (c *LayoutComposer) composeBanner(input ComposeInput) domain.Layout {
	var elements []domain.Element
	if input.Frame != nil {
		elements = append(elements, fullBleedFrame(input.Frame))
	}

	hero := &input.Images[0]
	heroPos := domain.Position{X: 60, Y: 10, Width: 35, Height: 60}
	elements = append(elements, domain.ImageElement{
		Position: heroPos,
		ZIndex:   zPhoto,
		Source:   hero.SourceRef,
	})
	if rec, ok := input.Matches.RecordFor(hero.FileName); ok {
		textRegion := domain.Position{X: 60, Y: 72, Width: 35, Height: 24}
		elements = append(elements, productText(rec, textRegion, heroPos, bannerFontSize)...)
	}

	extras := input.Images[1:]
	if len(extras) > 3 {
		extras = extras[:3]
	}
	for i := range extras {
		elements = append(elements, domain.ImageElement{
			Position: domain.Position{X: 5, Y: 10 + float64(i)*18, Width: 15, Height: 15},
			ZIndex:   zPhoto,
			Source:   extras[i].SourceRef,
		})
	}

	icons := input.Icons
	if len(icons) > 3 {
		icons = icons[:3]
	}
	for i := range icons {
		elements = append(elements, domain.IconElement{
			Position: domain.Position{X: 25, Y: 10 + float64(i)*18, Width: 10, Height: 15},
			ZIndex:   zIcon,
			Source:   icons[i].SourceRef,
		})
	}

	return domain.Layout{
		Type:                  domain.LayoutBanner,
		Name:                  "Campaign Banner",
		Description:           "Hero product banner with supporting products and icons",
		RecommendedCanvasSize: domain.CanvasSize{Width: 1200, Height: 630},
		Priority:              bannerPriority,
		Elements:              elements,
	}
}

// composeStory builds a vertical single-hero layout with a text block
// beneath; placeholder copy when no record matched the hero.
func (c *LayoutComposer) composeStory(input ComposeInput) domain.Layout {
	var elements []domain.Element
	if input.Frame != nil {
		elements = append(elements, fullBleedFrame(input.Frame))
	}

	hero := &input.Images[0]
	heroPos := domain.Position{X: 10, Y: 15, Width: 80, Height: 50}
	elements = append(elements, domain.ImageElement{
		Position: heroPos,
		ZIndex:   zPhoto,
		Source:   hero.SourceRef,
	})

	textRegion := domain.Position{X: 10, Y: 68, Width: 80, Height: 20}
	if rec, ok := input.Matches.RecordFor(hero.FileName); ok {
		elements = append(elements, productText(rec, textRegion, heroPos, storyFontSize)...)
	} else {
		elements = append(elements, domain.TextElement{
			Position: textRegion,
			ZIndex:   zText,
			Content:  "Discover our latest collection",
			Style: domain.TextStyle{
				FontSize:   storyFontSize,
				Color:      headlineColor,
				FontWeight: "bold",
				TextAlign:  "center",
			},
		})
	}

	return domain.Layout{
		Type:                  domain.LayoutStory,
		Name:                  "Story",
		Description:           "Vertical story with a single hero product",
		RecommendedCanvasSize: domain.CanvasSize{Width: 1080, Height: 1920},
		Priority:              storyPriority,
		Elements:              elements,
	}
}

// composeCarousel emits a title slide followed by one slide per
// product image. Each slide is its own canvas, so the frame repeats
// per slide.
func (c *LayoutComposer) composeCarousel(input ComposeInput) domain.Layout {
	slides := make([]domain.Slide, 0, len(input.Images)+1)

	titleElements := []domain.Element{}
	if input.Frame != nil {
		titleElements = append(titleElements, fullBleedFrame(input.Frame))
	}
	titleElements = append(titleElements, domain.TextElement{
		Position: domain.Position{X: 10, Y: 40, Width: 80, Height: 20},
		ZIndex:   zText,
		Content:  "Featured Products",
		Style: domain.TextStyle{
			FontSize:   32,
			Color:      headlineColor,
			FontWeight: "bold",
			TextAlign:  "center",
		},
	})
	slides = append(slides, domain.Slide{Type: "title", Elements: titleElements})

	for i := range input.Images {
		img := &input.Images[i]

		var elements []domain.Element
		if input.Frame != nil {
			elements = append(elements, fullBleedFrame(input.Frame))
		}

		imagePos := domain.Position{X: 10, Y: 15, Width: 80, Height: 55}
		elements = append(elements, domain.ImageElement{
			Position: imagePos,
			ZIndex:   zPhoto,
			Source:   img.SourceRef,
		})

		captionRegion := domain.Position{X: 10, Y: 72, Width: 80, Height: 20}
		if rec, ok := input.Matches.RecordFor(img.FileName); ok {
			elements = append(elements, productText(rec, captionRegion, imagePos, carouselFontSize)...)
		} else {
			elements = append(elements, domain.TextElement{
				Position: captionRegion,
				ZIndex:   zText,
				Content:  fmt.Sprintf("Product %d", i+1),
				Style: domain.TextStyle{
					FontSize:  carouselFontSize,
					Color:     headlineColor,
					TextAlign: "center",
				},
			})
		}

		slides = append(slides, domain.Slide{Type: "product", Elements: elements})
	}

	return domain.Layout{
		Type:                  domain.LayoutCarousel,
		Name:                  "Product Carousel",
		Description:           fmt.Sprintf("Title slide plus %d product slides", len(input.Images)),
		RecommendedCanvasSize: domain.CanvasSize{Width: 1080, Height: 1080},
		Priority:              carouselPriority,
		Slides:                slides,
	}
}

// fullBleedFrame covers the whole canvas beneath everything else.
func fullBleedFrame(frame *domain.Asset) domain.FrameElement {
	return domain.FrameElement{
		Position: domain.Position{X: 0, Y: 0, Width: 100, Height: 100},
		ZIndex:   zFrame,
		Source:   frame.SourceRef,
	}
}

// productText stacks name, brand, and the price block vertically
// within region, plus a discount badge pinned to the image's
// top-right corner when a discount percentage is present.
func productText(rec *domain.ProductRecord, region, imagePos domain.Position, baseFont int) []domain.Element {
	var out []domain.Element
	lineH := region.Height / 3
	y := region.Y

	if name := rec.ProductName(); name != "" {
		out = append(out, domain.TextElement{
			Position: domain.Position{X: region.X, Y: y, Width: region.Width, Height: lineH},
			ZIndex:   zText,
			Content:  name,
			Style: domain.TextStyle{
				FontSize:   baseFont,
				Color:      headlineColor,
				FontWeight: "bold",
				TextAlign:  "center",
			},
		})
		y += lineH
	}

	if brand := rec.Brand(); brand != "" {
		out = append(out, domain.TextElement{
			Position: domain.Position{X: region.X, Y: y, Width: region.Width, Height: lineH},
			ZIndex:   zText,
			Content:  brand,
			Style: domain.TextStyle{
				FontSize:  baseFont - 4,
				Color:     mutedColor,
				TextAlign: "center",
			},
		})
		y += lineH
	}

	full, discounted := rec.FullPrice(), rec.DiscountedPrice()
	switch {
	case full != "" && discounted != "":
		// Struck-through full price left, emphasized discounted right.
		half := region.Width / 2
		out = append(out, domain.TextElement{
			Position: domain.Position{X: region.X, Y: y, Width: half, Height: lineH},
			ZIndex:   zText,
			Content:  full,
			Style: domain.TextStyle{
				FontSize:       baseFont - 2,
				Color:          mutedColor,
				TextAlign:      "center",
				TextDecoration: "line-through",
			},
		})
		out = append(out, domain.TextElement{
			Position: domain.Position{X: region.X + half, Y: y, Width: half, Height: lineH},
			ZIndex:   zText,
			Content:  discounted,
			Style: domain.TextStyle{
				FontSize:   baseFont,
				Color:      accentColor,
				FontWeight: "bold",
				TextAlign:  "center",
			},
		})
	case full != "" || discounted != "":
		price := full
		if price == "" {
			price = discounted
		}
		out = append(out, domain.TextElement{
			Position: domain.Position{X: region.X, Y: y, Width: region.Width, Height: lineH},
			ZIndex:   zText,
			Content:  price,
			Style: domain.TextStyle{
				FontSize:   baseFont,
				Color:      headlineColor,
				FontWeight: "bold",
				TextAlign:  "center",
			},
		})
	}

	if pct := rec.DiscountPercent(); pct != "" {
		pct = strings.TrimSuffix(strings.TrimSpace(pct), "%")
		out = append(out, domain.BadgeElement{
			Position: domain.Position{
				X:      imagePos.X + imagePos.Width - 12,
				Y:      imagePos.Y,
				Width:  12,
				Height: 6,
			},
			ZIndex:  zText,
			Content: fmt.Sprintf("-%s%%", pct),
			Style: domain.TextStyle{
				FontSize:        baseFont - 4,
				Color:           badgeTextColor,
				FontWeight:      "bold",
				TextAlign:       "center",
				BackgroundColor: badgeBackground,
			},
		})
	}

	return out
}
