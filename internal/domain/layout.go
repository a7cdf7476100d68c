package domain

import "encoding/json"

// LayoutType identifies one of the four canvas templates.
type LayoutType string

const (
	LayoutGrid     LayoutType = "grid"
	LayoutBanner   LayoutType = "banner"
	LayoutStory    LayoutType = "story"
	LayoutCarousel LayoutType = "carousel"
)

// ElementKind discriminates layout element variants on the wire.
type ElementKind string

const (
	KindImage ElementKind = "image"
	KindFrame ElementKind = "frame"
	KindIcon  ElementKind = "icon"
	KindText  ElementKind = "text"
	KindBadge ElementKind = "badge"
)

// Position places an element in percent-of-canvas units (0-100).
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CanvasSize is the pixel size a renderer should scale percentages against.
type CanvasSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TextStyle carries the presentational hints for text and badge elements.
type TextStyle struct {
	FontSize        int    `json:"fontSize,omitempty"`
	Color           string `json:"color,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"`
	TextDecoration  string `json:"textDecoration,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Element is the closed set of things a layout can place. Each variant
// carries only the fields its kind needs; elements are pure values and
// never reference one another. Lower ZIndex paints first.
type Element interface {
	Kind() ElementKind
	At() Position
	Z() int

	sealed()
}

// ImageElement places photographic product content.
type ImageElement struct {
	Position Position `json:"position"`
	ZIndex   int      `json:"zIndex"`
	Source   string   `json:"source"`
}

// FrameElement is a full-bleed decorative overlay painted beneath everything.
type FrameElement struct {
	Position Position `json:"position"`
	ZIndex   int      `json:"zIndex"`
	Source   string   `json:"source"`
}

// IconElement places a small decorative icon.
type IconElement struct {
	Position Position `json:"position"`
	ZIndex   int      `json:"zIndex"`
	Source   string   `json:"source"`
}

// TextElement renders CSV-derived or placeholder copy.
type TextElement struct {
	Position Position  `json:"position"`
	ZIndex   int       `json:"zIndex"`
	Content  string    `json:"content"`
	Style    TextStyle `json:"style"`
}

// BadgeElement renders a small callout such as a discount percentage.
type BadgeElement struct {
	Position Position  `json:"position"`
	ZIndex   int       `json:"zIndex"`
	Content  string    `json:"content"`
	Style    TextStyle `json:"style"`
}

func (e ImageElement) Kind() ElementKind { return KindImage }
func (e FrameElement) Kind() ElementKind { return KindFrame }
func (e IconElement) Kind() ElementKind  { return KindIcon }
func (e TextElement) Kind() ElementKind  { return KindText }
func (e BadgeElement) Kind() ElementKind { return KindBadge }

func (e ImageElement) At() Position { return e.Position }
func (e FrameElement) At() Position { return e.Position }
func (e IconElement) At() Position  { return e.Position }
func (e TextElement) At() Position  { return e.Position }
func (e BadgeElement) At() Position { return e.Position }

func (e ImageElement) Z() int { return e.ZIndex }
func (e FrameElement) Z() int { return e.ZIndex }
func (e IconElement) Z() int  { return e.ZIndex }
func (e TextElement) Z() int  { return e.ZIndex }
func (e BadgeElement) Z() int { return e.ZIndex }

func (ImageElement) sealed() {}
func (FrameElement) sealed() {}
func (IconElement) sealed()  {}
func (TextElement) sealed()  {}
func (BadgeElement) sealed() {}

func (e ImageElement) MarshalJSON() ([]byte, error) {
	type alias ImageElement
	return json.Marshal(struct {
		Type ElementKind `json:"type"`
		alias
	}{KindImage, alias(e)})
}

func (e FrameElement) MarshalJSON() ([]byte, error) {
	type alias FrameElement
	return json.Marshal(struct {
		Type ElementKind `json:"type"`
		alias
	}{KindFrame, alias(e)})
}

func (e IconElement) MarshalJSON() ([]byte, error) {
	type alias IconElement
	return json.Marshal(struct {
		Type ElementKind `json:"type"`
		alias
	}{KindIcon, alias(e)})
}

func (e TextElement) MarshalJSON() ([]byte, error) {
	type alias TextElement
	return json.Marshal(struct {
		Type ElementKind `json:"type"`
		alias
	}{KindText, alias(e)})
}

func (e BadgeElement) MarshalJSON() ([]byte, error) {
	type alias BadgeElement
	return json.Marshal(struct {
		Type ElementKind `json:"type"`
		alias
	}{KindBadge, alias(e)})
}

// Slide is one carousel frame with its own element stack.
type Slide struct {
	Type     string    `json:"type"` // "title" or "product"
	Elements []Element `json:"elements"`
}

// Layout is a declarative, percentage-positioned arrangement of
// elements for one template. Carousel layouts populate Slides instead
// of Elements. Layouts are generated fresh on every request and never
// mutated after construction.
type Layout struct {
	Type                  LayoutType `json:"type"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	RecommendedCanvasSize CanvasSize `json:"recommendedCanvasSize"`
	Priority              int        `json:"priority"`
	Elements              []Element  `json:"elements,omitempty"`
	Slides                []Slide    `json:"slides,omitempty"`
}
