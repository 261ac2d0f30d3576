package export

import "unicode/utf8"

// Slide geometry runs on a 4:3 canvas. Element positions are configured as
// percentages of the slide and converted to EMU only at render time.
const (
	emuPerInch = 914400

	slideWidthInches  = 10.0
	slideHeightInches = 7.5

	// SlideWidth and SlideHeight are the canvas size in EMU.
	SlideWidth  = int64(slideWidthInches * emuPerInch)
	SlideHeight = int64(slideHeightInches * emuPerInch)
)

// Align is the horizontal paragraph alignment for an element.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ElementStyle positions and styles one slide element. Geometry is expressed
// in percent of the slide dimensions; colors are ARGB hex as GoPPT expects.
type ElementStyle struct {
	LeftPct   float64
	TopPct    float64
	WidthPct  float64
	HeightPct float64

	FontSize      int
	Bold          bool
	Align         Align
	Color         string
	BulletSpacing int // spacer run size between bullets, points
}

// Box is an element's absolute placement in EMU.
type Box struct {
	OffsetX int64
	OffsetY int64
	Width   int64
	Height  int64
}

// Box converts the percentage geometry into absolute coordinates. Pure
// function of the style and the fixed slide dimensions.
func (e ElementStyle) Box() Box {
	return Box{
		OffsetX: int64(e.LeftPct / 100 * slideWidthInches * emuPerInch),
		OffsetY: int64(e.TopPct / 100 * slideHeightInches * emuPerInch),
		Width:   int64(e.WidthPct / 100 * slideWidthInches * emuPerInch),
		Height:  int64(e.HeightPct / 100 * slideHeightInches * emuPerInch),
	}
}

// TitleSlideLayout positions the opening slide's elements.
type TitleSlideLayout struct {
	Title    ElementStyle
	Subtitle ElementStyle
}

// ContentSlideLayout positions a bullet slide's elements.
type ContentSlideLayout struct {
	Title ElementStyle
	Body  ElementStyle
}

// ChartSlideLayout positions a chart slide: title across the top, image on
// the right, supporting bullets on the left.
type ChartSlideLayout struct {
	Title ElementStyle
	Image ElementStyle
	Body  ElementStyle
}

// LayoutConfig is the full static layout table for a deck. It is an
// immutable value: builders receive it by value and per-deck overrides are
// injected by constructing a modified copy.
type LayoutConfig struct {
	Title   TitleSlideLayout
	Content ContentSlideLayout
	Chart   ChartSlideLayout
}

// DefaultLayout returns the standard deck layout.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Title: TitleSlideLayout{
			Title: ElementStyle{
				LeftPct: 10, TopPct: 25, WidthPct: 80, HeightPct: 15,
				FontSize: 40, Bold: true, Align: AlignCenter, Color: "FF1E293B",
			},
			Subtitle: ElementStyle{
				LeftPct: 10, TopPct: 60, WidthPct: 80, HeightPct: 20,
				FontSize: 15, Align: AlignLeft, Color: "FF64748B",
			},
		},
		Content: ContentSlideLayout{
			Title: ElementStyle{
				LeftPct: 5, TopPct: 10, WidthPct: 90, HeightPct: 15,
				FontSize: 24, Bold: true, Align: AlignLeft, Color: "FF1E293B",
			},
			Body: ElementStyle{
				LeftPct: 5, TopPct: 30, WidthPct: 90, HeightPct: 65,
				FontSize: 14, Align: AlignLeft, Color: "FF334155",
				BulletSpacing: 8,
			},
		},
		Chart: ChartSlideLayout{
			Title: ElementStyle{
				LeftPct: 5, TopPct: 10, WidthPct: 90, HeightPct: 12,
				FontSize: 24, Bold: true, Align: AlignCenter, Color: "FF1E293B",
			},
			Image: ElementStyle{
				LeftPct: 50, TopPct: 24, WidthPct: 45, HeightPct: 60,
			},
			Body: ElementStyle{
				LeftPct: 5, TopPct: 24, WidthPct: 40, HeightPct: 60,
				FontSize: 12, Align: AlignLeft, Color: "FF334155",
				BulletSpacing: 6,
			},
		},
	}
}

// Themed returns a copy of the layout with the theme's text colors applied.
// Geometry is untouched; this is the per-deck style override point.
func (c LayoutConfig) Themed(theme Theme) LayoutConfig {
	c.Title.Title.Color = theme.TitleColor
	c.Title.Subtitle.Color = theme.BodyColor
	c.Content.Title.Color = theme.TitleColor
	c.Content.Body.Color = theme.BodyColor
	c.Chart.Title.Color = theme.TitleColor
	c.Chart.Body.Color = theme.BodyColor
	return c
}

// FitFontSize lowers the font size as text grows, in four discrete tiers
// between maxSize and minSize. Length is counted in runes so multi-byte
// scripts don't shrink early.
func FitFontSize(text string, maxSize, minSize int) int {
	length := utf8.RuneCountInString(text)
	lines := 1
	for _, ch := range text {
		if ch == '\n' {
			lines++
		}
	}

	switch {
	case length > 300 || lines > 6:
		return minSize
	case length > 200 || lines > 4:
		return minSize + 2
	case length > 100 || lines > 3:
		return maxSize - 2
	default:
		return maxSize
	}
}
