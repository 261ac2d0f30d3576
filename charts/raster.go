package charts

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterRenderer is the fallback renderer. It draws charts directly onto an
// RGBA canvas with basicfont labels, so it has no failure modes beyond file
// I/O: if go-chart chokes on a degenerate dataset this still produces an
// image with the same visual contract.
type RasterRenderer struct{}

// NewRasterRenderer creates the fallback renderer.
func NewRasterRenderer() *RasterRenderer {
	return &RasterRenderer{}
}

// Render draws the series and writes a PNG to path.
func (r *RasterRenderer) Render(series Series, title string, typ ChartType, path string) error {
	if len(series.Values) == 0 {
		return fmt.Errorf("no data to chart")
	}

	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawTextCentered(img, TruncateTitle(title), chartWidth/2, 30, color.RGBA{40, 40, 40, 255})

	switch typ {
	case ChartPie:
		r.drawPie(img, series)
	default:
		r.drawBars(img, series)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return nil
}

func (r *RasterRenderer) drawBars(img *image.RGBA, series Series) {
	const (
		marginLeft   = 70
		marginRight  = 40
		marginTop    = 70
		marginBottom = 60
	)
	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom

	maxVal := 0.0
	for _, v := range series.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	n := len(series.Values)
	slot := plotW / n
	barW := slot * 3 / 4
	if barW < 2 {
		barW = 2
	}

	baseline := marginTop + plotH
	for i, v := range series.Values {
		h := int(float64(plotH) * v / maxVal)
		if h < 1 && v > 0 {
			h = 1
		}
		x0 := marginLeft + i*slot + (slot-barW)/2
		fillRect(img, x0, baseline-h, x0+barW, baseline, paletteColor(i))

		// Value label above the bar, category label below the axis.
		drawTextCentered(img, formatValue(v), x0+barW/2, baseline-h-6, color.RGBA{60, 60, 60, 255})
		drawTextCentered(img, series.Labels[i], x0+barW/2, baseline+20, color.RGBA{60, 60, 60, 255})
	}

	// Axis line
	fillRect(img, marginLeft, baseline, marginLeft+plotW, baseline+2, color.RGBA{120, 120, 120, 255})
}

func (r *RasterRenderer) drawPie(img *image.RGBA, series Series) {
	total := 0.0
	for _, v := range series.Values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return
	}

	cx, cy := chartWidth/2, chartHeight/2+20
	radius := 240.0

	// Cumulative wedge boundaries starting at 12 o'clock.
	bounds := make([]float64, 0, len(series.Values)+1)
	bounds = append(bounds, 0)
	acc := 0.0
	for _, v := range series.Values {
		if v > 0 {
			acc += v
		}
		bounds = append(bounds, acc/total*2*math.Pi)
	}

	for y := cy - int(radius); y <= cy+int(radius); y++ {
		for x := cx - int(radius); x <= cx+int(radius); x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			angle := math.Atan2(dx, -dy) // 0 at top, clockwise
			if angle < 0 {
				angle += 2 * math.Pi
			}
			for i := 0; i < len(series.Values); i++ {
				if angle >= bounds[i] && angle < bounds[i+1] {
					img.Set(x, y, paletteColor(i))
					break
				}
			}
		}
	}

	// Percentage labels at each wedge centroid.
	for i, v := range series.Values {
		if v <= 0 {
			continue
		}
		mid := (bounds[i] + bounds[i+1]) / 2
		lx := cx + int(0.65*radius*math.Sin(mid))
		ly := cy - int(0.65*radius*math.Cos(mid))
		label := fmt.Sprintf("%s %.1f%%", series.Labels[i], v/total*100)
		drawTextCentered(img, label, lx, ly, color.White)
	}
}

func paletteColor(i int) color.RGBA {
	hex := palette[i%len(palette)]
	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawTextCentered(img *image.RGBA, text string, cx, cy int, c color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-width/2, cy),
	}
	d.DrawString(text)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
