package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckgen/agent"
)

// DeckBuilder renders a slide skeleton into a .pptx file with GoPPT.
type DeckBuilder struct {
	layout   LayoutConfig
	theme    Theme
	chartDir string
	log      func(string)
}

// NewDeckBuilder creates a builder for one deck. chartDir is where chart
// PNGs for chart slides are expected (chart_<n>.png per slide number).
func NewDeckBuilder(theme Theme, chartDir string, logFunc func(string)) *DeckBuilder {
	return &DeckBuilder{
		layout:   DefaultLayout().Themed(theme),
		theme:    theme,
		chartDir: chartDir,
		log:      logFunc,
	}
}

func (b *DeckBuilder) logf(format string, args ...interface{}) {
	if b.log != nil {
		b.log(fmt.Sprintf(format, args...))
	}
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func applyAlign(p *ppt.Paragraph, align Align) {
	switch align {
	case AlignCenter:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case AlignRight:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}

// Build writes the deck to outPath and returns the number of slides written.
// question is rendered on the opening slide beneath the skeleton's subtitle
// content.
func (b *DeckBuilder) Build(skeleton agent.Skeleton, question, outPath string) (int, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = deckTitle(skeleton)
	p.GetDocumentProperties().Creator = "deckgen"

	for i, slide := range skeleton.Slides {
		switch slide.Type {
		case agent.SlideTitle:
			b.addTitleSlide(p, i == 0, slide, question)
		case agent.SlideChart:
			b.addChartSlide(p, slide)
		case agent.SlideContent:
			b.addContentSlide(p, slide)
		default:
			return 0, fmt.Errorf("unknown slide type %q on slide %d", slide.Type, slide.SlideNo)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return 0, fmt.Errorf("failed to create PPT writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return 0, fmt.Errorf("failed to serialize PPT: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return len(skeleton.Slides), nil
}

func deckTitle(skeleton agent.Skeleton) string {
	if len(skeleton.Slides) > 0 && skeleton.Slides[0].Title != "" {
		return skeleton.Slides[0].Title
	}
	return "Data Analysis Presentation"
}

// slideFor returns the presentation's implicit first slide for the opening
// slide and a fresh slide otherwise.
func slideFor(p *ppt.Presentation, first bool) *ppt.Slide {
	if first {
		return p.GetActiveSlide()
	}
	return p.CreateSlide()
}

func (b *DeckBuilder) addTitleSlide(p *ppt.Presentation, first bool, spec agent.SlideSpec, question string) {
	slide := slideFor(p, first)
	b.addAccentBars(slide)

	st := b.layout.Title.Title
	box := st.Box()
	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(box.OffsetX).SetOffsetY(box.OffsetY)
	titleShape.SetWidth(box.Width).SetHeight(box.Height)
	size := FitFontSize(spec.Title, st.FontSize, st.FontSize-12)
	tr := titleShape.CreateTextRun(spec.Title)
	tr.GetFont().SetSize(size).SetBold(st.Bold).SetColor(ppt.NewColor(st.Color))
	applyAlign(titleShape.GetActiveParagraph(), st.Align)

	// The slide's own content is the subtitle, one line per bullet.
	sub := b.layout.Title.Subtitle
	subBox := sub.Box()
	subShape := slide.CreateRichTextShape()
	subShape.SetOffsetX(subBox.OffsetX).SetOffsetY(subBox.OffsetY)
	subShape.SetWidth(subBox.Width).SetHeight(subBox.Height)
	for j, line := range spec.Content {
		if j > 0 {
			subShape.CreateParagraph()
		}
		str := subShape.CreateTextRun(line)
		str.GetFont().SetSize(sub.FontSize).SetColor(ppt.NewColor(sub.Color))
		applyAlign(subShape.GetActiveParagraph(), AlignCenter)
	}

	metaY := subBox.OffsetY + subBox.Height
	if question != "" {
		qShape := slide.CreateRichTextShape()
		qShape.SetOffsetX(subBox.OffsetX).SetOffsetY(metaY)
		qShape.SetWidth(subBox.Width).SetHeight(int64(0.4 * emuPerInch))
		qTr := qShape.CreateTextRun(question)
		qTr.GetFont().SetSize(12).SetColor(ppt.NewColor("FF64748B"))
		applyAlign(qShape.GetActiveParagraph(), AlignCenter)
		metaY += int64(0.4 * emuPerInch)
	}

	tsShape := slide.CreateRichTextShape()
	tsShape.SetOffsetX(subBox.OffsetX).SetOffsetY(metaY)
	tsShape.SetWidth(subBox.Width).SetHeight(int64(0.4 * emuPerInch))
	tsTr := tsShape.CreateTextRun(time.Now().Format("January 2, 2006"))
	tsTr.GetFont().SetSize(11).SetColor(ppt.NewColor("FF94A3B8"))
	applyAlign(tsShape.GetActiveParagraph(), AlignCenter)
}

func (b *DeckBuilder) addContentSlide(p *ppt.Presentation, spec agent.SlideSpec) {
	slide := p.CreateSlide()
	b.addHeader(slide, spec.Title, b.layout.Content.Title)
	b.addBullets(slide, spec.Content, b.layout.Content.Body)
}

func (b *DeckBuilder) addChartSlide(p *ppt.Presentation, spec agent.SlideSpec) {
	slide := p.CreateSlide()
	b.addHeader(slide, spec.Title, b.layout.Chart.Title)
	b.addBullets(slide, spec.Content, b.layout.Chart.Body)

	// Chart image is optional: a failed render earlier in the pipeline leaves
	// no file and the slide keeps its bullets.
	chartPath := filepath.Join(b.chartDir, fmt.Sprintf("chart_%d.png", spec.SlideNo))
	imgBytes, err := os.ReadFile(chartPath)
	if err != nil {
		b.logf("[DECK] no chart image for slide %d (%s), skipping image", spec.SlideNo, chartPath)
		return
	}
	box := b.layout.Chart.Image.Box()
	imgShape := slide.CreateDrawingShape()
	imgShape.SetImageData(imgBytes, "image/png")
	imgShape.SetOffsetX(box.OffsetX).SetOffsetY(box.OffsetY)
	imgShape.SetWidth(box.Width).SetHeight(box.Height)
}

func (b *DeckBuilder) addHeader(slide *ppt.Slide, title string, st ElementStyle) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(SlideWidth).SetHeight(int64(0.08 * emuPerInch))
	topBar.SetFill(solidFill(b.theme.AccentColor))

	box := st.Box()
	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(box.OffsetX).SetOffsetY(box.OffsetY)
	titleShape.SetWidth(box.Width).SetHeight(box.Height)
	size := FitFontSize(title, st.FontSize, st.FontSize-8)
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(size).SetBold(st.Bold).SetColor(ppt.NewColor(st.Color))
	applyAlign(titleShape.GetActiveParagraph(), st.Align)
}

func (b *DeckBuilder) addBullets(slide *ppt.Slide, bullets []string, st ElementStyle) {
	if len(bullets) == 0 {
		return
	}
	box := st.Box()
	body := slide.CreateRichTextShape()
	body.SetOffsetX(box.OffsetX).SetOffsetY(box.OffsetY)
	body.SetWidth(box.Width).SetHeight(box.Height)

	size := FitFontSize(strings.Join(bullets, "\n"), st.FontSize, st.FontSize-4)
	for j, line := range bullets {
		if j > 0 {
			body.CreateParagraph()
			if st.BulletSpacing > 0 {
				spacer := body.CreateTextRun(" ")
				spacer.GetFont().SetSize(st.BulletSpacing)
				body.CreateParagraph()
			}
		}
		tr := body.CreateTextRun("• " + line)
		tr.GetFont().SetSize(size).SetColor(ppt.NewColor(st.Color))
		applyAlign(body.GetActiveParagraph(), st.Align)
	}
}

// addAccentBars draws the theme's accent stripes at the top and bottom edges
// of the opening slide.
func (b *DeckBuilder) addAccentBars(slide *ppt.Slide) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(SlideWidth).SetHeight(int64(0.15 * emuPerInch))
	topBar.SetFill(solidFill(b.theme.AccentColor))

	bottomBar := slide.CreateRichTextShape()
	bottomBar.SetOffsetX(0).SetOffsetY(SlideHeight - int64(0.125*emuPerInch))
	bottomBar.SetWidth(SlideWidth).SetHeight(int64(0.125 * emuPerInch))
	bottomBar.SetFill(solidFill(b.theme.AccentColor))
}
