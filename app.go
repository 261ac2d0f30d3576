package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"deckgen/agent"
	"deckgen/charts"
	"deckgen/config"
	"deckgen/dataset"
	"deckgen/export"
	"deckgen/logger"
)

// App wires the full pipeline: dataset import, LLM analysis, skeleton
// synthesis, per-slide enhancement, chart rendering and deck export.
type App struct {
	cfg    config.Config
	logger *logger.Logger
	llm    *agent.LLMClient
	runID  string
}

// NewApp builds an App from the loaded configuration.
func NewApp(cfg config.Config, log *logger.Logger) (*App, error) {
	llm, err := agent.NewLLMClient(cfg, log.Log)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:    cfg,
		logger: log,
		llm:    llm,
		runID:  uuid.New().String(),
	}, nil
}

// GenerateDeck runs the whole pipeline for one data file and question and
// returns the path of the written .pptx.
func (a *App) GenerateDeck(ctx context.Context, filePath, question, outputPath, templateName string) (string, error) {
	theme := export.ResolveTheme(templateName, a.cfg.TemplatesDir)
	a.logger.Logf("[APP] run %s: template=%s file=%s", a.runID, theme.Name, filePath)

	store, err := dataset.Open(filePath, a.logger.Log)
	if err != nil {
		return "", fmt.Errorf("failed to load data file: %w", err)
	}
	defer store.Close()

	analyzer := agent.NewAnalyzer(a.llm, store, a.logger.Log)
	res := analyzer.Analyze(ctx, question)
	a.reportDegraded("query", res.QueryDegraded)
	a.reportDegraded("summary", res.SummaryDegraded)

	synth := agent.NewSynthesizer(a.llm, a.logger.Log)
	skeleton, degraded := synth.Synthesize(ctx, res, theme.Name)
	a.reportDegraded("skeleton", degraded)

	chartDir := filepath.Join(a.cfg.ChartsDir, a.runID)
	gen := charts.NewGenerator(a.llm, a.logger.Log)
	enhancer := agent.NewEnhancer(a.llm, a.logger.Log)

	for no, reason := range enhanceSkeleton(ctx, enhancer, &skeleton, res) {
		a.reportDegraded(fmt.Sprintf("enhance slide %d", no), reason)
	}

	for _, slide := range skeleton.Slides {
		if slide.Type != agent.SlideChart {
			continue
		}
		chartPath := filepath.Join(chartDir, fmt.Sprintf("chart_%d.png", slide.SlideNo))
		// A failed chart leaves no image file; the deck builder then keeps
		// the slide's bullets without a picture.
		if _, err := gen.Generate(ctx, res.Table, chartContext(question, slide.Title), chartPath); err != nil {
			a.logger.Logf("[APP] chart for slide %d failed: %v, slide keeps text only", slide.SlideNo, err)
		}
	}

	if outputPath == "" {
		outputPath = defaultOutputName(theme.Name)
	}
	builder := export.NewDeckBuilder(theme, chartDir, a.logger.Log)
	n, err := builder.Build(skeleton, question, outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to build presentation: %w", err)
	}
	a.logger.Logf("[APP] wrote %d slides to %s", n, outputPath)
	return outputPath, nil
}

// RunChat opens the data file and answers free-form questions about it on
// the given streams until the user exits.
func (a *App) RunChat(ctx context.Context, filePath string) error {
	store, err := dataset.Open(filePath, a.logger.Log)
	if err != nil {
		return fmt.Errorf("failed to load data file: %w", err)
	}
	defer store.Close()

	analyzer := agent.NewAnalyzer(a.llm, store, a.logger.Log)
	res := analyzer.Analyze(ctx, "Summarize the key characteristics of this dataset")
	a.reportDegraded("summary", res.SummaryDegraded)

	fmt.Printf("Loaded %s: %d rows, %d columns\n", filepath.Base(filePath), store.NumRows(), len(store.Columns()))
	fmt.Println(res.Summary)
	fmt.Println("Ask questions about the data (type 'exit' to quit):")

	bot := agent.NewChatbot(a.llm, a.logger.Log)
	return bot.Loop(ctx, res.Summary, os.Stdin, os.Stdout)
}

// listTemplates prints the available deck templates.
func listTemplates(cfg config.Config) {
	fmt.Println("Available templates:")
	for _, t := range export.ListThemes(cfg.TemplatesDir) {
		fmt.Printf("  %-16s %s\n", t.Name, t.Description)
	}
}

// enhanceSkeleton rewrites every slide's bullets in place, the title slide
// included. The returned map carries the degraded reason per slide number for
// slides that kept their outline.
func enhanceSkeleton(ctx context.Context, enhancer *agent.Enhancer, skeleton *agent.Skeleton, res *agent.AnalysisResult) map[int]string {
	reasons := make(map[int]string)
	for i, slide := range skeleton.Slides {
		enhanced, degraded := enhancer.Enhance(ctx, slide, res)
		skeleton.Slides[i] = enhanced
		if degraded != "" {
			reasons[slide.SlideNo] = degraded
		}
	}
	return reasons
}

// chartContext pairs the user's question with the slide's focus so the chart
// classifier sees both.
func chartContext(question, slideTitle string) string {
	if slideTitle == "" {
		return question
	}
	return question + " - " + slideTitle
}

func (a *App) reportDegraded(stage, reason string) {
	if reason != "" {
		a.logger.Logf("[APP] degraded %s: %s", stage, reason)
	}
}

// defaultOutputName derives the output filename from the template and the
// current time, e.g. presentation_modern_blue_20260830_153000.pptx.
func defaultOutputName(themeName string) string {
	ts := time.Now().Format("20060102_150405")
	if themeName != "" && themeName != export.DefaultThemeName {
		return fmt.Sprintf("presentation_%s_%s.pptx", themeName, ts)
	}
	return fmt.Sprintf("presentation_%s.pptx", ts)
}
