package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckgen/config"
	"deckgen/logger"
)

var (
	flagOutput        string
	flagTemplate      string
	flagListTemplates bool
	flagChat          bool
)

var rootCmd = &cobra.Command{
	Use:   "deckgen <data-file> <question>",
	Short: "Generate a PowerPoint deck from a CSV/XLSX file and a question",
	Long: `deckgen loads a CSV or XLSX file, analyzes it with an LLM guided by
your question, and writes a five-slide PowerPoint presentation with
charts rendered from the data.`,
	Example: `  deckgen sales.csv "Analyze revenue by region"
  deckgen sales.csv "Quarterly trends" -o report.pptx -t modern_blue
  deckgen --list-templates
  deckgen sales.csv --chat`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output .pptx path (default presentation_<timestamp>.pptx)")
	rootCmd.Flags().StringVarP(&flagTemplate, "template", "t", "default", "presentation template name")
	rootCmd.Flags().BoolVar(&flagListTemplates, "list-templates", false, "list available templates and exit")
	rootCmd.Flags().BoolVar(&flagChat, "chat", false, "interactive Q&A about the data file instead of generating a deck")
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Listing templates needs no LLM credentials.
	if flagListTemplates {
		listTemplates(cfg)
		return nil
	}

	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer app.logger.Close()

	ctx := context.Background()
	if flagChat {
		if len(args) < 1 {
			return fmt.Errorf("chat mode needs a data file: deckgen <data-file> --chat")
		}
		return app.RunChat(ctx, args[0])
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: deckgen <data-file> <question>")
	}
	out, err := app.GenerateDeck(ctx, args[0], args[1], flagOutput, flagTemplate)
	if err != nil {
		return err
	}
	fmt.Printf("Presentation created: %s\n", out)
	return nil
}

func buildApp(cfg config.Config) (*App, error) {
	log := logger.NewLogger(cfg.DetailedLog)
	if err := log.Init("logs"); err != nil {
		// Logging is best effort; the pipeline works without a log file.
		fmt.Fprintf(os.Stderr, "warning: log init failed: %v\n", err)
	}

	return NewApp(cfg, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
