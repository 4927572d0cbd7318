package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencivics/civigraph/internal/model"
	"github.com/opencivics/civigraph/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	llmProvider  string
	llmModel     string
	summaryModel string
	noCache      bool
	noPreprocess bool
	concurrency  int
	timeout      time.Duration
	outputDir    string
	metadataCSV  string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <transcript-dir>",
	Short: "Extract entities from meeting transcripts",
	Long: `Extract runs LLM entity extraction over every transcript in a
directory, writing one JSON extraction record per transcript.

Transcripts already extracted are skipped, so interrupted runs can be
resumed without re-billing.

Example:
  civigraph extract data/transcripts
  civigraph extract data/transcripts --llm-provider ollama --llm-model llama3.1
  civigraph extract data/transcripts --concurrency 8 --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addExtractFlags(extractCmd)
}

// addExtractFlags registers the flags shared by extract and run
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model for extraction")
	cmd.Flags().StringVar(&summaryModel, "summary-model", "gpt-4o-mini", "model for transcript preprocessing (empty disables)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable LLM response cache")
	cmd.Flags().BoolVar(&noPreprocess, "no-preprocess", false, "send full transcripts without summarization")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "concurrent extraction workers")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall run timeout")
	cmd.Flags().StringVar(&outputDir, "out", "output", "output directory")
	cmd.Flags().StringVar(&metadataCSV, "metadata", "", "meeting metadata CSV (optional)")
}

// applyExtractFlags overlays the extract/run flag values on the config
func applyExtractFlags(cfg *model.Config) {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.SummaryModel = summaryModel
	if noPreprocess {
		cfg.LLM.SummaryModel = ""
	}
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.ExtractWorkers = concurrency
	if metadataCSV != "" {
		cfg.Paths.MetadataCSV = metadataCSV
	}
	applyOutputDir(cfg, outputDir)
}

func runExtract(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	applyExtractFlags(cfg)

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	extracted, failed, total, err := p.ExtractAll(ctx, dataDir)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	fmt.Printf("Extracted %d/%d transcripts", extracted, total)
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Printf("\nRecords: %s\n", cfg.Paths.ExtractionsDir)

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Some transcripts failed; rerun to retry them.\n")
	}
	return nil
}
