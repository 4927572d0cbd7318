package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/opencivics/civigraph/internal/pipeline"
	"github.com/spf13/cobra"
)

var runThreshold float64

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <transcript-dir>",
	Short: "Run the complete transcript-to-graph pipeline",
	Long: `Run executes every pipeline stage in order: entity extraction over the
transcript directory, entity resolution, and knowledge graph
construction with all exports.

Example:
  civigraph run data/transcripts
  civigraph run data/transcripts --llm-provider ollama --llm-model llama3.1
  civigraph run data/transcripts --threshold 0.9 --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addExtractFlags(runCmd)
	runCmd.Flags().Float64Var(&runThreshold, "threshold", 0.85, "fuzzy merge threshold (0..1)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	applyExtractFlags(cfg)
	cfg.Resolve.Threshold = runThreshold

	if runThreshold < 0 || runThreshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", runThreshold)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, dataDir)
	if err != nil {
		return err
	}

	fmt.Printf("Transcripts: %d (%d extracted, %d failed)\n", result.Transcripts, result.Extracted, result.Failed)
	printGraphStats(result.GraphStats)
	fmt.Printf("Completed in %s\n", result.Elapsed.Round(10*time.Millisecond))
	return nil
}
