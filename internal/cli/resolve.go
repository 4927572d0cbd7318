package cli

import (
	"fmt"

	"github.com/opencivics/civigraph/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	resolveThreshold float64
	resolveOut       string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve extracted entities to canonical forms",
	Long: `Resolve aggregates raw entity mentions across all extraction records
and collapses duplicates: bill identifiers by structural normalization
("Ordinance 25-o-1271" and "25-O-1271" become one bill), organization
and project names by fuzzy string clustering.

The output is a resolution document mapping every raw mention to its
canonical form, consumed by graph construction.

Example:
  civigraph resolve
  civigraph resolve --threshold 0.9 --out output`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Float64Var(&resolveThreshold, "threshold", resolve.DefaultThreshold, "fuzzy merge threshold (0..1)")
	resolveCmd.Flags().StringVar(&resolveOut, "out", "output", "output directory")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	applyOutputDir(cfg, resolveOut)
	cfg.Resolve.Threshold = resolveThreshold

	if resolveThreshold < 0 || resolveThreshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", resolveThreshold)
	}

	aggregator := resolve.NewAggregator(cfg.Paths.ExtractionsDir, verbose)
	aggregated, err := aggregator.Aggregate()
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if len(aggregated.Bills)+len(aggregated.Organizations)+len(aggregated.Projects) == 0 {
		return fmt.Errorf("no entities found in %s; run 'civigraph extract' first", cfg.Paths.ExtractionsDir)
	}

	resolution := resolve.ResolveAll(aggregated, cfg.Resolve.Threshold)

	if err := resolve.SaveResolution(cfg.Paths.ResolutionFile, resolution); err != nil {
		return fmt.Errorf("save resolution: %w", err)
	}

	fmt.Printf("Bills:         %d raw -> %d canonical\n", len(aggregated.Bills), resolution.Bills.Canonicals())
	fmt.Printf("Organizations: %d raw -> %d canonical\n", len(aggregated.Organizations), resolution.Organizations.Canonicals())
	fmt.Printf("Projects:      %d raw -> %d canonical\n", len(aggregated.Projects), resolution.Projects.Canonicals())
	fmt.Printf("Resolution: %s\n", cfg.Paths.ResolutionFile)
	return nil
}
