package cli

import (
	"errors"
	"fmt"

	"github.com/opencivics/civigraph/internal/graph"
	"github.com/opencivics/civigraph/internal/resolve"
	"github.com/spf13/cobra"
)

var graphOut string

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the knowledge graph from resolved entities",
	Long: `Graph assembles the knowledge graph from extraction records and the
resolution document: typed nodes for people, organizations, bills, and
projects, and directed edges for votes, memberships, mentions,
authorizations, and bill-organization links.

The graph is written in three formats: node-link JSON, GraphML (for
Neo4j or Gephi import), and Graphviz DOT.

Example:
  civigraph graph
  civigraph graph --out output`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVar(&graphOut, "out", "output", "output directory")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	applyOutputDir(cfg, graphOut)

	resolution, err := resolve.LoadResolution(cfg.Paths.ResolutionFile)
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			return fmt.Errorf("no resolution document at %s; run 'civigraph resolve' first", cfg.Paths.ResolutionFile)
		}
		return fmt.Errorf("load resolution: %w", err)
	}

	extractions, err := resolve.LoadExtractions(cfg.Paths.ExtractionsDir)
	if err != nil {
		return fmt.Errorf("load extractions: %w", err)
	}
	if len(extractions) == 0 {
		return fmt.Errorf("no extraction records in %s; run 'civigraph extract' first", cfg.Paths.ExtractionsDir)
	}

	g := graph.NewBuilder(resolution).Build(extractions)

	if err := graph.WriteJSON(g, cfg.Paths.GraphJSON); err != nil {
		return err
	}
	if err := graph.WriteGraphML(g, cfg.Paths.GraphML); err != nil {
		return err
	}
	if err := graph.WriteDOT(g, cfg.Paths.GraphDOT); err != nil {
		return err
	}

	printGraphStats(g.Stats())
	fmt.Printf("Exports: %s, %s, %s\n", cfg.Paths.GraphJSON, cfg.Paths.GraphML, cfg.Paths.GraphDOT)
	return nil
}

func printGraphStats(stats graph.Stats) {
	fmt.Printf("Nodes: %d\n", stats.Nodes)
	for _, t := range graph.SortedKeys(stats.NodesByType) {
		fmt.Printf("  %s: %d\n", t, stats.NodesByType[t])
	}
	fmt.Printf("Edges: %d\n", stats.Edges)
	for _, t := range graph.SortedKeys(stats.EdgesByType) {
		fmt.Printf("  %s: %d\n", t, stats.EdgesByType[t])
	}
}
