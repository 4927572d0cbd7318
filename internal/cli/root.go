package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencivics/civigraph/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "civigraph",
	Short: "Civigraph - knowledge graphs from municipal meeting transcripts",
	Long: `Civigraph turns raw city council meeting transcripts into a queryable
knowledge graph.

It extracts bills, people, organizations, projects, and votes from
transcripts with an LLM, resolves the many raw spellings of each entity
to one canonical form, and links everything into a directed graph with
typed relationships (VOTED_ON, MEMBER_OF, MENTIONED_IN, AUTHORIZES,
RELATES_TO).

Outputs are plain files: per-transcript extraction records, a resolution
document mapping every alias to its canonical entity, and the graph in
JSON, GraphML, and Graphviz DOT.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Civigraph.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("civigraph v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.civigraph/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.civigraph")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CIVIGRAPH_*
	viper.SetEnvPrefix("CIVIGRAPH")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, overlaid by
// the config file and CIVIGRAPH_* environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	cfg.Output.Verbose = verbose
	return cfg
}

// applyOutputDir repoints every pipeline artifact under dir
func applyOutputDir(cfg *model.Config, dir string) {
	if dir == "" {
		return
	}
	cfg.Paths.OutputDir = dir
	cfg.Paths.ExtractionsDir = filepath.Join(dir, "extractions")
	cfg.Paths.ResolutionFile = filepath.Join(dir, "resolved_entities.json")
	cfg.Paths.GraphJSON = filepath.Join(dir, "knowledge_graph.json")
	cfg.Paths.GraphML = filepath.Join(dir, "knowledge_graph.graphml")
	cfg.Paths.GraphDOT = filepath.Join(dir, "knowledge_graph.dot")
}
