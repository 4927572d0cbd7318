package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete pipeline configuration
type Config struct {
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Resolve     ResolveConfig     `yaml:"resolve" mapstructure:"resolve"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// PathsConfig holds filesystem layout for pipeline artifacts
type PathsConfig struct {
	DataDir        string `yaml:"data_dir" mapstructure:"data_dir"`               // Transcript JSON files
	MetadataCSV    string `yaml:"metadata_csv" mapstructure:"metadata_csv"`       // Meeting metadata CSV
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`           // All pipeline output
	ExtractionsDir string `yaml:"extractions_dir" mapstructure:"extractions_dir"` // Per-transcript extraction records
	ResolutionFile string `yaml:"resolution_file" mapstructure:"resolution_file"` // Alias map document
	GraphJSON      string `yaml:"graph_json" mapstructure:"graph_json"`
	GraphML        string `yaml:"graphml" mapstructure:"graphml"`
	GraphDOT       string `yaml:"graph_dot" mapstructure:"graph_dot"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider      string  `yaml:"provider" mapstructure:"provider"`             // openai, ollama
	Model         string  `yaml:"model" mapstructure:"model"`                   // Extraction model
	SummaryModel  string  `yaml:"summary_model" mapstructure:"summary_model"`   // Cheaper model for preprocessing
	APIKey        string  `yaml:"-" mapstructure:"-"`                           // From environment, never persisted
	BaseURL       string  `yaml:"base_url,omitempty" mapstructure:"base_url"`   // Custom endpoint (e.g., Ollama)
	Timeout       int     `yaml:"timeout" mapstructure:"timeout"`               // Seconds per request
	Temperature   float32 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens     int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	SummaryTokens int     `yaml:"summary_tokens" mapstructure:"summary_tokens"` // Target length of preprocessed summary
}

// HTTPConfig holds settings for fetching remote meeting documents
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_bytes" mapstructure:"max_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls caching of LLM responses
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ResolveConfig controls the entity resolution pass
type ResolveConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"` // Fuzzy merge threshold
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers" mapstructure:"extract_workers"`
}

// OutputConfig controls logging behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Config{
		Paths: PathsConfig{
			DataDir:        "data/transcripts",
			MetadataCSV:    "data/metadata.csv",
			OutputDir:      "output",
			ExtractionsDir: filepath.Join("output", "extractions"),
			ResolutionFile: filepath.Join("output", "resolved_entities.json"),
			GraphJSON:      filepath.Join("output", "knowledge_graph.json"),
			GraphML:        filepath.Join("output", "knowledge_graph.graphml"),
			GraphDOT:       filepath.Join("output", "knowledge_graph.dot"),
		},
		LLM: LLMConfig{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			SummaryModel:  "gpt-4o-mini",
			Timeout:       60,
			Temperature:   0.1,
			MaxTokens:     4000,
			SummaryTokens: 2000,
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Civigraph/0.1 (+https://github.com/opencivics/civigraph)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(cacheDir, "civigraph"),
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Resolve: ResolveConfig{
			Threshold: 0.85,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
