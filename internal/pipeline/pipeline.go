package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/extract"
	"github.com/opencivics/civigraph/internal/graph"
	"github.com/opencivics/civigraph/internal/llm"
	"github.com/opencivics/civigraph/internal/model"
	"github.com/opencivics/civigraph/internal/preprocess"
	"github.com/opencivics/civigraph/internal/resolve"
	"github.com/opencivics/civigraph/internal/worker"
)

// Pipeline orchestrates the full transcript-to-graph run: extraction,
// aggregation, resolution, graph assembly, export.
type Pipeline struct {
	config    *Config
	extractor *extract.Extractor
	metadata  *extract.MetadataIndex
	verbose   bool
}

// Config is an alias kept for call-site readability
type Config = model.Config

// NewPipeline wires the pipeline from configuration. The LLM provider is
// created eagerly so misconfiguration surfaces before any transcript
// work starts.
func NewPipeline(cfg *Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var preprocessor *preprocess.Preprocessor
	if cfg.LLM.SummaryModel != "" {
		preprocessor = preprocess.NewPreprocessor(provider, cfg.LLM.SummaryModel, cfg.LLM.SummaryTokens, responseCache, cfg.Output.Verbose)
	}

	metadata, err := extract.LoadMetadata(cfg.Paths.MetadataCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: metadata unavailable: %v\n", err)
		metadata = &extract.MetadataIndex{}
	}

	extractor := extract.NewExtractor(provider, preprocessor, cfg.LLM.Model, cfg.LLM.MaxTokens, responseCache, cfg.Output.Verbose)

	return &Pipeline{
		config:    cfg,
		extractor: extractor,
		metadata:  metadata,
		verbose:   cfg.Output.Verbose,
	}, nil
}

// RunResult summarizes a completed pipeline run
type RunResult struct {
	Transcripts int
	Extracted   int
	Failed      int
	Resolution  *model.Resolution
	GraphStats  graph.Stats
	Elapsed     time.Duration
}

// Run executes the complete pipeline over the transcript directory.
// Per-transcript failures warn and continue; stage failures abort.
func (p *Pipeline) Run(ctx context.Context, dataDir string) (*RunResult, error) {
	start := time.Now()

	extracted, failed, total, err := p.ExtractAll(ctx, dataDir)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if extracted == 0 && countExtractions(p.config.Paths.ExtractionsDir) == 0 {
		return nil, fmt.Errorf("extract: no extraction records produced from %s", dataDir)
	}

	resolution, err := p.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	stats, err := p.BuildGraph(resolution)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}

	return &RunResult{
		Transcripts: total,
		Extracted:   extracted,
		Failed:      failed,
		Resolution:  resolution,
		GraphStats:  stats,
		Elapsed:     time.Since(start),
	}, nil
}

// ExtractAll runs entity extraction over every transcript in dataDir,
// writing one record per transcript into the extractions directory.
// Returns extracted count, failed count, and total transcripts found.
func (p *Pipeline) ExtractAll(ctx context.Context, dataDir string) (int, int, int, error) {
	paths, err := extract.ListTranscripts(dataDir)
	if err != nil {
		return 0, 0, 0, err
	}
	if p.verbose {
		fmt.Fprintf(os.Stderr, "Found %d transcripts in %s\n", len(paths), dataDir)
	}

	processor := worker.NewBatchProcessor(p.extractor, p.metadata, p.config.Concurrency.ExtractWorkers, p.verbose)
	results := processor.ProcessTranscripts(ctx, paths, p.config.Paths.ExtractionsDir)

	extracted, failed := 0, 0
	for _, result := range results {
		if result.GetError() != nil {
			fmt.Fprintf(os.Stderr, "Warning: extraction failed for %s: %v\n", result.Path, result.Error)
			failed++
			continue
		}
		extracted++
	}
	return extracted, failed, len(paths), nil
}

// Resolve aggregates raw mentions across all extraction records, runs
// entity resolution, and persists the resolution document.
func (p *Pipeline) Resolve() (*model.Resolution, error) {
	aggregator := resolve.NewAggregator(p.config.Paths.ExtractionsDir, p.verbose)
	aggregated, err := aggregator.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	resolution := resolve.ResolveAll(aggregated, p.config.Resolve.Threshold)

	if p.verbose {
		fmt.Fprintf(os.Stderr, "Resolved %d bills -> %d, %d orgs -> %d, %d projects -> %d\n",
			len(aggregated.Bills), resolution.Bills.Canonicals(),
			len(aggregated.Organizations), resolution.Organizations.Canonicals(),
			len(aggregated.Projects), resolution.Projects.Canonicals())
	}

	if err := resolve.SaveResolution(p.config.Paths.ResolutionFile, resolution); err != nil {
		return nil, fmt.Errorf("save resolution: %w", err)
	}
	return resolution, nil
}

// BuildGraph assembles the knowledge graph from extraction records and
// the resolution, then writes all export formats.
func (p *Pipeline) BuildGraph(resolution *model.Resolution) (graph.Stats, error) {
	extractions, err := resolve.LoadExtractions(p.config.Paths.ExtractionsDir)
	if err != nil {
		return graph.Stats{}, fmt.Errorf("load extractions: %w", err)
	}

	g := graph.NewBuilder(resolution).Build(extractions)

	if err := graph.WriteJSON(g, p.config.Paths.GraphJSON); err != nil {
		return graph.Stats{}, err
	}
	if err := graph.WriteGraphML(g, p.config.Paths.GraphML); err != nil {
		return graph.Stats{}, err
	}
	if err := graph.WriteDOT(g, p.config.Paths.GraphDOT); err != nil {
		return graph.Stats{}, err
	}

	return g.Stats(), nil
}

// countExtractions reports how many extraction records already exist,
// so reruns over previously extracted transcripts still proceed.
func countExtractions(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}
