package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencivics/civigraph/internal/model"
)

// Extractor defines the interface for extracting one transcript file
type Extractor interface {
	ExtractFile(ctx context.Context, path string, meta model.MeetingMeta, outDir string) (*model.TranscriptExtraction, error)
}

// MetadataSource resolves meeting metadata for a transcript file
type MetadataSource interface {
	Lookup(transcriptPath string) model.MeetingMeta
}

// ExtractJob extracts entities from one transcript file
type ExtractJob struct {
	Path      string
	Meta      model.MeetingMeta
	OutDir    string
	Extractor Extractor
}

// Execute runs the extraction for this job's transcript
func (j *ExtractJob) Execute(ctx context.Context) Result {
	extraction, err := j.Extractor.ExtractFile(ctx, j.Path, j.Meta, j.OutDir)
	return &ExtractResult{
		Path:       j.Path,
		Extraction: extraction,
		Error:      err,
	}
}

// ExtractResult is the outcome of one transcript extraction
type ExtractResult struct {
	Path       string
	Extraction *model.TranscriptExtraction
	Error      error
}

// GetError returns the error from the extraction, if any
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many transcripts concurrently
type BatchProcessor struct {
	extractor   Extractor
	metadata    MetadataSource
	concurrency int
	verbose     bool
}

// NewBatchProcessor creates a batch processor. metadata may be nil.
func NewBatchProcessor(extractor Extractor, metadata MetadataSource, concurrency int, verbose bool) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		metadata:    metadata,
		concurrency: concurrency,
		verbose:     verbose,
	}
}

// ProcessTranscripts extracts the given transcript files concurrently,
// skipping files whose extraction record already exists in outDir.
func (b *BatchProcessor) ProcessTranscripts(ctx context.Context, paths []string, outDir string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		if outDir != "" && extractionExists(outDir, path) {
			if b.verbose {
				fmt.Fprintf(os.Stderr, "Skipping %s: extraction exists\n", filepath.Base(path))
			}
			continue
		}

		var meta model.MeetingMeta
		if b.metadata != nil {
			meta = b.metadata.Lookup(path)
		}

		pool.Submit(&ExtractJob{
			Path:      path,
			Meta:      meta,
			OutDir:    outDir,
			Extractor: b.extractor,
		})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}

	return extractResults
}

// extractionExists reports whether an extraction record for the
// transcript is already on disk.
func extractionExists(outDir, transcriptPath string) bool {
	base := filepath.Base(transcriptPath)
	name := base[:len(base)-len(filepath.Ext(base))] + ".json"
	_, err := os.Stat(filepath.Join(outDir, name))
	return err == nil
}
