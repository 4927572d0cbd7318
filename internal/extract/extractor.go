package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/llm"
	"github.com/opencivics/civigraph/internal/model"
	"github.com/opencivics/civigraph/internal/preprocess"
)

// Extractor turns one transcript into a structured extraction record
// using an LLM provider. Enum fields in the reply are validated and
// coerced, never trusted.
type Extractor struct {
	provider     llm.Provider
	preprocessor *preprocess.Preprocessor
	model        string
	maxTokens    int
	cache        cache.Cache // nil disables caching
	verbose      bool
}

// NewExtractor creates an extractor. preprocessor and responseCache may
// be nil.
func NewExtractor(provider llm.Provider, preprocessor *preprocess.Preprocessor, modelName string, maxTokens int, responseCache cache.Cache, verbose bool) *Extractor {
	return &Extractor{
		provider:     provider,
		preprocessor: preprocessor,
		model:        modelName,
		maxTokens:    maxTokens,
		cache:        responseCache,
		verbose:      verbose,
	}
}

// ExtractText extracts entities from transcript text
func (e *Extractor) ExtractText(ctx context.Context, transcript string, meta model.MeetingMeta) (*model.TranscriptExtraction, error) {
	if e.preprocessor != nil {
		reduced := e.preprocessor.Summary(ctx, transcript)
		if e.verbose {
			fmt.Fprintf(os.Stderr, "Preprocessed transcript %d -> %d chars\n", len(transcript), len(reduced))
		}
		transcript = reduced
	}

	prompt := buildExtractionPrompt(transcript, meta)

	text, err := e.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}

	extraction, err := parseExtraction(text)
	if err != nil {
		return nil, fmt.Errorf("parse extraction reply: %w", err)
	}

	extraction.Metadata = meta
	extraction.Sanitize()
	return extraction, nil
}

// ExtractFile extracts entities from a transcript file and writes the
// extraction record into outDir.
func (e *Extractor) ExtractFile(ctx context.Context, path string, meta model.MeetingMeta, outDir string) (*model.TranscriptExtraction, error) {
	transcript, err := LoadTranscript(path)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	extraction, err := e.ExtractText(ctx, transcript, meta)
	if err != nil {
		return nil, err
	}
	extraction.SourceFile = filepath.Base(path)

	if outDir != "" {
		if err := SaveExtraction(outDir, path, extraction); err != nil {
			return nil, err
		}
	}
	return extraction, nil
}

func (e *Extractor) complete(ctx context.Context, prompt string) (string, error) {
	if e.cache != nil {
		key := cache.CompletionKey(e.model, extractionSystemPrompt, prompt)
		if cached, found := e.cache.Get(key); found {
			return string(cached), nil
		}
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:    extractionSystemPrompt,
		Prompt:    prompt,
		Model:     e.model,
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		key := cache.CompletionKey(e.model, extractionSystemPrompt, prompt)
		if err := e.cache.Set(key, []byte(resp.Text), 7*24*time.Hour); err != nil && e.verbose {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}
	return resp.Text, nil
}

// SaveExtraction writes one extraction record as JSON, named after the
// transcript file.
func SaveExtraction(outDir, transcriptPath string, extraction *model.TranscriptExtraction) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create extractions dir: %w", err)
	}

	base := filepath.Base(transcriptPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"

	data, err := json.MarshalIndent(extraction, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, name), data, 0644); err != nil {
		return fmt.Errorf("write extraction: %w", err)
	}
	return nil
}

// parseExtraction decodes the LLM reply into a TranscriptExtraction.
// Replies wrapped in markdown fences or surrounded by prose are common;
// only the outermost JSON object is decoded.
func parseExtraction(text string) (*model.TranscriptExtraction, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var extraction model.TranscriptExtraction
	if err := json.Unmarshal([]byte(text[start:end+1]), &extraction); err != nil {
		return nil, err
	}
	return &extraction, nil
}
