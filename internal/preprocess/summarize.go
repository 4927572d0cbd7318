package preprocess

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/llm"
)

const summarySystemPrompt = "You are a legislative summarization assistant for municipal council transcripts."

// Preprocessor reduces a transcript heuristically, then compresses the
// survivor text into a focused summary with a cheaper LLM pass. The LLM
// pass is best-effort: on any provider error the reduced text is used
// directly, and preprocessing never fails the pipeline.
type Preprocessor struct {
	reducer      *Reducer
	provider     llm.Provider // nil disables the summary pass
	model        string
	targetTokens int
	keepRatio    float64
	cache        cache.Cache // nil disables caching
	verbose      bool
}

// NewPreprocessor creates a preprocessor. provider and responseCache may
// be nil.
func NewPreprocessor(provider llm.Provider, model string, targetTokens int, responseCache cache.Cache, verbose bool) *Preprocessor {
	if targetTokens <= 0 {
		targetTokens = 2000
	}
	return &Preprocessor{
		reducer:      NewReducer(),
		provider:     provider,
		model:        model,
		targetTokens: targetTokens,
		keepRatio:    0.10,
		cache:        responseCache,
		verbose:      verbose,
	}
}

// Summary returns the preprocessed form of a transcript
func (p *Preprocessor) Summary(ctx context.Context, transcript string) string {
	reduced := p.reducer.Reduce(transcript, p.keepRatio)
	if reduced == "" || p.provider == nil {
		return reduced
	}

	// Cap what goes into the summary model; roughly 4 chars per token
	// with headroom for the intermediate reduction.
	maxChars := p.targetTokens * 4 * 15
	if len(reduced) > maxChars {
		reduced = reduced[:maxChars]
	}

	prompt := p.buildPrompt(reduced)

	if p.cache != nil {
		key := cache.CompletionKey(p.model, summarySystemPrompt, prompt)
		if cached, found := p.cache.Get(key); found {
			return string(cached)
		}
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		System:    summarySystemPrompt,
		Prompt:    prompt,
		Model:     p.model,
		MaxTokens: p.targetTokens,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: summary pass failed, using reduced transcript: %v\n", err)
		return reduced
	}

	if p.cache != nil {
		key := cache.CompletionKey(p.model, summarySystemPrompt, prompt)
		if err := p.cache.Set(key, []byte(resp.Text), 7*24*time.Hour); err != nil && p.verbose {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}

	if p.verbose {
		fmt.Fprintf(os.Stderr, "Summarized %d -> %d chars (%d tokens)\n", len(reduced), len(resp.Text), resp.TokensUsed)
	}
	return resp.Text
}

func (p *Preprocessor) buildPrompt(reduced string) string {
	return fmt.Sprintf(`TASK:
Create a detailed summary of no more than %d tokens of the city-council transcript below. Another model will extract structured entities from this summary.

KEY FOCUS AREAS:
- Bills / Ordinances / Resolutions and their identifiers
- Outcomes (approved, rejected, tabled)
- Key participants and departments
- Any projects or funding actions

REQUIREMENTS:
- Preserve every bill ID and its decision.
- Keep chronology and structure clear.
- Exclude small talk, procedural chatter, and greetings.
- Use concise factual language, no speculation.
- Output plain text paragraphs.

TRANSCRIPT:
%s`, p.targetTokens, reduced)
}
