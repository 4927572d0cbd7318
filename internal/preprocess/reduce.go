package preprocess

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Reducer trims a raw council transcript down to its legislative content
// before the expensive LLM passes. Bill mentions always survive; greetings
// and procedural chatter never do.
type Reducer struct {
	billPatterns  []*regexp.Regexp
	noisePatterns []*regexp.Regexp
	keywords      []string
	speakerLabel  *regexp.Regexp
	moneyPattern  *regexp.Regexp
}

// NewReducer creates a reducer with the standard transcript heuristics
func NewReducer() *Reducer {
	compile := func(patterns []string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			out[i] = regexp.MustCompile(`(?i)` + p)
		}
		return out
	}

	return &Reducer{
		billPatterns: compile([]string{
			`\b\d{2}[-\s]?[A-Z]-?\d{3,4}\b`, // e.g. 25-O-1271
			`\bbill\b`, `\bordinance\b`, `\bresolution\b`, `\bmotion\b`,
		}),
		noisePatterns: compile([]string{
			`\b(seconded?|moved?)\b`,
			`\bvote is (open|closed)\b`,
			`\b(all|everyone) (in favor|against)\b`,
			`\bthank you\b`,
			`\bgood (afternoon|morning|evening)\b`,
			`\bplease (take your seats|come forward)\b`,
			`\bany discussion\b`,
			`\b(public comment|hearing)\b`,
		}),
		keywords: []string{
			"approve", "approved", "pass", "vote", "rejected", "held", "amendment",
			"funding", "budget", "project", "development", "zoning", "property",
			"contract", "department", "finance", "council", "committee",
		},
		speakerLabel: regexp.MustCompile(`(?m)^[A-Z][A-Z\s\.\-']{2,20}:\s*`),
		moneyPattern: regexp.MustCompile(`\$[\d,]+(\.\d+)?\b|\b\d+(\.\d+)?\s*(million|billion|thousand)\b`),
	}
}

// Reduce cleans the transcript and keeps roughly keepRatio of its
// sentences, chosen by legislative relevance but emitted in original
// order, with adjacent survivors grouped into paragraphs.
func (r *Reducer) Reduce(text string, keepRatio float64) string {
	sentences := r.clean(text)
	if len(sentences) == 0 {
		return ""
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{index: i, score: r.scoreSentence(s)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := int(math.Ceil(float64(len(sentences)) * keepRatio))
	if keep < 1 {
		keep = 1
	}
	if keep > len(ranked) {
		keep = len(ranked)
	}

	// Back to document order
	kept := make([]int, keep)
	for i := 0; i < keep; i++ {
		kept[i] = ranked[i].index
	}
	sort.Ints(kept)

	// Group sentences that were close together in the source into one
	// paragraph, so the summary model sees local context.
	var paragraphs []string
	var buffer []string
	lastIdx := -1
	for _, idx := range kept {
		if lastIdx >= 0 && idx-lastIdx > 2 {
			paragraphs = append(paragraphs, strings.Join(buffer, " "))
			buffer = buffer[:0]
		}
		buffer = append(buffer, sentences[idx])
		lastIdx = idx
	}
	if len(buffer) > 0 {
		paragraphs = append(paragraphs, strings.Join(buffer, " "))
	}

	return strings.Join(paragraphs, "\n\n")
}

// clean strips speaker labels and procedural noise, returning the
// surviving sentences.
func (r *Reducer) clean(text string) []string {
	text = r.speakerLabel.ReplaceAllString(text, "")

	var cleaned []string
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if len(strings.Fields(sentence)) < 3 {
			continue
		}
		if r.isNoise(sentence) {
			continue
		}
		cleaned = append(cleaned, sentence)
	}
	return cleaned
}

func (r *Reducer) isNoise(sentence string) bool {
	for _, p := range r.noisePatterns {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

// scoreSentence scores a sentence 0-100. Bill-related sentences get 100
// outright; everything else accumulates keyword and entity signals capped
// at 99 so bills always rank first.
func (r *Reducer) scoreSentence(sentence string) float64 {
	for _, p := range r.billPatterns {
		if p.MatchString(sentence) {
			return 100
		}
	}

	var score float64
	lower := strings.ToLower(sentence)
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			score += 5
		}
	}
	if r.moneyPattern.MatchString(sentence) {
		score += 10
	}

	if score > 99 {
		score = 99
	}
	return score
}

// splitSentences splits text into sentences on terminator-plus-space
// boundaries (simple heuristic).
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
