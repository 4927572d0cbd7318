package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// transcriptSegment is one utterance in a segmented transcript file
type transcriptSegment struct {
	Text string `json:"text"`
}

// LoadTranscript reads a transcript file. Segmented JSON ([{"text": ...}])
// is joined into one body; anything else is treated as plain text.
func LoadTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	var segments []transcriptSegment
	if err := json.Unmarshal(data, &segments); err == nil {
		parts := make([]string, 0, len(segments))
		for _, s := range segments {
			if s.Text != "" {
				parts = append(parts, s.Text)
			}
		}
		return strings.Join(parts, " "), nil
	}

	return string(data), nil
}

// ListTranscripts returns the transcript JSON files under dir in sorted
// order, skipping metadata files.
func ListTranscripts(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".json") || strings.Contains(name, "metadata") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
