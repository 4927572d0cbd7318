package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencivics/civigraph/internal/model"
)

// ErrNotFound is returned by LoadResolution when no resolution has been
// saved yet. Fatal to consumers that require resolved names (graph
// assembly); the resolver itself never loads its own output.
var ErrNotFound = errors.New("resolution file not found")

// SaveResolution persists the three per-class alias maps as a single JSON
// document. A failed save can simply be retried by re-running resolution,
// which is idempotent over the same aggregated input.
func SaveResolution(path string, res *model.Resolution) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resolution: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write resolution: %w", err)
	}
	return nil
}

// LoadResolution reads a previously saved resolution document
func LoadResolution(path string) (*model.Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read resolution: %w", err)
	}

	var res model.Resolution
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse resolution: %w", err)
	}
	return &res, nil
}
