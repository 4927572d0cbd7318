package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/opencivics/civigraph/internal/model"
)

// Aggregator collects raw entity mentions across all per-document
// extraction records into per-class deduplicated sets, the input to
// resolution.
type Aggregator struct {
	dir     string
	verbose bool
}

// NewAggregator creates an aggregator reading extraction records from dir
func NewAggregator(dir string, verbose bool) *Aggregator {
	return &Aggregator{dir: dir, verbose: verbose}
}

// Aggregate loads every extraction record and returns the deduplicated
// raw mentions per entity class. Dedup is exact and case-sensitive; any
// normalization happens later inside the resolver. Records that fail to
// parse are skipped with a warning and aggregation continues over the
// rest.
func (a *Aggregator) Aggregate() (*model.Aggregated, error) {
	paths, err := filepath.Glob(filepath.Join(a.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list extraction records: %w", err)
	}
	sort.Strings(paths)

	if a.verbose {
		fmt.Fprintf(os.Stderr, "Loading %d extraction files...\n", len(paths))
	}

	var bills, orgs, projects []string
	for _, path := range paths {
		extraction, err := readExtraction(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}

		for _, b := range extraction.Bills {
			bills = append(bills, b.ID)
		}
		for _, o := range extraction.Organizations {
			orgs = append(orgs, o.Name)
		}
		for _, p := range extraction.Projects {
			projects = append(projects, p.Name)
		}
	}

	return &model.Aggregated{
		Bills:         dedupeSorted(bills),
		Organizations: dedupeSorted(orgs),
		Projects:      dedupeSorted(projects),
	}, nil
}

// LoadExtractions reads every extraction record in dir in sorted order.
// Unparseable records are skipped with a warning, matching Aggregate.
func LoadExtractions(dir string) ([]*model.TranscriptExtraction, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list extraction records: %w", err)
	}
	sort.Strings(paths)

	extractions := make([]*model.TranscriptExtraction, 0, len(paths))
	for _, path := range paths {
		extraction, err := readExtraction(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		extractions = append(extractions, extraction)
	}
	return extractions, nil
}

func readExtraction(path string) (*model.TranscriptExtraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var extraction model.TranscriptExtraction
	if err := json.Unmarshal(data, &extraction); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &extraction, nil
}
