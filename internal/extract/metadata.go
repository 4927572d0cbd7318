package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencivics/civigraph/internal/model"
)

// MetadataIndex maps transcript files to meeting info from the metadata
// CSV exported alongside the transcripts.
type MetadataIndex struct {
	rows []metadataRow
}

type metadataRow struct {
	uri   string
	date  string
	title string
	url   string
}

// LoadMetadata parses the meeting metadata CSV. The expected columns are
// s3_uri, runlink_date, runlink_title, runlink_url; missing columns yield
// empty fields rather than errors. A missing file yields an empty index.
func LoadMetadata(path string) (*MetadataIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MetadataIndex{}, nil
		}
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if len(records) == 0 {
		return &MetadataIndex{}, nil
	}

	col := make(map[string]int)
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	index := &MetadataIndex{}
	for _, row := range records[1:] {
		index.rows = append(index.rows, metadataRow{
			uri:   field(row, "s3_uri"),
			date:  field(row, "runlink_date"),
			title: field(row, "runlink_title"),
			url:   field(row, "runlink_url"),
		})
	}
	return index, nil
}

// Lookup finds the meeting metadata for a transcript file by matching the
// file name against the recorded URIs.
func (m *MetadataIndex) Lookup(transcriptPath string) model.MeetingMeta {
	name := filepath.Base(transcriptPath)
	for _, row := range m.rows {
		if row.uri != "" && strings.Contains(row.uri, name) {
			return model.MeetingMeta{
				Date:  row.date,
				Title: row.title,
				URL:   row.url,
			}
		}
	}
	return model.MeetingMeta{}
}
