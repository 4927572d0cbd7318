package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencivics/civigraph/internal/extract"
	"github.com/opencivics/civigraph/internal/llm"
	"github.com/opencivics/civigraph/internal/model"
)

type stubProvider struct {
	reply string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Text: s.reply, Model: "stub"}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Paths.DataDir = filepath.Join(dir, "transcripts")
	cfg.Paths.OutputDir = filepath.Join(dir, "output")
	cfg.Paths.ExtractionsDir = filepath.Join(dir, "output", "extractions")
	cfg.Paths.ResolutionFile = filepath.Join(dir, "output", "resolved_entities.json")
	cfg.Paths.GraphJSON = filepath.Join(dir, "output", "knowledge_graph.json")
	cfg.Paths.GraphML = filepath.Join(dir, "output", "knowledge_graph.graphml")
	cfg.Paths.GraphDOT = filepath.Join(dir, "output", "knowledge_graph.dot")
	cfg.Cache.Enabled = false
	return cfg
}

func writeExtraction(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const extractionA = `{
  "bills": [{"id": "25-O-1271", "title": "An ordinance", "prediction": "APPROVED", "confidence": "HIGH"}],
  "people": [{"name": "Jane Smith", "role": "Council Member", "organization": "Department of Finance"}],
  "organizations": [{"name": "Department of Finance", "type": "department"}],
  "projects": [],
  "votes": [{"bill_id": "25-O-1271", "person": "Jane Smith", "vote": "yes"}]
}`

const extractionB = `{
  "bills": [{"id": "Ordinance 25-o-1271", "title": "An ordinance", "prediction": "APPROVED", "confidence": "HIGH"}],
  "people": [],
  "organizations": [{"name": "Finance", "type": "department"}],
  "projects": [],
  "votes": []
}`

func TestResolveStage(t *testing.T) {
	cfg := testConfig(t)
	writeExtraction(t, cfg.Paths.ExtractionsDir, "a.json", extractionA)
	writeExtraction(t, cfg.Paths.ExtractionsDir, "b.json", extractionB)

	p := &Pipeline{config: cfg}
	resolution, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Both raw bill forms collapse onto the normalized ID.
	if resolution.Bills["25-O-1271"] != "25-O-1271" {
		t.Errorf("bills map: %+v", resolution.Bills)
	}
	if resolution.Bills["Ordinance 25-o-1271"] != "25-O-1271" {
		t.Errorf("raw form not resolved: %+v", resolution.Bills)
	}

	// "Finance" merges into "Department of Finance" by containment.
	if resolution.Organizations["Finance"] != "Department of Finance" {
		t.Errorf("organizations map: %+v", resolution.Organizations)
	}

	if _, err := os.Stat(cfg.Paths.ResolutionFile); err != nil {
		t.Errorf("resolution file not written: %v", err)
	}
}

func TestBuildGraphStage(t *testing.T) {
	cfg := testConfig(t)
	writeExtraction(t, cfg.Paths.ExtractionsDir, "a.json", extractionA)
	writeExtraction(t, cfg.Paths.ExtractionsDir, "b.json", extractionB)

	p := &Pipeline{config: cfg}
	resolution, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	stats, err := p.BuildGraph(resolution)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}

	// One person, one merged org, one merged bill.
	if stats.NodesByType["Person"] != 1 || stats.NodesByType["Organization"] != 1 || stats.NodesByType["Bill"] != 1 {
		t.Errorf("unexpected node counts: %+v", stats.NodesByType)
	}
	if stats.EdgesByType["VOTED_ON"] != 1 {
		t.Errorf("unexpected edge counts: %+v", stats.EdgesByType)
	}

	for _, path := range []string{cfg.Paths.GraphJSON, cfg.Paths.GraphML, cfg.Paths.GraphDOT} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export missing: %v", err)
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		t.Fatal(err)
	}
	transcript := `[{"text": "Ordinance 25-O-1271 moved by Council Member Smith."}]`
	if err := os.WriteFile(filepath.Join(cfg.Paths.DataDir, "meeting.json"), []byte(transcript), 0644); err != nil {
		t.Fatal(err)
	}

	provider := &stubProvider{reply: extractionA}
	p := &Pipeline{
		config:    cfg,
		extractor: extract.NewExtractor(provider, nil, "stub-model", 4000, nil, false),
		metadata:  &extract.MetadataIndex{},
	}

	result, err := p.Run(context.Background(), cfg.Paths.DataDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Transcripts != 1 || result.Extracted != 1 || result.Failed != 0 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if result.GraphStats.Nodes == 0 {
		t.Error("graph is empty")
	}
	if _, err := os.Stat(cfg.Paths.ResolutionFile); err != nil {
		t.Errorf("resolution file not written: %v", err)
	}
}

func TestRunNoTranscripts(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		t.Fatal(err)
	}

	p := &Pipeline{
		config:    cfg,
		extractor: extract.NewExtractor(&stubProvider{reply: "{}"}, nil, "stub-model", 4000, nil, false),
		metadata:  &extract.MetadataIndex{},
	}

	if _, err := p.Run(context.Background(), cfg.Paths.DataDir); err == nil {
		t.Error("expected error when no transcripts produce extractions")
	}
}

func TestNewPipelineUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "carrier-pigeon"

	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}
