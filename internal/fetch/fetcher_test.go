package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/model"
)

func testHTTPConfig(ua string) model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:           5 * time.Second,
		UserAgent:         ua,
		MaxBodyBytes:      1_000_000,
		RequestsPerSecond: 100,
		RespectRobots:     false,
	}
}

func TestFetcher_HTMLReducedToText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "civigraph-test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><script>var x=1;</script></head>
			<body><p>Ordinance 25-O-1271 was approved.</p></body></html>`))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig("civigraph-test"))

	doc, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(doc.Text, "Ordinance 25-O-1271 was approved.") {
		t.Errorf("expected body text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "var x=1") {
		t.Error("script content must not survive text extraction")
	}
}

func TestFetcher_JSONPassedThrough(t *testing.T) {
	payload := `[{"text": "The meeting will come to order."}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig("civigraph-test"))

	doc, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Text != payload {
		t.Errorf("expected raw JSON body, got %q", doc.Text)
	}
}

func TestFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig("civigraph-test"))

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetcher_RobotsDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/private/minutes", func(w http.ResponseWriter, r *http.Request) {
		t.Error("disallowed path must not be fetched")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testHTTPConfig("civigraph-test")
	cfg.RespectRobots = true
	f := NewFetcher(cfg)

	if _, err := f.Fetch(context.Background(), server.URL+"/private/minutes"); err == nil {
		t.Fatal("expected robots.txt disallow error")
	}
}

func TestVisibleText_MalformedFallsBack(t *testing.T) {
	// html.Parse is extremely tolerant; this just pins the no-panic and
	// non-empty behavior for junk input.
	got := VisibleText("<p>unclosed paragraph")
	if !strings.Contains(got, "unclosed paragraph") {
		t.Errorf("expected text preserved, got %q", got)
	}
}

func TestFetcher_CacheHitSkipsNetwork(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("meeting minutes"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig("civigraph-test"))
	f.SetCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		doc, err := f.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if doc.Text != "meeting minutes" {
			t.Errorf("Fetch %d text = %q", i, doc.Text)
		}
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}
