package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/model"
	"github.com/opencivics/civigraph/internal/util"
	"github.com/opencivics/civigraph/internal/worker"
)

// Fetcher downloads remote meeting documents (transcripts, minutes,
// agenda pages) listed in the meeting metadata. HTML responses are reduced
// to visible text; everything else is returned as-is.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// Document is a fetched meeting document
type Document struct {
	Text        string // Visible text for HTML, raw body otherwise
	FinalURL    string
	StatusCode  int
	ContentType string
}

// NewFetcher creates a fetcher from the HTTP configuration. When
// RespectRobots is set, disallowed URLs fail with an error rather than
// being fetched.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, 2),
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// SetCache enables caching of fetched documents. Cached hits skip the
// network entirely, including the robots check.
func (f *Fetcher) SetCache(c cache.Cache, ttl time.Duration) {
	f.cache = c
	f.cacheTTL = ttl
}

// Fetch retrieves one document, honoring robots.txt and per-host pacing
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	if f.cache != nil {
		if data, found := f.cache.Get(documentKey(rawURL)); found {
			var doc Document
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	crawlDelay, err := f.checkRobots(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	text := string(body)
	if strings.Contains(contentType, "text/html") {
		text = VisibleText(text)
	}

	doc := &Document{
		Text:        text,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}

	if f.cache != nil {
		if data, err := json.Marshal(doc); err == nil {
			_ = f.cache.Set(documentKey(rawURL), data, f.cacheTTL)
		}
	}
	return doc, nil
}

// documentKey is the cache key for a fetched document
func documentKey(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return "civigraph:doc:" + hex.EncodeToString(hash[:])
}

func (f *Fetcher) checkRobots(ctx context.Context, rawURL string) (time.Duration, error) {
	if f.robots == nil {
		return 0, nil
	}
	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return 0, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return 0, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	return crawlDelay, nil
}
