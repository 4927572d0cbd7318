package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencivics/civigraph/internal/cache"
	"github.com/opencivics/civigraph/internal/fetch"
	"github.com/spf13/cobra"
)

var (
	fetchOut       string
	fetchTimeout   time.Duration
	fetchUserAgent string
	fetchMaxBytes  int64
	fetchNoRobots  bool
	fetchRPS       float64
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <url-or-file>",
	Short: "Download meeting documents from a city archive",
	Long: `Fetch downloads remote meeting documents (minutes, agendas, published
transcripts) and saves their visible text for extraction.

The argument is either a single URL or a file containing one URL per
line (lines starting with # are skipped). Fetches honor robots.txt and
are rate-limited per host.

Example:
  civigraph fetch https://cityarchive.example.gov/minutes/2025-06-02
  civigraph fetch urls.txt --out data/transcripts`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOut, "out", "data/transcripts", "directory for fetched documents")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "per-request timeout")
	fetchCmd.Flags().StringVar(&fetchUserAgent, "ua", "", "HTTP User-Agent (default from config)")
	fetchCmd.Flags().Int64Var(&fetchMaxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	fetchCmd.Flags().BoolVar(&fetchNoRobots, "no-robots", false, "ignore robots.txt (use only on your own infrastructure)")
	fetchCmd.Flags().Float64Var(&fetchRPS, "rps", 1, "max requests per second per host")
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls, err := resolveFetchArg(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to fetch")
	}

	cfg := loadConfig()
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.MaxBodyBytes = fetchMaxBytes
	cfg.HTTP.RequestsPerSecond = fetchRPS
	cfg.HTTP.RespectRobots = !fetchNoRobots
	if fetchUserAgent != "" {
		cfg.HTTP.UserAgent = fetchUserAgent
	}

	if err := os.MkdirAll(fetchOut, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fetcher := fetch.NewFetcher(cfg.HTTP)
	if cfg.Cache.Enabled {
		fetcher.SetCache(cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL), cfg.Cache.DiskTTL)
	}
	ctx := context.Background()

	fetched, failed := 0, 0
	for _, rawURL := range urls {
		doc, err := fetcher.Fetch(ctx, rawURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: fetch %s: %v\n", rawURL, err)
			failed++
			continue
		}

		path := filepath.Join(fetchOut, documentFilename(doc.FinalURL))
		if err := os.WriteFile(path, []byte(doc.Text), 0644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetched %s -> %s (%d bytes)\n", rawURL, path, len(doc.Text))
		}
		fetched++
	}

	fmt.Printf("Fetched %d/%d documents into %s\n", fetched, len(urls), fetchOut)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d fetches failed\n", failed)
	}
	return nil
}

// resolveFetchArg treats the argument as a URL list file when it exists
// on disk, otherwise as a single URL.
func resolveFetchArg(arg string) ([]string, error) {
	if _, err := os.Stat(arg); err != nil {
		return []string{arg}, nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("open URL file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan URL file: %w", err)
	}
	return urls, nil
}

// documentFilename derives a filesystem-safe name from a document URL
func documentFilename(rawURL string) string {
	name := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		name = parsed.Host + parsed.Path
	}
	name = strings.Trim(name, "/")
	if name == "" {
		name = "document"
	}
	replacer := strings.NewReplacer("/", "_", ":", "_", "?", "_", "&", "_", "=", "_", " ", "_")
	return replacer.Replace(name) + ".txt"
}
