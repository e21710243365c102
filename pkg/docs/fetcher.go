package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/paymanai/payman-docs-mcp/pkg/config"
)

const truncationMarker = "...[truncated]"

// Fetcher resolves document bodies for registry paths. It consults the
// cache first, fetches `<base-url><path>.md` on a miss, and degrades to
// placeholder text on any remote failure. Failures are never cached, so
// the next call retries.
type Fetcher struct {
	baseURL   string
	userAgent string
	maxChars  int
	client    *http.Client
	cache     *Cache
	log       zerolog.Logger
}

// FetcherOpts configures a Fetcher. Zero fields fall back to defaults.
type FetcherOpts struct {
	BaseURL   string
	UserAgent string
	MaxChars  int
	Timeout   time.Duration
	Cache     *Cache
	Log       zerolog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts FetcherOpts) *Fetcher {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = config.DefaultMaxChars
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSecs * time.Second
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewCache(0)
	}
	return &Fetcher{
		baseURL:   baseURL,
		userAgent: userAgent,
		maxChars:  maxChars,
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
		log:       opts.Log,
	}
}

// BaseURL returns the configured documentation host.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// Fetch returns the document body for path. It never fails outward: remote
// errors come back as placeholder text embedding the path and error.
func (f *Fetcher) Fetch(ctx context.Context, path string) string {
	if content, ok := f.cache.Get(path); ok {
		return content
	}
	content, err := f.fetchRemote(ctx, path)
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("Documentation fetch failed")
		return f.placeholder(path, err)
	}
	f.cache.Put(path, content, time.Now())
	return content
}

// Refresh fetches path from the remote unconditionally, updating the cache
// on success.
func (f *Fetcher) Refresh(ctx context.Context, path string) error {
	content, err := f.fetchRemote(ctx, path)
	if err != nil {
		return err
	}
	f.cache.Put(path, content, time.Now())
	return nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, path string) (string, error) {
	url := f.baseURL + path + ".md"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/markdown,text/plain;q=0.9,text/html;q=0.8,*/*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.maxChars)*2))
	if err != nil {
		return "", err
	}

	text := string(body)
	contentType := normalizeContentType(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "text/html") {
		// The docs host answers HTML for redirected or missing pages; keep
		// the readable text instead of caching markup.
		if extracted, err := extractTextFromHTML(text); err == nil {
			text = extracted
		}
	}
	if len(text) > f.maxChars {
		text = text[:f.maxChars] + truncationMarker
	}

	f.log.Debug().
		Str("path", path).
		Str("content_type", contentType).
		Int("chars", len(text)).
		Int64("took_ms", time.Since(start).Milliseconds()).
		Msg("Fetched documentation page")
	return text, nil
}

func (f *Fetcher) placeholder(path string, err error) string {
	return fmt.Sprintf(
		"# Documentation Unavailable\n\nCould not load %s: %v.\n\nVisit %s for the hosted documentation.",
		path, err, f.baseURL,
	)
}

func normalizeContentType(value string) string {
	if value == "" {
		return "application/octet-stream"
	}
	parts := strings.Split(value, ";")
	return strings.TrimSpace(parts[0])
}

var blankLineRun = regexp.MustCompile(`\n{3,}`)

// extractTextFromHTML strips markup and returns the page text with line
// structure roughly preserved.
func extractTextFromHTML(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Selection.Text()
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
