package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paymanai/payman-docs-mcp/pkg/config"
)

func newTestFetcher(t *testing.T, handler http.Handler) (*Fetcher, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	fetcher := NewFetcher(FetcherOpts{
		BaseURL: server.URL,
		Cache:   NewCache(time.Hour),
		Log:     zerolog.Nop(),
	})
	return fetcher, server
}

func TestFetchReturnsMarkdown(t *testing.T) {
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quickstart.md" {
			t.Errorf("path: got %q, want %q", r.URL.Path, "/quickstart.md")
		}
		w.Header().Set("Content-Type", "text/markdown")
		w.Write([]byte("# Quickstart\n\nInstall the SDK."))
	}))

	content := fetcher.Fetch(context.Background(), "/quickstart")
	if content != "# Quickstart\n\nInstall the SDK." {
		t.Fatalf("content: got %q", content)
	}
}

func TestFetchSendsDefaultUserAgent(t *testing.T) {
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != config.DefaultUserAgent {
			t.Errorf("user agent: got %q, want %q", ua, config.DefaultUserAgent)
		}
		w.Write([]byte("ok"))
	}))

	if got := fetcher.Fetch(context.Background(), "/quickstart"); got != "ok" {
		t.Fatalf("content: got %q, want %q", got, "ok")
	}
}

func TestFetchServesFromCache(t *testing.T) {
	var calls atomic.Int32
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("body"))
	}))

	first := fetcher.Fetch(context.Background(), "/api-keys")
	second := fetcher.Fetch(context.Background(), "/api-keys")
	if first != second {
		t.Fatalf("cached fetch differs: %q vs %q", first, second)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("remote calls: got %d, want 1", got)
	}
}

func TestFetchFailureReturnsPlaceholderAndSkipsCache(t *testing.T) {
	var calls atomic.Int32
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}))

	content := fetcher.Fetch(context.Background(), "/webhooks")
	if !strings.Contains(content, "/webhooks") {
		t.Fatalf("placeholder should embed the path, got %q", content)
	}
	if !strings.Contains(content, "404") {
		t.Fatalf("placeholder should embed the error, got %q", content)
	}

	fetcher.Fetch(context.Background(), "/webhooks")
	if got := calls.Load(); got != 2 {
		t.Fatalf("failed fetches must not cache; remote calls: got %d, want 2", got)
	}
}

func TestFetchNetworkErrorReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	fetcher := NewFetcher(FetcherOpts{
		BaseURL: server.URL,
		Cache:   NewCache(time.Hour),
		Log:     zerolog.Nop(),
	})

	content := fetcher.Fetch(context.Background(), "/quickstart")
	if !strings.Contains(content, "Documentation Unavailable") {
		t.Fatalf("expected placeholder, got %q", content)
	}
}

func TestFetchExtractsTextFromHTML(t *testing.T) {
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><script>var x = 1;</script></head><body><h1>Payman</h1><p>Send payments.</p></body></html>"))
	}))

	content := fetcher.Fetch(context.Background(), "/send-payment")
	if strings.Contains(content, "var x") {
		t.Fatalf("script content should be stripped, got %q", content)
	}
	if !strings.Contains(content, "Payman") || !strings.Contains(content, "Send payments.") {
		t.Fatalf("expected page text, got %q", content)
	}
}

func TestFetchTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("a", 2000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	t.Cleanup(server.Close)
	fetcher := NewFetcher(FetcherOpts{
		BaseURL:  server.URL,
		MaxChars: 100,
		Cache:    NewCache(time.Hour),
		Log:      zerolog.Nop(),
	})

	content := fetcher.Fetch(context.Background(), "/api-reference")
	if !strings.HasSuffix(content, truncationMarker) {
		t.Fatalf("expected truncation marker, got %q", content[len(content)-30:])
	}
	if len(content) != 100+len(truncationMarker) {
		t.Fatalf("length: got %d, want %d", len(content), 100+len(truncationMarker))
	}
}

func TestRefreshUpdatesCache(t *testing.T) {
	var body atomic.Value
	body.Store("v1")
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body.Load().(string)))
	}))

	if got := fetcher.Fetch(context.Background(), "/quickstart"); got != "v1" {
		t.Fatalf("got %q, want v1", got)
	}

	body.Store("v2")
	if err := fetcher.Refresh(context.Background(), "/quickstart"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := fetcher.Fetch(context.Background(), "/quickstart"); got != "v2" {
		t.Fatalf("got %q, want v2 after refresh", got)
	}
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	var fail atomic.Bool
	fetcher, _ := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Write([]byte("stable"))
	}))

	fetcher.Fetch(context.Background(), "/get-balance")
	fail.Store(true)
	if err := fetcher.Refresh(context.Background(), "/get-balance"); err == nil {
		t.Fatalf("expected refresh error")
	}
	if got := fetcher.Fetch(context.Background(), "/get-balance"); got != "stable" {
		t.Fatalf("cache should keep last good content, got %q", got)
	}
}
