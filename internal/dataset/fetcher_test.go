package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/grantab/internal/model"
)

func testFetchConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.RespectRobots = false
	cfg.Cache.Enabled = false
	cfg.RateLimiting.RequestsPerSecond = 1000
	cfg.RateLimiting.BurstSize = 100
	return cfg
}

func TestDownload_WritesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = fmt.Fprint(w, "a,b\n1,2\n")
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "data.csv")
	fetcher := NewFetcher(testFetchConfig(t))

	result, err := fetcher.Download(context.Background(), server.URL+"/data.csv", dest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.FromCache {
		t.Error("First download should not come from cache")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("Unexpected payload: %q", data)
	}
}

func TestDownload_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	dest := filepath.Join(t.TempDir(), "data.csv")
	fetcher := NewFetcher(testFetchConfig(t))

	if _, err := fetcher.Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestDownload_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "data.csv")
	fetcher := NewFetcher(testFetchConfig(t))

	if _, err := fetcher.Download(context.Background(), server.URL, dest); err == nil {
		t.Fatal("Expected error for 404")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected a single attempt for 404, got %d", attempts.Load())
	}
}

func TestDownload_SecondFetchFromCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "payload")
	}))
	defer server.Close()

	cfg := testFetchConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	fetcher := NewFetcher(cfg)
	dir := t.TempDir()

	first, err := fetcher.Download(context.Background(), server.URL, filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatalf("first download: %v", err)
	}
	if first.FromCache {
		t.Error("First download should hit the server")
	}

	second, err := fetcher.Download(context.Background(), server.URL, filepath.Join(dir, "b.csv"))
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	if !second.FromCache {
		t.Error("Second download should come from cache")
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 server hit, got %d", hits.Load())
	}
}

func TestDownload_RobotsDisallowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "data")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testFetchConfig(t)
	cfg.HTTP.RespectRobots = true

	fetcher := NewFetcher(cfg)
	dest := filepath.Join(t.TempDir(), "data.csv")

	if _, err := fetcher.Download(context.Background(), server.URL+"/private/data.csv", dest); err == nil {
		t.Error("Expected robots.txt to block the download")
	}
	if _, err := fetcher.Download(context.Background(), server.URL+"/public/data.csv", dest); err != nil {
		t.Errorf("Expected allowed path to download, got %v", err)
	}
}

func TestDownload_MaxBytesTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "0123456789")
	}))
	defer server.Close()

	cfg := testFetchConfig(t)
	cfg.HTTP.MaxBodyBytes = 4

	fetcher := NewFetcher(cfg)
	dest := filepath.Join(t.TempDir(), "data.csv")

	result, err := fetcher.Download(context.Background(), server.URL, dest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Bytes != 4 {
		t.Errorf("Expected 4 bytes, got %d", result.Bytes)
	}
}
