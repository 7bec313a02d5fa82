package imageio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSmartLoaderCachesRemoteImage(t *testing.T) {
	srv, hits := imageServer(t, pngBytes(t, 12, 8))

	l := NewSmartLoader()
	l.SetCacheDir(t.TempDir())
	url := srv.URL + "/photo.png"

	for i := 0; i < 2; i++ {
		img, err := l.Load(url)
		if err != nil {
			t.Fatalf("Load #%d: %v", i+1, err)
		}
		if got := img.Bounds(); got.Dx() != 12 || got.Dy() != 8 {
			t.Fatalf("Load #%d bounds = %v, want 12x8", i+1, got)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (second load should come from cache)", got)
	}
}

func TestSmartLoaderFetchesWhenCacheUnwritable(t *testing.T) {
	srv, hits := imageServer(t, pngBytes(t, 6, 6))

	l := NewSmartLoader()
	// A file path as cache dir makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing blocker file: %v", err)
	}
	l.SetCacheDir(filepath.Join(blocker, "cache"))

	img, err := l.Load(srv.URL + "/photo.png")
	if err != nil {
		t.Fatalf("Load with unwritable cache: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 6 || got.Dy() != 6 {
		t.Errorf("bounds = %v, want 6x6", got)
	}
	if hits.Load() == 0 {
		t.Error("server was never contacted")
	}
}

func TestDownloadAndCacheReusesExisting(t *testing.T) {
	srv, hits := imageServer(t, pngBytes(t, 4, 4))
	dir := t.TempDir()
	url := srv.URL + "/a.png"

	first, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("first download: %v", err)
	}
	second, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	if first != second {
		t.Errorf("cached paths differ: %q vs %q", first, second)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}

	if _, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir, AllowOverwrite: true}); err != nil {
		t.Fatalf("overwrite download: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times after overwrite, want 2", got)
	}
}

func TestDownloadAndCacheRejectsNonURL(t *testing.T) {
	if _, err := DownloadAndCache(context.Background(), "/tmp/local.png", CacheOptions{}); err == nil {
		t.Error("expected error for non-URL input")
	}
}

func TestCacheFilename(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantExt string
	}{
		{name: "plain png", url: "https://example.com/a.png", wantExt: ".png"},
		{name: "query string stripped", url: "https://example.com/a.jpg?w=1600", wantExt: ".jpg"},
		{name: "no extension", url: "https://example.com/photo", wantExt: ".jpg"},
		{name: "long extension falls back", url: "https://example.com/a.download", wantExt: ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cacheFilename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("cacheFilename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
			}
			if again := cacheFilename(tt.url); again != got {
				t.Errorf("cacheFilename not deterministic: %q vs %q", got, again)
			}
		})
	}
}
