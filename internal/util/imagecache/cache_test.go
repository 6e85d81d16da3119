package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{url: "https://cdn.example.com/shirt.png", wantExt: ".png"},
		{url: "https://cdn.example.com/shirt.JPEG?w=800", wantExt: ".jpeg"},
		{url: "https://cdn.example.com/photo#top", wantExt: ".jpg"},
		{url: "https://cdn.example.com/p.averylongext", wantExt: ".jpg"},
	}
	for _, tt := range tests {
		got := Filename(tt.url)
		if !strings.HasSuffix(got, tt.wantExt) {
			t.Errorf("Filename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
		}
		if len(got) != 32+len(tt.wantExt) {
			t.Errorf("Filename(%q) = %q, want 32 hex chars before the extension", tt.url, got)
		}
	}

	if Filename("https://a.example/x.png") == Filename("https://b.example/x.png") {
		t.Error("Filename() collides for different hosts")
	}
}

func TestDownloadAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/shirt.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	opts := CacheOptions{CacheDir: dir}

	path, err := DownloadAndCache(context.Background(), srv.URL+"/shirt.png", opts)
	if err != nil {
		t.Fatalf("DownloadAndCache() error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cached path = %s, want inside %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("cached data = %q, want png-bytes", data)
	}

	again, err := DownloadAndCache(context.Background(), srv.URL+"/shirt.png", opts)
	if err != nil {
		t.Fatalf("DownloadAndCache() second call error: %v", err)
	}
	if again != path {
		t.Errorf("second path = %s, want %s", again, path)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	opts.AllowOverwrite = true
	if _, err := DownloadAndCache(context.Background(), srv.URL+"/shirt.png", opts); err != nil {
		t.Fatalf("DownloadAndCache() overwrite error: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits after overwrite = %d, want 2", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("cache dir holds %d entries, want 1", len(entries))
	}
}

func TestDownloadAndCacheErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	if _, err := DownloadAndCache(context.Background(), "ftp://example.com/a.png", CacheOptions{CacheDir: dir}); err == nil {
		t.Error("DownloadAndCache(ftp) expected error")
	}
	if _, err := DownloadAndCache(context.Background(), srv.URL+"/missing.png", CacheOptions{CacheDir: dir}); err == nil {
		t.Error("DownloadAndCache(404) expected error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed download left %d entries in cache", len(entries))
	}
}
