package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCachePathUsesConfig(t *testing.T) {
	h := newHarness(t)
	if got := strings.TrimSpace(h.mustRun("cache", "path")); got != filepath.Join(h.dir, "cache") {
		t.Errorf("cache path = %q", got)
	}
}

func TestCacheClear(t *testing.T) {
	h := newHarness(t)
	in := h.writeLines("flow.json", flowLines)
	h.mustRun("render", in, "-f", "mermaid", "-o", filepath.Join(h.dir, "flow"))

	cacheRoot := filepath.Join(h.dir, "cache")
	if n := countEntries(cacheRoot); n != 2 {
		t.Fatalf("entries after render = %d, want 2 (diagram + export)", n)
	}

	h.mustRun("cache", "clear")
	if n := countEntries(cacheRoot); n != 0 {
		t.Errorf("entries after clear = %d", n)
	}
	if _, err := os.Stat(cacheRoot); err != nil {
		t.Errorf("cache root should remain: %v", err)
	}
}
