package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// testCache runs the behaviour every storing backend shares.
func testCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "absent"); err != nil || hit {
		t.Fatalf("Get(absent) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "k", []byte("newer"), 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "newer" {
		t.Errorf("after overwrite Get = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want a silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, _ := NewFileCache(dir)
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache root missing after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q", c.Dir())
	}
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer c.Close()

	testCache(t, c)
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(ctx, mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived its TTL")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, addr); err == nil {
		t.Error("expected ping failure")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashLinesBoundaries(t *testing.T) {
	if HashLines([]string{"ab"}) == HashLines([]string{"a", "b"}) {
		t.Error("line boundaries should change the hash")
	}
	if HashLines([]string{"a", "b"}) != HashLines([]string{"a", "b"}) {
		t.Error("HashLines should be deterministic")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	h := HashLines([]string{"Start", "End"})

	flow := k.DiagramKey(h, DiagramKeyOpts{Mode: "flowchart"})
	mind := k.DiagramKey(h, DiagramKeyOpts{Mode: "mindmap"})
	if flow == mind {
		t.Error("mode should change the diagram key")
	}
	if !strings.HasPrefix(flow, "diagram:") {
		t.Errorf("DiagramKey = %s", flow)
	}

	svg := k.RenderKey(h, RenderKeyOpts{Format: "svg"})
	png := k.RenderKey(h, RenderKeyOpts{Format: "png"})
	if svg == png || !strings.HasPrefix(svg, "render:") {
		t.Errorf("RenderKey svg=%s png=%s", svg, png)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:")
	plain := NewDefaultKeyer()
	opts := DiagramKeyOpts{Mode: "tree"}

	if got, want := scoped.DiagramKey("h", opts), "tenant:"+plain.DiagramKey("h", opts); got != want {
		t.Errorf("DiagramKey = %s, want %s", got, want)
	}
	if got := scoped.RenderKey("h", RenderKeyOpts{}); !strings.HasPrefix(got, "tenant:render:") {
		t.Errorf("RenderKey = %s", got)
	}
}
