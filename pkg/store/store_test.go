package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stepgraph/pkg/errors"
)

// runStoreTests exercises the behaviour every backend shares.
func runStoreTests(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("missing is no data", func(t *testing.T) {
		_, err := st.Get(ctx, "00000000-0000-4000-8000-000000000000")
		if !errors.Is(err, errors.ErrCodeNoData) {
			t.Errorf("Get(missing) = %v, want NO_DATA", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		snap := New([]string{"Start", "  Step", "End"}, "plan.pdf")
		if err := st.Set(ctx, snap); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := st.Get(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !reflect.DeepEqual(got.Lines, snap.Lines) || got.Source != snap.Source {
			t.Errorf("Get = %+v, want %+v", got, snap)
		}
		if !got.CreatedAt.Equal(snap.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, snap.CreatedAt)
		}
	})

	t.Run("rejects unusable snapshots", func(t *testing.T) {
		empty := New(nil, "")
		if err := st.Set(ctx, empty); !errors.Is(err, errors.ErrCodeNoData) {
			t.Errorf("Set(empty) = %v, want NO_DATA", err)
		}
		blank := New([]string{"ok", "  "}, "")
		if err := st.Set(ctx, blank); !errors.Is(err, errors.ErrCodeInvalidData) {
			t.Errorf("Set(blank line) = %v, want INVALID_DATA", err)
		}
	})

	t.Run("list newest first and clear", func(t *testing.T) {
		if err := st.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		old := New([]string{"Old"}, "")
		old.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		fresh := New([]string{"Fresh"}, "")
		for _, s := range []*Snapshot{old, fresh} {
			if err := st.Set(ctx, s); err != nil {
				t.Fatal(err)
			}
		}

		all, err := st.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 2 || all[0].ID != fresh.ID || all[1].ID != old.ID {
			t.Errorf("List order wrong: %v", all)
		}

		latest, err := Latest(ctx, st)
		if err != nil || latest.ID != fresh.ID {
			t.Errorf("Latest = %v, %v", latest, err)
		}

		if err := st.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		if _, err := Latest(ctx, st); !errors.Is(err, errors.ErrCodeNoData) {
			t.Errorf("Latest after Clear = %v, want NO_DATA", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		snap := New([]string{"Gone soon"}, "")
		_ = st.Set(ctx, snap)
		if err := st.Delete(ctx, snap.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := st.Get(ctx, snap.ID); !errors.Is(err, errors.ErrCodeNoData) {
			t.Errorf("Get after Delete = %v", err)
		}
		if err := st.Delete(ctx, snap.ID); err != nil {
			t.Errorf("second Delete = %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestMemoryStoreUndecodable(t *testing.T) {
	st := NewMemoryStore()
	tests := []struct {
		name string
		raw  string
		code errors.Code
	}{
		{"garbage", "{oops", errors.ErrCodeInvalidData},
		{"wrong type", `{"id":"x","lines":"Start"}`, errors.ErrCodeInvalidData},
		{"empty lines", `{"id":"x","lines":[]}`, errors.ErrCodeNoData},
		{"empty value", ``, errors.ErrCodeNoData},
	}
	for _, tt := range tests {
		st.SetRaw("x", []byte(tt.raw))
		if _, err := st.Get(context.Background(), "x"); !errors.Is(err, tt.code) {
			t.Errorf("%s: Get = %v, want %s", tt.name, err, tt.code)
		}
	}
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runStoreTests(t, st)
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	st, _ := NewFileStore(t.TempDir())
	for _, id := range []string{"../etc/passwd", "a/b", ""} {
		if _, err := st.Get(context.Background(), id); !errors.Is(err, errors.ErrCodeInvalidID) {
			t.Errorf("Get(%q) = %v, want INVALID_ID", id, err)
		}
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	st, _ := NewFileStore(dir)
	id := "0b7f0f6e-8e8a-4b1e-9c7a-2f1d3c4b5a69"
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(context.Background(), id); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("Get(corrupt) = %v, want INVALID_DATA", err)
	}
	all, err := st.List(context.Background())
	if err != nil || len(all) != 0 {
		t.Errorf("List with corrupt file = %v, %v", all, err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	st := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	defer st.Close()
	runStoreTests(t, st)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	st, err := NewRedisStore(ctx, mr.Addr(), time.Minute)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer st.Close()

	snap := New([]string{"Short lived"}, "")
	if err := st.Set(ctx, snap); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := st.Get(ctx, snap.ID); !errors.Is(err, errors.ErrCodeNoData) {
		t.Errorf("Get after expiry = %v, want NO_DATA", err)
	}
	all, err := st.List(ctx)
	if err != nil || len(all) != 0 {
		t.Errorf("List after expiry = %v, %v", all, err)
	}
	if n, _ := st.client.ZCard(ctx, redisIndex).Result(); n != 0 {
		t.Errorf("stale index entries = %d", n)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("STEPGRAPH_MONGO_URI")
	if uri == "" {
		t.Skip("STEPGRAPH_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := NewMongoStore(ctx, uri, "stepgraph_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer st.Close()
	runStoreTests(t, st)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := st.(*MemoryStore); !ok {
		t.Errorf("default backend = %T", st)
	}

	st, err = Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := st.(*FileStore); !ok {
		t.Errorf("file backend = %T", st)
	}

	if _, err := Open(ctx, Config{Backend: "sqlite"}); !errors.Is(err, errors.ErrCodeInvalidBackend) {
		t.Errorf("Open(sqlite) = %v, want INVALID_BACKEND", err)
	}
	if _, err := Open(ctx, Config{Backend: BackendMongo}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Open(mongo without uri) = %v", err)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := Resolve(ctx, st, ""); !errors.Is(err, errors.ErrCodeNoData) {
		t.Errorf("Resolve(empty store) = %v", err)
	}
	snap := New([]string{"Only"}, "")
	_ = st.Set(ctx, snap)

	got, err := Resolve(ctx, st, "")
	if err != nil || got.ID != snap.ID {
		t.Errorf("Resolve(\"\") = %v, %v", got, err)
	}
	if _, err := Resolve(ctx, st, "NOT-A-UUID"); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("Resolve(bad id) = %v", err)
	}
}
