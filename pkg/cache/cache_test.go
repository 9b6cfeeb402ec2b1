package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "layout:abc"); err != nil || hit {
		t.Fatalf("empty cache Get = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "layout:abc", []byte(`{"tokens":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != `{"tokens":[]}` {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("expired entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without TTL should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
}

func TestFileCachePath(t *testing.T) {
	c := &FileCache{dir: "root"}
	tests := []struct {
		key  string
		kind string
	}{
		{"layout:abc", "layout"},
		{"api:artifact:abc", "api"},
		{"layoutid:123", "layoutid"},
		{"plain", "misc"},
		{"../x:y", "misc"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rel, err := filepath.Rel("root", c.path(tt.key))
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Split(rel, string(filepath.Separator))[0]; got != tt.kind {
				t.Errorf("kind dir = %s, want %s", got, tt.kind)
			}
		})
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s still cached after Clear", k)
		}
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
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

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := LayoutKeyOpts{Strategy: "spiral", Measurer: "heuristic", Width: 800, Height: 600}
	if k.LayoutKey("h", base) != k.LayoutKey("h", base) {
		t.Error("LayoutKey should be deterministic")
	}

	variants := map[string]LayoutKeyOpts{
		"strategy": {Strategy: "scatter", Measurer: "heuristic", Width: 800, Height: 600},
		"width":    {Strategy: "spiral", Measurer: "heuristic", Width: 801, Height: 600},
		"measurer": {Strategy: "spiral", Measurer: "opentype", Width: 800, Height: 600},
		"seed":     {Strategy: "spiral", Measurer: "heuristic", Width: 800, Height: 600, Shuffle: true, Seed: 7},
		"tuning":   {Strategy: "spiral", Measurer: "heuristic", Width: 800, Height: 600, Tuning: "x"},
	}
	for name, opts := range variants {
		t.Run(name, func(t *testing.T) {
			if k.LayoutKey("h", opts) == k.LayoutKey("h", base) {
				t.Errorf("changing %s should change the layout key", name)
			}
		})
	}
	if k.LayoutKey("h1", base) == k.LayoutKey("h2", base) {
		t.Error("different token hashes should produce different keys")
	}
	if !strings.HasPrefix(k.LayoutKey("h", base), "layout:") {
		t.Error("layout keys should carry the layout prefix")
	}

	ak1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png"})
	ak3 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Rotate: 90})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	tests := []struct {
		name  string
		inner Keyer
		scope string
		want  string
	}{
		{"bare scope", NewDefaultKeyer(), "api", "api:layout:"},
		{"trailing colon", NewDefaultKeyer(), "staging:", "staging:layout:"},
		{"nil inner", nil, "api", "api:layout:"},
		{"empty scope", NewDefaultKeyer(), "", "layout:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewScopedKeyer(tt.inner, tt.scope)
			if got := k.LayoutKey("h", LayoutKeyOpts{}); !strings.HasPrefix(got, tt.want) {
				t.Errorf("LayoutKey = %s, want prefix %s", got, tt.want)
			}
		})
	}

	k := NewScopedKeyer(nil, "api")
	plain := NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if got := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}); got != "api:"+plain {
		t.Errorf("ArtifactKey = %s, want api:%s", got, plain)
	}
}

func TestHashDigest(t *testing.T) {
	if got := Hash([]byte("abc")); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("Hash(abc) = %s", got)
	}
	if Hash(nil) == Hash([]byte{0}) {
		t.Error("empty and zero-byte inputs should hash differently")
	}
}

func TestWaitReachable(t *testing.T) {
	defer func(d time.Duration) { pingDelay = d }(pingDelay)
	pingDelay = time.Millisecond
	ctx := context.Background()
	refused := errors.New("connection refused")

	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   error
	}{
		{"answers at once", 0, 1, nil},
		{"answers on retry", 1, 2, nil},
		{"answers on last attempt", 2, 3, nil},
		{"never answers", 5, 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := waitReachable(ctx, "test", func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return refused
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestWaitReachableCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := waitReachable(ctx, "test", func(ctx context.Context) error {
		calls++
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"empty is null", Config{}, "*cache.NullCache", false},
		{"dir implies file", Config{Dir: dir}, "*cache.FileCache", false},
		{"explicit none", Config{Backend: BackendNone, Dir: dir}, "*cache.NullCache", false},
		{"file without dir", Config{Backend: BackendFile}, "", true},
		{"redis without url", Config{Backend: BackendRedis}, "", true},
		{"mongo without url", Config{Backend: BackendMongo}, "", true},
		{"unknown", Config{Backend: "memcached"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("Open = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Open(ctx, Config{Backend: "bogus"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend err = %v", err)
	}
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url", ""); err == nil {
		t.Error("expected error for malformed redis url")
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *NullCache:
		return "*cache.NullCache"
	case *FileCache:
		return "*cache.FileCache"
	case *RedisCache:
		return "*cache.RedisCache"
	case *MongoCache:
		return "*cache.MongoCache"
	}
	return "unknown"
}
