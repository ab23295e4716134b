package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewFromClient(client), mr
}

func TestCacheDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); err != ErrCacheDisabled {
		t.Errorf("Get on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Set(ctx, "k", "v", 0); err != ErrCacheDisabled {
		t.Errorf("Set on nil cache = %v, want ErrCacheDisabled", err)
	}
	if _, err := c.IncrWithTTL(ctx, "k", time.Minute); err != ErrCacheDisabled {
		t.Errorf("IncrWithTTL on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache = %v, want nil", err)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Get missing key = %v, want ErrNotFound", err)
	}

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	val, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if val != "v" {
		t.Errorf("Get() = %q, want %q", val, "v")
	}
}

func TestSetNX(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "k", "first", 0)
	if err != nil {
		t.Fatalf("SetNX() failed: %v", err)
	}
	if !ok {
		t.Error("first SetNX() = false, want true")
	}

	ok, err = c.SetNX(ctx, "k", "second", 0)
	if err != nil {
		t.Fatalf("SetNX() failed: %v", err)
	}
	if ok {
		t.Error("second SetNX() = true, want false")
	}

	val, _ := c.Get(ctx, "k")
	if val != "first" {
		t.Errorf("value after second SetNX = %q, want %q", val, "first")
	}
}

func TestGetInt_MissingReadsZero(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	val, err := c.GetInt(ctx, "counter")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if val != 0 {
		t.Errorf("GetInt() on missing key = %d, want 0", val)
	}
}

func TestIncrWithTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	val, err := c.IncrWithTTL(ctx, "counter", time.Hour)
	if err != nil {
		t.Fatalf("IncrWithTTL() failed: %v", err)
	}
	if val != 1 {
		t.Errorf("first incr = %d, want 1", val)
	}
	if ttl := mr.TTL("counter"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	mr.FastForward(30 * time.Minute)
	val, err = c.IncrWithTTL(ctx, "counter", time.Hour)
	if err != nil {
		t.Fatalf("IncrWithTTL() failed: %v", err)
	}
	if val != 2 {
		t.Errorf("second incr = %d, want 2", val)
	}
	// Only the first write arms the TTL
	if ttl := mr.TTL("counter"); ttl != 30*time.Minute {
		t.Errorf("TTL after second incr = %v, want 30m", ttl)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "pdf-tools", Count: 7}
	if err := c.SetJSON(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("SetJSON() failed: %v", err)
	}

	var out payload
	if err := c.GetJSON(ctx, "k", &out); err != nil {
		t.Fatalf("GetJSON() failed: %v", err)
	}
	if out != in {
		t.Errorf("GetJSON() = %+v, want %+v", out, in)
	}

	if err := c.GetJSON(ctx, "missing", &out); err != ErrNotFound {
		t.Errorf("GetJSON missing key = %v, want ErrNotFound", err)
	}
}

func TestHashKey(t *testing.T) {
	a := HashKey("skills_list", "q", "ai", "alpha")
	b := HashKey("skills_list", "q", "ai", "alpha")
	if a != b {
		t.Error("HashKey is not deterministic")
	}
	if a == HashKey("skills_list", "q", "ai", "newest") {
		t.Error("HashKey collides across different inputs")
	}
	if len(a) != 32 {
		t.Errorf("HashKey length = %d, want 32 hex chars", len(a))
	}
}
