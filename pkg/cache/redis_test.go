package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// redisAddr returns the address of a test Redis server, skipping the test
// when none is configured.
func redisAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("OLDGLORY_TEST_REDIS")
	if addr == "" {
		t.Skip("OLDGLORY_TEST_REDIS not set")
	}
	return addr
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	fastRetries(t)

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("NewRedisCache() error = %v, want ErrNetwork", err)
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: redisAddr(t), Prefix: "oldglory-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()
	t.Cleanup(func() { _ = c.Clear(context.Background()) })

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "svg", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(svg) = %q, hit %v, err %v", data, hit, err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("entry still present after Clear")
	}
}
