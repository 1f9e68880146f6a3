//go:build integration

package redisad_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	redisad "skate_admin/internal/adapters/redis"
	"skate_admin/internal/domain"
)

func TestPreviewStore_RealRedis(t *testing.T) {
	// Start isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	var c *redis.Client
	if err := pool.Retry(func() error {
		c = redis.NewClient(&redis.Options{Addr: addr})
		return c.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	s := redisad.NewWithClient(c, "http://admin.local", time.Minute)
	ctx := context.Background()

	h, err := s.Create(ctx, domain.File{Name: "park.webp", ContentType: "image/webp", Data: []byte("RIFF....WEBP")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.Get(ctx, h.Token)
	if err != nil || got.Name != "park.webp" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if err := s.Release(ctx, h.Token); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := s.Get(ctx, h.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
