package redisad_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "skate_admin/internal/adapters/redis"
	"skate_admin/internal/domain"
)

func newStore(t *testing.T) (*redisad.PreviewStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return redisad.NewWithClient(c, "http://localhost:8090/", 10*time.Minute), mr
}

func TestPreviewStore_CreateGetRelease(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	h, err := s.Create(ctx, domain.File{Name: "bowl.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0x00, 0x01}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.Token == "" || h.URL != "http://localhost:8090/previews/"+h.Token {
		t.Fatalf("unexpected handle: %+v", h)
	}
	if ttl := mr.TTL("preview:" + h.Token); ttl != 10*time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	f, err := s.Get(ctx, h.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f.Name != "bowl.jpg" || f.ContentType != "image/jpeg" || string(f.Data) != string([]byte{0xff, 0xd8, 0x00, 0x01}) {
		t.Fatalf("unexpected file: %+v", f)
	}

	if err := s.Release(ctx, h.Token); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := s.Get(ctx, h.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after release, got %v", err)
	}
	// idempotent
	if err := s.Release(ctx, h.Token); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestPreviewStore_Expires(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	h, err := s.Create(ctx, domain.File{Name: "a.png", ContentType: "image/png", Data: []byte("x")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(11 * time.Minute)
	if _, err := s.Get(ctx, h.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestPreviewStore_UniqueTokens(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		h, err := s.Create(ctx, domain.File{Name: "f", Data: []byte("x")})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[h.Token] || strings.Contains(h.Token, "/") {
			t.Fatalf("bad token %q", h.Token)
		}
		seen[h.Token] = true
	}
}
