package redisad

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"skate_admin/internal/adapters/observability"
	"skate_admin/internal/domain"
)

const keyPrefix = "preview:"

// PreviewStore keeps pending upload previews in Redis. Entries carry a TTL so
// a handle leaked by a crashed console eventually disappears.
type PreviewStore struct {
	c       *redis.Client
	baseURL string
	ttl     time.Duration
}

func New(addr, pass string, db int, baseURL string, ttl time.Duration) *PreviewStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), baseURL, ttl)
}

func NewWithClient(c *redis.Client, baseURL string, ttl time.Duration) *PreviewStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PreviewStore{c: c, baseURL: strings.TrimRight(baseURL, "/"), ttl: ttl}
}

func (s *PreviewStore) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *PreviewStore) Close() error { return s.c.Close() }

func (s *PreviewStore) Create(ctx context.Context, f domain.File) (domain.PreviewHandle, error) {
	token := uuid.NewString()
	key := keyPrefix + token
	_, err := s.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, "name", f.Name, "type", f.ContentType, "data", f.Data)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return domain.PreviewHandle{}, fmt.Errorf("store preview: %w", err)
	}
	observability.ObservePreview("redis", "create")
	return domain.PreviewHandle{Token: token, URL: s.baseURL + "/previews/" + token}, nil
}

func (s *PreviewStore) Get(ctx context.Context, token string) (domain.File, error) {
	m, err := s.c.HGetAll(ctx, keyPrefix+token).Result()
	if err != nil {
		return domain.File{}, err
	}
	if len(m) == 0 {
		observability.ObservePreview("redis", "miss")
		return domain.File{}, domain.ErrNotFound
	}
	observability.ObservePreview("redis", "hit")
	return domain.File{Name: m["name"], ContentType: m["type"], Data: []byte(m["data"])}, nil
}

func (s *PreviewStore) Release(ctx context.Context, token string) error {
	observability.ObservePreview("redis", "release")
	return s.c.Del(ctx, keyPrefix+token).Err()
}
