package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"skate_admin/internal/adapters/observability"
	"skate_admin/internal/domain"
)

// PreviewStore is the default in-process preview store.
type PreviewStore struct {
	baseURL string

	mu    sync.RWMutex
	files map[string]domain.File
}

func NewPreviewStore(baseURL string) *PreviewStore {
	return &PreviewStore{baseURL: strings.TrimRight(baseURL, "/"), files: map[string]domain.File{}}
}

func (s *PreviewStore) Create(_ context.Context, f domain.File) (domain.PreviewHandle, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.files[token] = f
	s.mu.Unlock()
	observability.ObservePreview("memory", "create")
	return domain.PreviewHandle{Token: token, URL: s.baseURL + "/previews/" + token}, nil
}

func (s *PreviewStore) Get(_ context.Context, token string) (domain.File, error) {
	s.mu.RLock()
	f, ok := s.files[token]
	s.mu.RUnlock()
	if !ok {
		observability.ObservePreview("memory", "miss")
		return domain.File{}, domain.ErrNotFound
	}
	observability.ObservePreview("memory", "hit")
	return f, nil
}

func (s *PreviewStore) Release(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.files, token)
	s.mu.Unlock()
	observability.ObservePreview("memory", "release")
	return nil
}

// Len reports how many handles are still held.
func (s *PreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
