package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	httpserver "skate_admin/internal/adapters/http_server"
	"skate_admin/internal/adapters/memory"
	"skate_admin/internal/app"
	"skate_admin/internal/domain"
)

func newServer(t *testing.T) (*httptest.Server, *memory.PreviewStore, *app.Resource[domain.Spot]) {
	t.Helper()
	store := memory.NewPreviewStore("http://example")
	spots := app.NewResource("spots", func(ctx context.Context) ([]domain.Spot, error) {
		return []domain.Spot{{ID: 1, Name: "Bercy"}}, nil
	})
	services := app.NewResource("services", func(ctx context.Context) ([]domain.Service, error) { return nil, nil })

	s := httpserver.New(zerolog.Nop(), time.Second)
	s.MountHandlers(&httpserver.Handlers{Previews: store, Spots: spots, Services: services})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts, store, spots
}

func TestHealthz(t *testing.T) {
	ts, _, _ := newServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPreview_ServeAndRelease(t *testing.T) {
	ts, store, _ := newServer(t)
	h, _ := store.Create(context.Background(), domain.File{Name: "a.png", ContentType: "image/png", Data: []byte("PNGDATA")})

	resp, err := http.Get(ts.URL + "/previews/" + h.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 200 || string(body) != "PNGDATA" || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected response %d %q %q", resp.StatusCode, body, resp.Header.Get("Content-Type"))
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/previews/"+h.Token, nil)
	req.Header.Set("If-None-Match", resp.Header.Get("ETag"))
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional get: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp2.StatusCode)
	}

	_ = store.Release(context.Background(), h.Token)
	resp3, err := http.Get(ts.URL + "/previews/" + h.Token)
	if err != nil {
		t.Fatalf("get after release: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusNotFound || resp3.Header.Get("Content-Type") != "application/problem+json" {
		t.Fatalf("expected problem 404, got %d", resp3.StatusCode)
	}
}

func TestSnapshot(t *testing.T) {
	ts, _, spots := newServer(t)

	resp, err := http.Get(ts.URL + "/v1/spots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unloaded resource must not be fetched by the server, got %d", resp.StatusCode)
	}

	if _, err := spots.Value(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	resp, err = http.Get(ts.URL + "/v1/spots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var got []domain.Spot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Bercy" || resp.Header.Get("ETag") == "" {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	resp4, err := http.Get(ts.URL + "/v1/instructors")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp4.Body.Close()
	if resp4.StatusCode != http.StatusNotFound {
		t.Fatalf("missing resource status = %d", resp4.StatusCode)
	}
}

type downStore struct{}

func (downStore) Create(context.Context, domain.File) (domain.PreviewHandle, error) {
	return domain.PreviewHandle{}, errors.New("down")
}
func (downStore) Get(context.Context, string) (domain.File, error) { return domain.File{}, errors.New("down") }
func (downStore) Release(context.Context, string) error            { return errors.New("down") }

func TestAccessLog_RequestIDAndLevel(t *testing.T) {
	var buf bytes.Buffer
	s := httpserver.New(zerolog.New(&buf), time.Second)
	s.MountHandlers(&httpserver.Handlers{Previews: downStore{}})
	ts := httptest.NewServer(s.Mux())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/previews/abc", nil)
	req.Header.Set("X-Request-Id", "req-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var entry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if json.Unmarshal([]byte(line), &m) == nil && m["message"] == "http_request" {
			entry = m
		}
	}
	if entry == nil {
		t.Fatalf("no access log line in %q", buf.String())
	}
	if entry["request_id"] != "req-42" || entry["route"] != "/previews/{token}" || entry["level"] != "error" {
		t.Fatalf("unexpected access log: %v", entry)
	}
}
