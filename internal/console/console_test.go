package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"skate_admin/internal/adapters/memory"
	"skate_admin/internal/adapters/skateapi"
	"skate_admin/internal/app"
	"skate_admin/internal/console"
	"skate_admin/internal/domain"
)

// fakeBackend is a tiny in-memory REST backend.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	services []map[string]any
	lastBody map[string]any
}

func (b *fakeBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
	}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("GET /api/spots", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, []any{})
	})
	mux.HandleFunc("GET /api/services", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.services)
	})
	mux.HandleFunc("POST /api/services", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.lastBody = body
		body["id"] = len(b.services) + 1
		b.services = append(b.services, body)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, body)
	})
	mux.HandleFunc("GET /api/admin/instructors", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 4, "firstname": "Léa", "lastname": "Martin", "email": "lea@example.com", "status": "ACTIVE"},
		})
	})
	mux.HandleFunc("POST /api/admin/instructors/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

type session struct {
	backend  *fakeBackend
	previews *memory.PreviewStore
	console  *console.Console
	out      *bytes.Buffer
}

func newSession(t *testing.T) *session {
	t.Helper()
	b := &fakeBackend{}
	ts := httptest.NewServer(b.handler())
	t.Cleanup(ts.Close)

	cl, err := skateapi.New(ts.URL+"/api", 100)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	spots := app.NewSpotService(cl)
	services := app.NewServiceService(cl)
	instructors := app.NewInstructorService(cl)
	previews := memory.NewPreviewStore("http://127.0.0.1:8090")

	out := &bytes.Buffer{}
	c := console.New(console.Deps{
		Spots:       spots,
		Services:    services,
		Instructors: instructors,
		Photos:      app.NewPhotoService(cl, 1),
		Dashboard:   app.NewDashboard(spots, services, instructors),
		Previews:    previews,
		MaxPhotos:   20,
		Constraints: domain.DefaultPhotoConstraints(),
	}, out)
	return &session{backend: b, previews: previews, console: c, out: out}
}

func (s *session) run(t *testing.T, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := s.console.Run(context.Background(), in); err != nil {
		t.Fatalf("run: %v", err)
	}
	return s.out.String()
}

func TestConsole_CreateService(t *testing.T) {
	s := newSession(t)
	out := s.run(t,
		"go /services/new",
		"set name Cours debutant",
		"set description Initiation au skate",
		"set type lesson",
		"set durationMinutes 60",
		"set basePriceCents 3000",
		"submit",
		"confirm",
	)

	if n := s.backend.count("POST /api/services"); n != 1 {
		t.Fatalf("want 1 create, got %d\n%s", n, out)
	}
	body := s.backend.lastBody
	if body["name"] != "Cours debutant" || body["type"] != "LESSON" || body["basePriceCents"] != float64(3000) || body["isActive"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
	if s.console.Path() != "/services/list" {
		t.Fatalf("want list path, got %q", s.console.Path())
	}
	if !strings.Contains(out, "Confirmer la création") {
		t.Fatalf("confirmation not shown:\n%s", out)
	}
	if !strings.Contains(out, "Prestations (1)") || !strings.Contains(out, "30,00 €") {
		t.Fatalf("list not refreshed:\n%s", out)
	}
}

func TestConsole_InvalidFormSendsNothing(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "go /services/new", "set name ab", "submit", "confirm")

	if n := s.backend.count("POST /api/services"); n != 0 {
		t.Fatalf("invalid form must not be sent, got %d creates", n)
	}
	if s.console.Path() != "/services/new" {
		t.Fatalf("should stay on the form, got %q", s.console.Path())
	}
	if !strings.Contains(out, "Veuillez corriger les erreurs") {
		t.Fatalf("summary missing:\n%s", out)
	}
}

func TestConsole_EditUnknownSpotRedirects(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "go /spots/99/edit")

	if !strings.Contains(out, "! Spot introuvable") {
		t.Fatalf("alert missing:\n%s", out)
	}
	if s.console.Path() != "/spots/list" {
		t.Fatalf("want redirect to list, got %q", s.console.Path())
	}
}

func TestConsole_SuspendInstructor(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "go /instructors", "suspend 4", "confirm")

	if n := s.backend.count("POST /api/admin/instructors/4/suspend"); n != 1 {
		t.Fatalf("want 1 suspend, got %d\n%s", n, out)
	}
	if !strings.Contains(out, "Suspendre le compte") || !strings.Contains(out, "Compte mis à jour.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	// the list is refetched after the transition
	if n := s.backend.count("GET /api/admin/instructors"); n < 2 {
		t.Fatalf("want a reload after suspend, got %d lists", n)
	}
}

func TestConsole_PhotoPreviewsReleasedOnLeave(t *testing.T) {
	s := newSession(t)
	path := filepath.Join(t.TempDir(), "ramp.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 400, 400))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	out := s.run(t, "go /spots/new", "photo add "+path, "go /")

	if !strings.Contains(out, "ramp.png") || !strings.Contains(out, "/previews/") {
		t.Fatalf("pending photo not shown:\n%s", out)
	}
	if n := s.previews.Len(); n != 0 {
		t.Fatalf("previews leaked: %d", n)
	}
}

func TestConsole_UnknownCommandAndRoute(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "fly", "go /nowhere", "delete 3")

	for _, want := range []string{"commande inconnue", "Page introuvable : /nowhere", "indisponible"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if s.console.Path() != "/" {
		t.Fatalf("path changed: %q", s.console.Path())
	}
}
