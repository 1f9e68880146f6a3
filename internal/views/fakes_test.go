package views_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"

	"skate_admin/internal/domain"
)

// ---- fakes ----

type backend struct {
	mu  sync.Mutex
	log []string

	spots       []domain.Spot
	services    []domain.Service
	instructors []domain.Instructor

	lastService    domain.ServiceRequest
	lastInstructor domain.InstructorCreateRequest
	uploads        []domain.PhotoUpload

	writeErr  error
	uploadErr map[string]error
	block     chan struct{}
}

func (b *backend) note(op string) {
	b.mu.Lock()
	b.log = append(b.log, op)
	b.mu.Unlock()
}

func (b *backend) ops() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.log...)
}

func (b *backend) count(op string) int {
	n := 0
	for _, o := range b.ops() {
		if o == op {
			n++
		}
	}
	return n
}

func (b *backend) ListSpots(ctx context.Context) ([]domain.Spot, error) {
	b.note("GET /spots")
	return b.spots, nil
}
func (b *backend) CreateSpot(ctx context.Context, req domain.SpotRequest) (domain.Spot, error) {
	b.note("POST /spots")
	if b.writeErr != nil {
		return domain.Spot{}, b.writeErr
	}
	sp := domain.Spot{ID: 50, Name: req.Name}
	b.spots = append(b.spots, sp)
	return sp, nil
}
func (b *backend) UpdateSpot(ctx context.Context, id int64, req domain.SpotRequest) (domain.Spot, error) {
	b.note("PUT /spots")
	return domain.Spot{ID: id, Name: req.Name}, b.writeErr
}
func (b *backend) DeleteSpot(ctx context.Context, id int64) error {
	b.note("DELETE /spots")
	return b.writeErr
}

func (b *backend) ListServices(ctx context.Context) ([]domain.Service, error) {
	b.note("GET /services")
	return b.services, nil
}
func (b *backend) CreateService(ctx context.Context, req domain.ServiceRequest) (domain.Service, error) {
	b.note("POST /services")
	if b.block != nil {
		<-b.block
	}
	if b.writeErr != nil {
		return domain.Service{}, b.writeErr
	}
	b.lastService = req
	sv := domain.Service{ID: 11, Name: req.Name, Type: req.Type, DurationMinutes: req.DurationMinutes, BasePriceCents: req.BasePriceCents, IsActive: req.IsActive}
	b.services = append(b.services, sv)
	return sv, nil
}
func (b *backend) UpdateService(ctx context.Context, id int64, req domain.ServiceRequest) (domain.Service, error) {
	b.note("PUT /services")
	b.lastService = req
	return domain.Service{ID: id}, b.writeErr
}
func (b *backend) DeleteService(ctx context.Context, id int64) error {
	b.note("DELETE /services")
	return b.writeErr
}

func (b *backend) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	b.note("GET /admin/instructors")
	return b.instructors, nil
}
func (b *backend) CreateInstructor(ctx context.Context, req domain.InstructorCreateRequest) (domain.Instructor, error) {
	b.note("POST /admin/instructors")
	b.lastInstructor = req
	return domain.Instructor{ID: 3}, b.writeErr
}
func (b *backend) InstructorAction(ctx context.Context, id int64, action domain.InstructorAction) error {
	b.note("POST /admin/instructors/" + string(action))
	if b.writeErr != nil {
		return b.writeErr
	}
	for i := range b.instructors {
		if b.instructors[i].ID == id {
			switch action {
			case domain.ActionSuspend:
				b.instructors[i].Status = domain.StatusSuspended
			case domain.ActionReactivate:
				b.instructors[i].Status = domain.StatusActive
			}
		}
	}
	return nil
}

func (b *backend) UploadPhoto(ctx context.Context, up domain.PhotoUpload) (domain.Photo, error) {
	b.note("POST /photos")
	if err := b.uploadErr[up.File.Name]; err != nil {
		return domain.Photo{}, err
	}
	b.mu.Lock()
	b.uploads = append(b.uploads, up)
	b.mu.Unlock()
	return domain.Photo{ID: int64(len(b.uploads)), OriginalFileName: up.File.Name}, nil
}
func (b *backend) ListSpotPhotos(ctx context.Context, spotID int64) ([]domain.Photo, error) {
	b.note("GET /photos/spots")
	return []domain.Photo{{ID: 1, EntityID: spotID}}, nil
}
func (b *backend) DeletePhoto(ctx context.Context, photoID, deletedBy int64) error {
	b.note("DELETE /photos")
	return nil
}

// screen records navigation and alerts, and what the backend had seen when
// navigation happened.
type screen struct {
	b      *backend
	paths  []string
	alerts []string
	seen   [][]string
}

func (s *screen) Navigate(path string) {
	s.paths = append(s.paths, path)
	if s.b != nil {
		s.seen = append(s.seen, s.b.ops())
	}
}

func (s *screen) Alert(msg string) { s.alerts = append(s.alerts, msg) }

func pngFile(t *testing.T, name string, w, h int) domain.File {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return domain.File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}
