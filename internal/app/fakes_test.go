package app_test

import (
	"context"
	"errors"
	"sync"

	"skate_admin/internal/domain"
)

// ---- fakes ----

type call struct {
	op string
	id int64
	in any
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	spots       []domain.Spot
	services    []domain.Service
	instructors []domain.Instructor

	listErr   error
	writeErr  error
	uploadErr map[string]error
}

func (f *fakeAPI) record(op string, id int64, in any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, id: id, in: in})
}

func (f *fakeAPI) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

func (f *fakeAPI) count(op string) int {
	n := 0
	for _, o := range f.ops() {
		if o == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListSpots(ctx context.Context) ([]domain.Spot, error) {
	f.record("list-spots", 0, nil)
	return f.spots, f.listErr
}
func (f *fakeAPI) CreateSpot(ctx context.Context, req domain.SpotRequest) (domain.Spot, error) {
	f.record("create-spot", 0, req)
	if f.writeErr != nil {
		return domain.Spot{}, f.writeErr
	}
	sp := domain.Spot{ID: int64(len(f.spots) + 1), Name: req.Name}
	f.spots = append(f.spots, sp)
	return sp, nil
}
func (f *fakeAPI) UpdateSpot(ctx context.Context, id int64, req domain.SpotRequest) (domain.Spot, error) {
	f.record("update-spot", id, req)
	return domain.Spot{ID: id, Name: req.Name}, f.writeErr
}
func (f *fakeAPI) DeleteSpot(ctx context.Context, id int64) error {
	f.record("delete-spot", id, nil)
	return f.writeErr
}

func (f *fakeAPI) ListServices(ctx context.Context) ([]domain.Service, error) {
	f.record("list-services", 0, nil)
	return f.services, f.listErr
}
func (f *fakeAPI) CreateService(ctx context.Context, req domain.ServiceRequest) (domain.Service, error) {
	f.record("create-service", 0, req)
	if f.writeErr != nil {
		return domain.Service{}, f.writeErr
	}
	sv := domain.Service{ID: int64(len(f.services) + 1), Name: req.Name, Type: req.Type}
	f.services = append(f.services, sv)
	return sv, nil
}
func (f *fakeAPI) UpdateService(ctx context.Context, id int64, req domain.ServiceRequest) (domain.Service, error) {
	f.record("update-service", id, req)
	return domain.Service{ID: id, Name: req.Name}, f.writeErr
}
func (f *fakeAPI) DeleteService(ctx context.Context, id int64) error {
	f.record("delete-service", id, nil)
	return f.writeErr
}

func (f *fakeAPI) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	f.record("list-instructors", 0, nil)
	return f.instructors, f.listErr
}
func (f *fakeAPI) CreateInstructor(ctx context.Context, req domain.InstructorCreateRequest) (domain.Instructor, error) {
	f.record("create-instructor", 0, req)
	return domain.Instructor{ID: 9, Email: req.Email, Status: domain.StatusInvited}, f.writeErr
}
func (f *fakeAPI) InstructorAction(ctx context.Context, id int64, action domain.InstructorAction) error {
	f.record(string(action), id, nil)
	return f.writeErr
}

func (f *fakeAPI) UploadPhoto(ctx context.Context, up domain.PhotoUpload) (domain.Photo, error) {
	f.record("upload", up.EntityID, up)
	if err := f.uploadErr[up.File.Name]; err != nil {
		return domain.Photo{}, err
	}
	return domain.Photo{ID: int64(100 + up.DisplayOrder), OriginalFileName: up.File.Name, DisplayOrder: up.DisplayOrder}, nil
}
func (f *fakeAPI) ListSpotPhotos(ctx context.Context, spotID int64) ([]domain.Photo, error) {
	f.record("list-photos", spotID, nil)
	return nil, nil
}
func (f *fakeAPI) DeletePhoto(ctx context.Context, photoID, deletedBy int64) error {
	f.record("delete-photo", photoID, deletedBy)
	return nil
}

var errBoom = errors.New("boom")
