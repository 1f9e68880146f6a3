package domain

import "context"

type SpotsAPI interface {
	ListSpots(ctx context.Context) ([]Spot, error)
	CreateSpot(ctx context.Context, req SpotRequest) (Spot, error)
	UpdateSpot(ctx context.Context, id int64, req SpotRequest) (Spot, error)
	DeleteSpot(ctx context.Context, id int64) error
}

type ServicesAPI interface {
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, req ServiceRequest) (Service, error)
	UpdateService(ctx context.Context, id int64, req ServiceRequest) (Service, error)
	DeleteService(ctx context.Context, id int64) error
}

type InstructorsAPI interface {
	ListInstructors(ctx context.Context) ([]Instructor, error)
	CreateInstructor(ctx context.Context, req InstructorCreateRequest) (Instructor, error)
	InstructorAction(ctx context.Context, id int64, action InstructorAction) error
}

type PhotosAPI interface {
	UploadPhoto(ctx context.Context, up PhotoUpload) (Photo, error)
	ListSpotPhotos(ctx context.Context, spotID int64) ([]Photo, error)
	// DeletePhoto soft-deletes a photo. deletedBy <= 0 leaves the author unset.
	DeletePhoto(ctx context.Context, photoID, deletedBy int64) error
}

type PreviewStore interface {
	Create(ctx context.Context, f File) (PreviewHandle, error)
	Get(ctx context.Context, token string) (File, error)
	Release(ctx context.Context, token string) error
}
