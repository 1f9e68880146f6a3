package domain

type PhotoEntityType string

const (
	EntitySpot       PhotoEntityType = "SPOT"
	EntityCustomer   PhotoEntityType = "CUSTOMER"
	EntityInstructor PhotoEntityType = "INSTRUCTOR"
	EntityEvent      PhotoEntityType = "EVENT"
)

type PhotoType string

const (
	PhotoAvatar  PhotoType = "AVATAR"
	PhotoCover   PhotoType = "COVER"
	PhotoGallery PhotoType = "GALLERY"
	PhotoTrick   PhotoType = "TRICK"
)

// Photo is the backend metadata record of an uploaded picture. EntityType and
// EntityID form a polymorphic association to its owner.
type Photo struct {
	ID                int64           `json:"id"`
	URL               string          `json:"url"`
	ThumbnailURL      string          `json:"thumbnailUrl"`
	EntityType        PhotoEntityType `json:"entityType"`
	EntityID          int64           `json:"entityId"`
	PhotoType         PhotoType       `json:"photoType"`
	OriginalFileName  string          `json:"originalFileName"`
	FileSize          int64           `json:"fileSize"`
	MimeType          string          `json:"mimeType"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	DisplayOrder      int             `json:"displayOrder"`
	UploadedBy        int64           `json:"uploadedBy"`
	UploadedAt        Timestamp       `json:"uploadedAt"`
	AspectRatio       string          `json:"aspectRatio"`
	FormattedFileSize string          `json:"formattedFileSize"`
}

// File is a local file picked for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

type PhotoUpload struct {
	File         File
	EntityType   PhotoEntityType
	EntityID     int64
	PhotoType    PhotoType
	DisplayOrder int
	UploadedBy   int64
}

type PhotoConstraints struct {
	MaxSizeMB       float64
	MinWidth        int
	MinHeight       int
	AcceptedFormats []string
}

func DefaultPhotoConstraints() PhotoConstraints {
	return PhotoConstraints{
		MaxSizeMB:       10,
		MinWidth:        400,
		MinHeight:       400,
		AcceptedFormats: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
	}
}

type PhotoValidationResult struct {
	IsValid bool
	Errors  []string
}

// PreviewHandle points at a locally served copy of a pending file. It must be
// released once the file leaves the selection.
type PreviewHandle struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
