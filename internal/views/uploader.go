package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
)

type PendingPhoto struct {
	File         domain.File
	Preview      domain.PreviewHandle
	DisplayOrder int
	IsValid      bool
	ErrorMessage string
}

type UploaderConfig struct {
	EntityType  domain.PhotoEntityType
	EntityID    int64 // 0 until the owner exists
	PhotoType   domain.PhotoType
	MaxPhotos   int
	Existing    []domain.Photo
	Constraints domain.PhotoConstraints
}

// PhotoUploader tracks files picked for upload. Every pending file holds a
// preview handle that is released on removal, upload or Close.
type PhotoUploader struct {
	photos   *app.PhotoService
	previews domain.PreviewStore
	alert    Alerter
	cfg      UploaderConfig

	pending   []PendingPhoto
	uploading bool
	progress  int
}

func NewPhotoUploader(photos *app.PhotoService, previews domain.PreviewStore, alert Alerter, cfg UploaderConfig) *PhotoUploader {
	if cfg.PhotoType == "" {
		cfg.PhotoType = domain.PhotoGallery
	}
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = 20
	}
	if len(cfg.Constraints.AcceptedFormats) == 0 {
		cfg.Constraints = domain.DefaultPhotoConstraints()
	}
	return &PhotoUploader{photos: photos, previews: previews, alert: alert, cfg: cfg}
}

func (u *PhotoUploader) SetEntityID(id int64)                 { u.cfg.EntityID = id }
func (u *PhotoUploader) SetExisting(ps []domain.Photo)        { u.cfg.Existing = ps }
func (u *PhotoUploader) Existing() []domain.Photo             { return u.cfg.Existing }
func (u *PhotoUploader) Pending() []PendingPhoto              { return u.pending }
func (u *PhotoUploader) Progress() int                        { return u.progress }
func (u *PhotoUploader) Uploading() bool                      { return u.uploading }
func (u *PhotoUploader) Constraints() domain.PhotoConstraints { return u.cfg.Constraints }

func (u *PhotoUploader) Total() int     { return len(u.cfg.Existing) + len(u.pending) }
func (u *PhotoUploader) Remaining() int { return u.cfg.MaxPhotos - u.Total() }

// ValidFiles lists the pending files that passed validation, in order.
func (u *PhotoUploader) ValidFiles() []domain.File {
	var out []domain.File
	for _, p := range u.pending {
		if p.IsValid {
			out = append(out, p.File)
		}
	}
	return out
}

// Add validates files and appends them to the selection, within the remaining
// slots. Invalid files are kept with their reasons so they can be shown.
func (u *PhotoUploader) Add(ctx context.Context, files []domain.File) ([]domain.File, error) {
	slots := u.Remaining()
	if slots <= 0 {
		u.alert.Alert(fmt.Sprintf("Vous avez atteint la limite de %d photos", u.cfg.MaxPhotos))
		return u.ValidFiles(), nil
	}
	if len(files) > slots {
		u.alert.Alert(fmt.Sprintf("Seulement %d photo(s) peuvent être ajoutée(s)", slots))
		files = files[:slots]
	}
	for _, f := range files {
		res := u.photos.Validate(f, u.cfg.Constraints)
		h, err := u.previews.Create(ctx, f)
		if err != nil {
			return u.ValidFiles(), fmt.Errorf("preview %s: %w", f.Name, err)
		}
		u.pending = append(u.pending, PendingPhoto{
			File:         f,
			Preview:      h,
			DisplayOrder: u.Total(),
			IsValid:      res.IsValid,
			ErrorMessage: strings.Join(res.Errors, ", "),
		})
	}
	return u.ValidFiles(), nil
}

// Remove drops the i-th pending file and releases its preview.
func (u *PhotoUploader) Remove(ctx context.Context, i int) error {
	if i < 0 || i >= len(u.pending) {
		return fmt.Errorf("no pending photo at index %d", i)
	}
	u.release(ctx, u.pending[i])
	u.pending = append(u.pending[:i], u.pending[i+1:]...)
	return nil
}

// DeleteExisting soft-deletes an uploaded photo.
func (u *PhotoUploader) DeleteExisting(ctx context.Context, photoID int64) error {
	if err := u.photos.Delete(ctx, photoID); err != nil {
		log.Error().Err(err).Int64("photo_id", photoID).Msg("photo delete failed")
		u.alert.Alert("Erreur lors de la suppression de la photo")
		return err
	}
	u.cfg.Existing = slices.DeleteFunc(slices.Clone(u.cfg.Existing), func(p domain.Photo) bool { return p.ID == photoID })
	return nil
}

// Upload sends the valid pending files one by one. It needs the owner id.
func (u *PhotoUploader) Upload(ctx context.Context) ([]domain.Photo, error) {
	if u.cfg.EntityID == 0 {
		u.alert.Alert("Impossible d'uploader sans ID d'entité (créez d'abord le spot)")
		return nil, nil
	}
	files := u.ValidFiles()
	if len(files) == 0 {
		u.alert.Alert("Aucune photo valide à uploader")
		return nil, nil
	}

	done, err := u.send(ctx, files)
	if err != nil {
		u.alert.Alert("Erreur lors de l'upload des photos : " + messageOf(err))
		return done, err
	}
	return done, nil
}

func (u *PhotoUploader) send(ctx context.Context, files []domain.File) ([]domain.Photo, error) {
	u.uploading, u.progress = true, 0
	defer func() { u.uploading = false }()

	done, err := u.photos.UploadSequential(ctx, files, u.cfg.EntityType, u.cfg.EntityID, u.cfg.PhotoType, len(u.cfg.Existing))
	u.cfg.Existing = append(u.cfg.Existing, done...)
	if err != nil {
		// persisted files leave the selection so a retry does not resend them
		u.dropUploaded(ctx, len(done))
		return done, err
	}
	u.Clear(ctx)
	u.progress = 100
	return done, nil
}

func (u *PhotoUploader) dropUploaded(ctx context.Context, n int) {
	kept := u.pending[:0]
	for _, p := range u.pending {
		if p.IsValid && n > 0 {
			u.release(ctx, p)
			n--
			continue
		}
		kept = append(kept, p)
	}
	u.pending = kept
}

// Clear empties the selection and releases every preview.
func (u *PhotoUploader) Clear(ctx context.Context) {
	for _, p := range u.pending {
		u.release(ctx, p)
	}
	u.pending = nil
}

// Close is the teardown hook.
func (u *PhotoUploader) Close(ctx context.Context) { u.Clear(ctx) }

func (u *PhotoUploader) release(ctx context.Context, p PendingPhoto) {
	if err := u.previews.Release(ctx, p.Preview.Token); err != nil {
		log.Warn().Err(err).Str("token", p.Preview.Token).Msg("preview release failed")
	}
}
