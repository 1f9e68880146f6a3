package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"skate_admin/internal/adapters/observability"
	"skate_admin/internal/domain"
)

type PhotoService struct {
	api        domain.PhotosAPI
	uploadedBy int64
}

func NewPhotoService(api domain.PhotosAPI, uploadedBy int64) *PhotoService {
	return &PhotoService{api: api, uploadedBy: uploadedBy}
}

// Validate checks type, size and pixel dimensions. Every failed check adds
// one reason; a file that cannot be decoded gets a dedicated message.
func (s *PhotoService) Validate(f domain.File, c domain.PhotoConstraints) domain.PhotoValidationResult {
	return ValidatePhoto(f, c)
}

func ValidatePhoto(f domain.File, c domain.PhotoConstraints) domain.PhotoValidationResult {
	var errs []string

	if !slices.Contains(c.AcceptedFormats, f.ContentType) {
		errs = append(errs, "Format non supporté. Formats acceptés : "+formatList(c.AcceptedFormats))
	}

	sizeMB := float64(f.Size()) / (1024 * 1024)
	if sizeMB > c.MaxSizeMB {
		errs = append(errs, fmt.Sprintf("Fichier trop volumineux (%.1f MB). Maximum : %s MB",
			sizeMB, strconv.FormatFloat(c.MaxSizeMB, 'f', -1, 64)))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	switch {
	case err != nil:
		errs = append(errs, "Impossible de lire les dimensions de l'image")
	case cfg.Width < c.MinWidth || cfg.Height < c.MinHeight:
		errs = append(errs, fmt.Sprintf("Dimensions insuffisantes (%dx%d). Minimum : %dx%dpx",
			cfg.Width, cfg.Height, c.MinWidth, c.MinHeight))
	}

	return domain.PhotoValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func formatList(mimes []string) string {
	out := make([]string, 0, len(mimes))
	for _, m := range mimes {
		_, sub, _ := strings.Cut(m, "/")
		out = append(out, strings.ToUpper(sub))
	}
	return strings.Join(out, ", ")
}

func (s *PhotoService) Upload(ctx context.Context, f domain.File, et domain.PhotoEntityType, entityID int64, pt domain.PhotoType, order int) (domain.Photo, error) {
	p, err := s.api.UploadPhoto(ctx, domain.PhotoUpload{
		File:         f,
		EntityType:   et,
		EntityID:     entityID,
		PhotoType:    pt,
		DisplayOrder: order,
		UploadedBy:   s.uploadedBy,
	})
	if err != nil {
		observability.ObserveUpload("error")
		return domain.Photo{}, err
	}
	observability.ObserveUpload("ok")
	return p, nil
}

// UploadSequential uploads files one at a time, in order, with displayOrder
// start+i. It stops at the first failure and returns what was already
// persisted; nothing is rolled back.
func (s *PhotoService) UploadSequential(ctx context.Context, files []domain.File, et domain.PhotoEntityType, entityID int64, pt domain.PhotoType, start int) ([]domain.Photo, error) {
	done := make([]domain.Photo, 0, len(files))
	for i, f := range files {
		p, err := s.Upload(ctx, f, et, entityID, pt, start+i)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Str("err_type", observability.LabelErr(err)).
				Int("uploaded", len(done)).Int("skipped", len(files)-i-1).Msg("photo upload failed")
			for range files[i+1:] {
				observability.ObserveUpload("skipped")
			}
			return done, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		done = append(done, p)
	}
	return done, nil
}

func (s *PhotoService) SpotPhotos(ctx context.Context, spotID int64) ([]domain.Photo, error) {
	return s.api.ListSpotPhotos(ctx, spotID)
}

// Delete soft-deletes a photo on behalf of the configured user.
func (s *PhotoService) Delete(ctx context.Context, photoID int64) error {
	return s.api.DeletePhoto(ctx, photoID, s.uploadedBy)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := math.Round(float64(n)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
