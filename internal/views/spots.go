package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/forms"
)

const SpotsPath = "/spots"

type SpotDeps struct {
	Spots       *app.SpotService
	Photos      *app.PhotoService
	Previews    domain.PreviewStore
	MaxPhotos   int
	Constraints domain.PhotoConstraints
}

// SpotForm is the spot create/edit screen with its gallery uploader.
type SpotForm struct {
	*FormView[domain.Spot]
	Uploader *PhotoUploader
}

func NewSpotForm(d SpotDeps, id int64, nav Navigator, alert Alerter) *SpotForm {
	sf := &SpotForm{
		Uploader: NewPhotoUploader(d.Photos, d.Previews, alert, UploaderConfig{
			EntityType:  domain.EntitySpot,
			EntityID:    id,
			PhotoType:   domain.PhotoGallery,
			MaxPhotos:   d.MaxPhotos,
			Constraints: d.Constraints,
		}),
	}
	sf.FormView = NewFormView(FormSpec[domain.Spot]{
		Entity:   "Spot",
		ListPath: SpotsPath,
		Schema:   forms.SpotSchema(),
		Resource: d.Spots.Spots,
		Seed:     spotValues,
		Save: func(ctx context.Context, id int64, f *forms.Form) (int64, error) {
			req := spotRequest(f)
			if id == 0 {
				sp, err := d.Spots.Create(ctx, req)
				return sp.ID, err
			}
			if _, err := d.Spots.Update(ctx, id, req); err != nil {
				return 0, err
			}
			return id, nil
		},
		SaveError: func(error) string { return "Erreur lors de la sauvegarde" },
		Confirm: func(edit bool, f *forms.Form) ModalContent {
			if edit {
				return ModalContent{
					Type:        ModalUpdate,
					Title:       "Confirmer la modification",
					Message:     fmt.Sprintf("Voulez-vous enregistrer les modifications du spot « %s » ?", f.String("name")),
					ConfirmText: "Enregistrer",
				}
			}
			return ModalContent{
				Type:        ModalInfo,
				Title:       "Confirmer la création",
				Message:     fmt.Sprintf("Voulez-vous créer le spot « %s » ?", f.String("name")),
				ConfirmText: "Créer",
			}
		},
		Loaded: func(ctx context.Context, sp domain.Spot) {
			photos, err := d.Photos.SpotPhotos(ctx, sp.ID)
			if err != nil {
				log.Error().Err(err).Int64("spot_id", sp.ID).Msg("spot photos load failed")
				photos = nil
			}
			sf.Uploader.SetExisting(photos)
		},
		AfterSave: sf.uploadPending,
		Teardown:  sf.Uploader.Close,
	}, id, nav, alert)
	return sf
}

// uploadPending sends the selected photos once the spot has an id. The spot
// is saved either way, so a failure only alerts.
func (sf *SpotForm) uploadPending(ctx context.Context, spotID int64) {
	files := sf.Uploader.ValidFiles()
	if len(files) == 0 {
		return
	}
	if spotID == 0 {
		sf.alert.Alert("Impossible d'uploader sans ID d'entité (créez d'abord le spot)")
		return
	}
	sf.Uploader.SetEntityID(spotID)
	if _, err := sf.Uploader.send(ctx, files); err != nil {
		log.Error().Err(err).Int64("spot_id", spotID).Msg("spot photos upload failed")
		sf.alert.Alert("Erreur lors de l'upload des photos")
	}
}

func spotValues(sp domain.Spot) map[string]string {
	return map[string]string{
		"name":        sp.Name,
		"description": sp.Description,
		"address":     sp.Address,
		"city":        sp.City,
		"zipCode":     sp.ZipCode,
		"latitude":    strconv.FormatFloat(sp.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(sp.Longitude, 'f', -1, 64),
		"isIndoor":    strconv.FormatBool(sp.IsIndoor),
		"isActive":    strconv.FormatBool(sp.IsActive),
	}
}

func spotRequest(f *forms.Form) domain.SpotRequest {
	return domain.SpotRequest{
		Name:        f.String("name"),
		Description: f.String("description"),
		Address:     f.String("address"),
		City:        f.String("city"),
		ZipCode:     f.String("zipCode"),
		Latitude:    f.Float("latitude"),
		Longitude:   f.Float("longitude"),
		IsIndoor:    f.Bool("isIndoor"),
		IsActive:    f.Bool("isActive"),
	}
}

func NewSpotList(s *app.SpotService, alert Alerter) *ListView[domain.Spot] {
	return NewListView(s.Spots, s.Delete, "Erreur lors de la suppression du spot", alert)
}
