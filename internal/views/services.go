package views

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/forms"
)

const ServicesPath = "/services"

type QuickPrice struct {
	Cents int64
	Label string
}

var QuickPrices = []QuickPrice{
	{1000, "10 €"}, {2000, "20 €"}, {3000, "30 €"}, {5000, "50 €"}, {10000, "100 €"}, {15000, "150 €"},
}

type ServiceForm struct {
	*FormView[domain.Service]
}

func NewServiceForm(s *app.ServiceService, id int64, nav Navigator, alert Alerter) *ServiceForm {
	return &ServiceForm{NewFormView(FormSpec[domain.Service]{
		Entity:   "Service",
		ListPath: ServicesPath,
		Schema:   forms.ServiceSchema(),
		Resource: s.Services,
		Seed:     serviceValues,
		Save: func(ctx context.Context, id int64, f *forms.Form) (int64, error) {
			req := serviceRequest(f)
			if id == 0 {
				sv, err := s.Create(ctx, req)
				return sv.ID, err
			}
			if _, err := s.Update(ctx, id, req); err != nil {
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
					Message:     fmt.Sprintf("Voulez-vous enregistrer les modifications de la prestation « %s » ?", f.String("name")),
					ConfirmText: "Enregistrer",
				}
			}
			return ModalContent{
				Type:        ModalInfo,
				Title:       "Confirmer la création",
				Message:     fmt.Sprintf("Voulez-vous créer la prestation « %s » ?", f.String("name")),
				ConfirmText: "Créer",
			}
		},
	}, id, nav, alert)}
}

// PricePerHour is the base price scaled to 60 minutes, in cents.
func (sf *ServiceForm) PricePerHour() int64 {
	minutes := sf.Form.Int("durationMinutes")
	if minutes <= 0 {
		return 0
	}
	return int64(math.Round(float64(sf.Form.Int64("basePriceCents")) / float64(minutes) * 60))
}

func (sf *ServiceForm) DurationHelp() string {
	v := sf.Form.Int("durationMinutes")
	if v <= 0 {
		return ""
	}
	h, m := v/60, v%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("Durée: %dh%02d", h, m)
	case h > 0:
		return fmt.Sprintf("Durée: %dh", h)
	}
	return fmt.Sprintf("Durée: %d min", m)
}

func (sf *ServiceForm) PriceHelp() string {
	if sf.Form.String("basePriceCents") == "" {
		return ""
	}
	v := sf.Form.Int64("basePriceCents")
	if v < 0 {
		return ""
	}
	return fmt.Sprintf("Prix affiché: %d.%02d €", v/100, v%100)
}

func (sf *ServiceForm) SetQuickPrice(cents int64) error {
	return sf.Form.Set("basePriceCents", strconv.FormatInt(cents, 10))
}

func (sf *ServiceForm) ResetDefaults() { sf.Form.Reset() }

func serviceValues(s domain.Service) map[string]string {
	return map[string]string{
		"name":            s.Name,
		"description":     s.Description,
		"type":            string(s.Type),
		"durationMinutes": strconv.Itoa(s.DurationMinutes),
		"basePriceCents":  strconv.FormatInt(s.BasePriceCents, 10),
		"isActive":        strconv.FormatBool(s.IsActive),
	}
}

func serviceRequest(f *forms.Form) domain.ServiceRequest {
	return domain.ServiceRequest{
		Name:            f.String("name"),
		Type:            domain.ServiceType(f.String("type")),
		Description:     f.String("description"),
		DurationMinutes: f.Int("durationMinutes"),
		BasePriceCents:  f.Int64("basePriceCents"),
		IsActive:        f.Bool("isActive"),
	}
}

func NewServiceList(s *app.ServiceService, alert Alerter) *ListView[domain.Service] {
	return NewListView(s.Services, s.Delete, "Erreur lors de la suppression de la prestation", alert)
}
