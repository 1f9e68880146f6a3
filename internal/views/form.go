package views

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/forms"
)

// FormSpec binds a schema to one entity resource.
type FormSpec[T Record] struct {
	Entity   string // used in the "introuvable" alert
	ListPath string
	Schema   forms.Schema
	Resource *app.Resource[T]

	Seed func(T) map[string]string
	// Save creates when id is 0, updates otherwise, and returns the saved id.
	Save      func(ctx context.Context, id int64, f *forms.Form) (int64, error)
	SaveError func(err error) string
	Confirm   func(edit bool, f *forms.Form) ModalContent

	Loaded    func(ctx context.Context, rec T)
	AfterSave func(ctx context.Context, id int64)
	Teardown  func(ctx context.Context)
}

type FormView[T Record] struct {
	spec  FormSpec[T]
	id    int64
	nav   Navigator
	alert Alerter

	Form  *forms.Form
	Modal Modal

	current T
	ready   bool
}

// NewFormView starts in create mode when id is 0. In edit mode the form stays
// disabled until Open has found the record.
func NewFormView[T Record](spec FormSpec[T], id int64, nav Navigator, alert Alerter) *FormView[T] {
	v := &FormView[T]{spec: spec, id: id, nav: nav, alert: alert, Form: forms.New(spec.Schema)}
	if id != 0 {
		v.Form.Disable()
	}
	return v
}

func (v *FormView[T]) EditMode() bool       { return v.id != 0 }
func (v *FormView[T]) ID() int64            { return v.id }
func (v *FormView[T]) Ready() bool          { return v.ready }
func (v *FormView[T]) Inputs() *forms.Form  { return v.Form }
func (v *FormView[T]) Confirmation() *Modal { return &v.Modal }

// Current is the record being edited, zero in create mode.
func (v *FormView[T]) Current() T { return v.current }

func (v *FormView[T]) Open(ctx context.Context) error {
	if v.id == 0 {
		v.ready = true
		return nil
	}
	rec, ok, err := v.spec.Resource.Find(ctx, func(r T) bool { return r.RecordID() == v.id })
	if err != nil {
		log.Error().Err(err).Str("resource", v.spec.Resource.Name()).Int64("id", v.id).Msg("load failed")
		v.alert.Alert("Erreur lors du chargement : " + messageOf(err))
		v.nav.Navigate(v.spec.ListPath)
		return err
	}
	if !ok {
		log.Error().Str("resource", v.spec.Resource.Name()).Int64("id", v.id).Msg("no record for id")
		v.alert.Alert(v.spec.Entity + " introuvable")
		v.nav.Navigate(v.spec.ListPath)
		return fmt.Errorf("%s %d: %w", v.spec.Resource.Name(), v.id, domain.ErrNotFound)
	}
	v.Form.Patch(v.spec.Seed(rec))
	v.Form.Enable()
	v.current, v.ready = rec, true
	if v.spec.Loaded != nil {
		v.spec.Loaded(ctx, rec)
	}
	return nil
}

// Submit validates locally and opens the confirmation modal. An invalid form
// gets every field marked touched and nothing is sent.
func (v *FormView[T]) Submit() bool {
	if !v.ready {
		return false
	}
	if !v.Form.Valid() {
		v.Form.MarkAllTouched()
		return false
	}
	return v.Modal.Open(v.spec.Confirm(v.EditMode(), v.Form)) == nil
}

// Confirm performs the create or update. The resource is already reloaded
// when the service call returns, so navigation shows fresh data.
func (v *FormView[T]) Confirm(ctx context.Context) error {
	return v.Modal.Confirm(ctx, func(ctx context.Context) error {
		id, err := v.spec.Save(ctx, v.id, v.Form)
		if err != nil {
			log.Error().Err(err).Str("resource", v.spec.Resource.Name()).Int64("id", v.id).Msg("save failed")
			v.alert.Alert(v.spec.SaveError(err))
			return err
		}
		if v.spec.AfterSave != nil {
			v.spec.AfterSave(ctx, id)
		}
		v.nav.Navigate(v.spec.ListPath)
		return nil
	})
}

func (v *FormView[T]) Cancel() error { return v.Modal.Close() }

// Close tears the view down.
func (v *FormView[T]) Close(ctx context.Context) {
	if v.spec.Teardown != nil {
		v.spec.Teardown(ctx)
	}
}
