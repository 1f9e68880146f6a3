package views

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
)

// ListView shows the last successful fetch of a resource and deletes through
// a confirmation modal.
type ListView[T Record] struct {
	Resource *app.Resource[T]
	Modal    Modal

	remove      func(ctx context.Context, id int64) error
	deleteError string
	alert       Alerter
}

func NewListView[T Record](r *app.Resource[T], remove func(ctx context.Context, id int64) error, deleteError string, alert Alerter) *ListView[T] {
	return &ListView[T]{Resource: r, remove: remove, deleteError: deleteError, alert: alert}
}

func (l *ListView[T]) Items(ctx context.Context) ([]T, error) {
	return l.Resource.Value(ctx)
}

func (l *ListView[T]) Reload(ctx context.Context) ([]T, error) {
	return l.Resource.Reload(ctx)
}

func (l *ListView[T]) OpenDelete(id int64, name string) error {
	return l.Modal.Open(ModalContent{
		Type:        ModalDelete,
		Title:       "Confirmer la suppression",
		Message:     fmt.Sprintf("Êtes-vous sûr de vouloir supprimer « %s » ? Cette action est irréversible.", name),
		ConfirmText: "Supprimer",
		Subject:     Subject{ID: id, Name: name},
	})
}

func (l *ListView[T]) ConfirmDelete(ctx context.Context) error {
	id := l.Modal.Content().Subject.ID
	return l.Modal.Confirm(ctx, func(ctx context.Context) error {
		if err := l.remove(ctx, id); err != nil {
			log.Error().Err(err).Str("resource", l.Resource.Name()).Int64("id", id).Msg("delete failed")
			l.alert.Alert(l.deleteError)
			return err
		}
		return nil
	})
}

func (l *ListView[T]) CloseDelete() error { return l.Modal.Close() }
