package views

import (
	"context"
	"errors"
	"testing"
)

func TestModal_Lifecycle(t *testing.T) {
	var m Modal
	if err := m.Confirm(context.Background(), func(context.Context) error { return nil }); !errors.Is(err, ErrModalClosed) {
		t.Fatalf("confirm on closed modal: %v", err)
	}
	_ = m.Open(ModalContent{Title: "Supprimer"})
	c := m.Content()
	if c.Type != ModalWarning || c.ConfirmText != "Confirmer" || c.CancelText != "Annuler" {
		t.Fatalf("defaults not applied: %+v", c)
	}

	boom := errors.New("boom")
	if err := m.Confirm(context.Background(), func(context.Context) error {
		if m.State() != ModalLoading {
			t.Errorf("state during action = %v", m.State())
		}
		if err := m.Close(); !errors.Is(err, ErrModalBusy) {
			t.Errorf("close while loading: %v", err)
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("confirm: %v", err)
	}
	if m.State() != ModalOpen || m.Content().Title != "Supprimer" {
		t.Fatalf("failure must keep the modal open: %v", m.State())
	}
	if err := m.Confirm(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if m.State() != ModalClosed {
		t.Fatalf("state = %v", m.State())
	}
}
