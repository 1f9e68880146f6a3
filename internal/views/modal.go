package views

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrModalBusy   = errors.New("modal is busy")
	ErrModalClosed = errors.New("modal is closed")
)

type ModalType string

const (
	ModalDelete  ModalType = "delete"
	ModalUpdate  ModalType = "update"
	ModalWarning ModalType = "warning"
	ModalInfo    ModalType = "info"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalLoading
)

type Subject struct {
	ID   int64
	Name string
}

type ModalContent struct {
	Type        ModalType
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Subject     Subject
}

func (c ModalContent) withDefaults() ModalContent {
	if c.Type == "" {
		c.Type = ModalWarning
	}
	if c.Title == "" {
		c.Title = "Confirmation"
	}
	if c.Message == "" {
		c.Message = "Êtes-vous sûr de vouloir effectuer cette action ?"
	}
	if c.ConfirmText == "" {
		c.ConfirmText = "Confirmer"
	}
	if c.CancelText == "" {
		c.CancelText = "Annuler"
	}
	return c
}

// Modal gates a mutating action behind an explicit confirmation. Each view
// owns its own instance.
type Modal struct {
	mu      sync.Mutex
	state   ModalState
	content ModalContent
}

func (m *Modal) Open(c ModalContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalLoading {
		return ErrModalBusy
	}
	m.state, m.content = ModalOpen, c.withDefaults()
	return nil
}

// Close is suppressed while the action runs.
func (m *Modal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalLoading {
		return ErrModalBusy
	}
	m.state, m.content = ModalClosed, ModalContent{}
	return nil
}

// Confirm runs action in the loading state. Success closes the modal; a
// failure brings it back to open so the user can retry or cancel.
func (m *Modal) Confirm(ctx context.Context, action func(ctx context.Context) error) error {
	m.mu.Lock()
	switch m.state {
	case ModalClosed:
		m.mu.Unlock()
		return ErrModalClosed
	case ModalLoading:
		m.mu.Unlock()
		return ErrModalBusy
	}
	m.state = ModalLoading
	m.mu.Unlock()

	err := action(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = ModalOpen
		return err
	}
	m.state, m.content = ModalClosed, ModalContent{}
	return nil
}

func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Modal) IsOpen() bool    { return m.State() != ModalClosed }
func (m *Modal) IsLoading() bool { return m.State() == ModalLoading }

func (m *Modal) Content() ModalContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}
