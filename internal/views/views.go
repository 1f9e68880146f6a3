// Package views holds the per-screen state of the admin console: forms
// bound to resources, lists, confirmation modals and the photo uploader.
// Rendering and input live in the console package.
package views

import (
	"errors"

	"skate_admin/internal/domain"
)

type Navigator interface {
	Navigate(path string)
}

type Alerter interface {
	Alert(msg string)
}

// Record is anything a resource holds that can be looked up by id.
type Record interface {
	RecordID() int64
}

func messageOf(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
