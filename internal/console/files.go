package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"skate_admin/internal/domain"
)

// loadFile reads a local file and sniffs its content type from the bytes,
// not from the extension.
func loadFile(path string) (domain.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.File{}, fmt.Errorf("lecture %s: %w", path, err)
	}
	ct := mimetype.Detect(data).String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return domain.File{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}
