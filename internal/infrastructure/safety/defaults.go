package safety

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/aiagent-go/assets"
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/filesystem"
)

// WriteDefaultRules seeds path with the embedded denylist unless a file is
// already there. It reports whether a file was written.
func WriteDefaultRules(path string) (bool, error) {
	path = filesystem.ExpandPath(path)
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return false, err
	}
	if err := filesystem.WriteFileAtomic(path, assets.DefaultSafetyYAML, domain.DataFilePermissions); err != nil {
		return false, err
	}
	return true, nil
}
