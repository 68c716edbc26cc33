package app

import (
	"os"
	"path/filepath"

	"github.com/ludo-technologies/brainscan/domain"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// ResolveRoot returns the absolute, cleaned form of path after checking that
// it is an existing directory
func (h *FileHelper) ResolveRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &domain.InvalidPathError{Path: path, Reason: err.Error()}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &domain.InvalidPathError{Path: abs, Reason: "path does not exist"}
		}
		return "", &domain.InvalidPathError{Path: abs, Reason: err.Error()}
	}
	if !info.IsDir() {
		return "", &domain.InvalidPathError{Path: abs, Reason: "not a directory"}
	}
	return abs, nil
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
