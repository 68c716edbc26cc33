package checks

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/brainscan/internal/constants"
)

// FileEntry is a file found while walking the workspace
type FileEntry struct {
	RelPath string
	Size    int64
	ModTime time.Time
	Mode    fs.FileMode
}

// walkDir is the tree walker used by ListFiles
var walkDir = filepath.WalkDir

// Workspace gives checks read-only access to a scanned root.
// Stat helpers never read file contents, so the brain state detector can
// use them too.
type Workspace struct {
	Root string

	excludes   []string
	ignoreOnce sync.Once
	matcher    *ignore.GitIgnore
	now        func() time.Time
	walkErr    error
}

// NewWorkspace creates a workspace view of root. excludes are gitignore-style
// patterns applied on top of the root .gitignore when walking.
func NewWorkspace(root string, excludes []string) *Workspace {
	return &Workspace{
		Root:     root,
		excludes: excludes,
		now:      time.Now,
	}
}

// Err returns the first walk failure seen by ListFiles
func (w *Workspace) Err() error {
	return w.walkErr
}

// Path joins rel onto the workspace root
func (w *Workspace) Path(rel ...string) string {
	return filepath.Join(append([]string{w.Root}, rel...)...)
}

// Exists reports whether the path exists
func (w *Workspace) Exists(rel ...string) bool {
	_, err := os.Stat(w.Path(rel...))
	return err == nil
}

// IsDir reports whether the path is a directory
func (w *Workspace) IsDir(rel ...string) bool {
	info, err := os.Stat(w.Path(rel...))
	return err == nil && info.IsDir()
}

// IsFile reports whether the path is a regular file
func (w *Workspace) IsFile(rel ...string) bool {
	info, err := os.Stat(w.Path(rel...))
	return err == nil && info.Mode().IsRegular()
}

// FileSize returns the size of a regular file, or -1 when it is missing
func (w *Workspace) FileSize(rel ...string) int64 {
	info, err := os.Stat(w.Path(rel...))
	if err != nil || !info.Mode().IsRegular() {
		return -1
	}
	return info.Size()
}

// ModTime returns the modification time of a path
func (w *Workspace) ModTime(rel ...string) (time.Time, bool) {
	info, err := os.Stat(w.Path(rel...))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Age returns how long ago t was, relative to the workspace clock
func (w *Workspace) Age(t time.Time) time.Duration {
	return w.now().Sub(t)
}

// ReadFile reads a file relative to the root
func (w *Workspace) ReadFile(rel ...string) ([]byte, error) {
	return os.ReadFile(w.Path(rel...))
}

// ReadText reads a file and returns its contents, or "" when unreadable
func (w *Workspace) ReadText(rel ...string) string {
	data, err := w.ReadFile(rel...)
	if err != nil {
		return ""
	}
	return string(data)
}

// ReadJSON decodes a JSON object file; ok is false if it is missing or malformed
func (w *Workspace) ReadJSON(rel ...string) (map[string]any, bool) {
	data, err := w.ReadFile(rel...)
	if err != nil {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// ListFiles walks relDir recursively and returns regular files whose name
// ends with suffix (any file when suffix is empty). Paths matched by the root
// .gitignore or the configured excludes are skipped. A missing directory
// yields no files and no error. Unreadable entries below relDir are skipped;
// failing to read relDir itself is returned and remembered in Err.
func (w *Workspace) ListFiles(relDir string, suffix string) ([]FileEntry, error) {
	base := w.Path(relDir)
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	matcher := w.ignoreMatcher()
	var files []FileEntry

	err = walkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == base {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(w.Root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != base && matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if suffix != "" && !strings.HasSuffix(strings.ToLower(d.Name()), strings.ToLower(suffix)) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		files = append(files, FileEntry{
			RelPath: rel,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
			Mode:    fi.Mode(),
		})
		return nil
	})
	if err != nil {
		if w.walkErr == nil {
			w.walkErr = fmt.Errorf("list %s: %w", relDir, err)
		}
		return nil, w.walkErr
	}

	return files, nil
}

// ignoreMatcher compiles the root .gitignore plus excludes on first use
func (w *Workspace) ignoreMatcher() *ignore.GitIgnore {
	w.ignoreOnce.Do(func() {
		gitignorePath := w.Path(constants.GitignoreFile)
		if _, err := os.Stat(gitignorePath); err == nil {
			if m, err := ignore.CompileIgnoreFileAndLines(gitignorePath, w.excludes...); err == nil {
				w.matcher = m
				return
			}
		}
		if len(w.excludes) > 0 {
			w.matcher = ignore.CompileIgnoreLines(w.excludes...)
		}
	})
	return w.matcher
}

// MemoryDir returns the relative memory directory, preferring the root one
func (w *Workspace) MemoryDir() (string, bool) {
	if w.IsDir(constants.MemoryDir) {
		return constants.MemoryDir, true
	}
	nested := filepath.Join(constants.ConfigDir, constants.MemoryDir)
	if w.IsDir(nested) {
		return nested, true
	}
	return "", false
}

// HooksConfigured reports whether hooks are set up through a hooks directory,
// a hooks.json file, or a non-empty "hooks" key in settings.json
func (w *Workspace) HooksConfigured() bool {
	if files, _ := w.ListFiles(filepath.Join(constants.ConfigDir, constants.HooksDir), ""); len(files) > 0 {
		return true
	}
	if w.IsFile(constants.ConfigDir, constants.HooksFile) {
		return true
	}
	settings, ok := w.ReadJSON(constants.ConfigDir, constants.SettingsFile)
	if !ok {
		return false
	}
	hooks, ok := settings["hooks"].(map[string]any)
	return ok && len(hooks) > 0
}
