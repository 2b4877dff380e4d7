package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Paintersrp/knot/internal/pathutil"
)

// ErrOutsideVault is returned for paths that are not strictly below the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Note is a regular file found in a vault directory.
type Note struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

type FileHandler struct {
	vaultDir string
}

func NewFileHandler(vaultDir string) *FileHandler {
	return &FileHandler{vaultDir: pathutil.NormalizePath(vaultDir)}
}

func (h *FileHandler) VaultDir() string {
	return h.vaultDir
}

// Contains reports whether path is strictly below the vault root.
func (h *FileHandler) Contains(path string) bool {
	return pathutil.StrictlyWithin(h.vaultDir, path)
}

// ListDirs returns the sorted names of the visible directories in dir.
// Symlinks to directories count as directories.
func (h *FileHandler) ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if pathutil.IsHidden(e.Name()) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, e.Name())
	}

	sort.Strings(dirs)
	return dirs, nil
}

// ListNotes returns the visible regular files directly in dir, unordered.
func (h *FileHandler) ListNotes(dir string) ([]Note, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var notes []Note
	for _, e := range entries {
		if pathutil.IsHidden(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		notes = append(notes, Note{
			Path:    path,
			Name:    e.Name(),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	return notes, nil
}

// MakeDir creates parent/name. An existing directory is not an error.
func (h *FileHandler) MakeDir(parent, name string) (string, error) {
	path := filepath.Join(parent, name)
	if !h.Contains(path) {
		return path, ErrOutsideVault
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return path, err
	}
	return path, nil
}

// CreateNote writes a new file dir/name with content. It never overwrites an
// existing file.
func (h *FileHandler) CreateNote(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if !h.Contains(path) {
		return path, ErrOutsideVault
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return path, err
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return path, err
	}

	return path, f.Close()
}

// Remove deletes a file, or a directory and everything below it.
func (h *FileHandler) Remove(path string) error {
	if !h.Contains(path) {
		return ErrOutsideVault
	}

	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// WalkNotes collects every visible regular file below the vault, skipping
// hidden directories and any top-level directory named in excludeDirs.
func (h *FileHandler) WalkNotes(excludeDirs []string) ([]Note, error) {
	var excludePaths []string
	for _, d := range excludeDirs {
		excludePaths = append(excludePaths, filepath.Clean(filepath.Join(h.vaultDir, d)))
	}

	var notes []Note
	err := filepath.WalkDir(
		h.vaultDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == h.vaultDir {
					return err
				}
				return nil
			}

			if path == h.vaultDir {
				return nil
			}

			if pathutil.IsHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				cleaned := filepath.Clean(path)
				for _, excluded := range excludePaths {
					if cleaned == excluded {
						return filepath.SkipDir
					}
				}
				return nil
			}

			info, err := d.Info()
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}

			notes = append(notes, Note{
				Path:    path,
				Name:    d.Name(),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault %s: %w", h.vaultDir, err)
	}

	return notes, nil
}

// HasExtension reports whether name already ends with ext, ignoring case.
func HasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
