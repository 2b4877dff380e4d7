package handler

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestListDirsSkipsHiddenAndFiles(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	mustMkdirAll(t, filepath.Join(vaultDir, "work"))
	mustMkdirAll(t, filepath.Join(vaultDir, "Archive"))
	mustMkdirAll(t, filepath.Join(vaultDir, ".git"))
	mustWriteFile(t, filepath.Join(vaultDir, "note.md"))

	h := NewFileHandler(vaultDir)
	dirs, err := h.ListDirs(vaultDir)
	if err != nil {
		t.Fatalf("ListDirs returned error: %v", err)
	}

	want := []string{"Archive", "work"}
	if !slices.Equal(dirs, want) {
		t.Fatalf("ListDirs returned %v, want %v", dirs, want)
	}
}

func TestListDirsMissingDirectory(t *testing.T) {
	t.Parallel()

	h := NewFileHandler(t.TempDir())
	if _, err := h.ListDirs(filepath.Join(h.VaultDir(), "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestListNotesOnlyVisibleRegularFiles(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	mustWriteFile(t, filepath.Join(vaultDir, "a.md"))
	mustWriteFile(t, filepath.Join(vaultDir, "b.txt"))
	mustWriteFile(t, filepath.Join(vaultDir, ".hidden.md"))
	mustMkdirAll(t, filepath.Join(vaultDir, "dir"))

	h := NewFileHandler(vaultDir)
	notes, err := h.ListNotes(vaultDir)
	if err != nil {
		t.Fatalf("ListNotes returned error: %v", err)
	}

	var names []string
	for _, n := range notes {
		names = append(names, n.Name)
		if n.Size == 0 {
			t.Fatalf("expected size for %s", n.Name)
		}
	}
	slices.Sort(names)

	want := []string{"a.md", "b.txt"}
	if !slices.Equal(names, want) {
		t.Fatalf("ListNotes returned %v, want %v", names, want)
	}
}

func TestCreateNoteNeverOverwrites(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	h := NewFileHandler(vaultDir)

	path, err := h.CreateNote(vaultDir, "idea.md", "# New Note")
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}

	if _, err := h.CreateNote(vaultDir, "idea.md", "replaced"); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist on second create, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if string(content) != "# New Note" {
		t.Fatalf("note content changed: %q", content)
	}
}

func TestMakeDirIsIdempotent(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	h := NewFileHandler(vaultDir)

	for i := 0; i < 2; i++ {
		if _, err := h.MakeDir(vaultDir, "work"); err != nil {
			t.Fatalf("MakeDir attempt %d returned error: %v", i, err)
		}
	}
}

func TestRemoveRefusesPathsOutsideVault(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	vaultDir := filepath.Join(parent, "vault")
	outside := filepath.Join(parent, "keep.md")
	mustMkdirAll(t, vaultDir)
	mustWriteFile(t, outside)

	h := NewFileHandler(vaultDir)

	for _, target := range []string{vaultDir, outside, filepath.Join(vaultDir, "..", "keep.md")} {
		if err := h.Remove(target); !errors.Is(err, ErrOutsideVault) {
			t.Fatalf("Remove(%q) = %v, want ErrOutsideVault", target, err)
		}
	}

	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("outside file was touched: %v", err)
	}
}

func TestRemoveDeletesDirectoriesRecursively(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	category := filepath.Join(vaultDir, "work")
	mustWriteFile(t, filepath.Join(category, "sub", "deep.md"))

	h := NewFileHandler(vaultDir)
	if err := h.Remove(category); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(category); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected category to be gone, got %v", err)
	}
}

func TestWalkNotesIncludesRootAndNestedNotes(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()

	rootNote := filepath.Join(vaultDir, "root.md")
	nestedNote := filepath.Join(vaultDir, "project", "nested.md")
	deepNote := filepath.Join(vaultDir, "project", "q3", "deep.md")
	gitFile := filepath.Join(vaultDir, ".git", "HEAD")
	excluded := filepath.Join(vaultDir, "scratch", "tmp.md")

	for _, p := range []string{rootNote, nestedNote, deepNote, gitFile, excluded} {
		mustWriteFile(t, p)
	}

	h := NewFileHandler(vaultDir)

	notes, err := h.WalkNotes([]string{"scratch"})
	if err != nil {
		t.Fatalf("WalkNotes returned error: %v", err)
	}

	var files []string
	for _, n := range notes {
		files = append(files, n.Path)
	}
	slices.Sort(files)
	expected := []string{rootNote, nestedNote, deepNote}
	slices.Sort(expected)

	if !slices.Equal(files, expected) {
		t.Fatalf("WalkNotes returned %v, want %v", files, expected)
	}
}

func TestHasExtension(t *testing.T) {
	if !HasExtension("note.MD", ".md") {
		t.Fatalf("expected case-insensitive match")
	}
	if HasExtension("note.md.txt", ".md") {
		t.Fatalf("expected only the final extension to count")
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
