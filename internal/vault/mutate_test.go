package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"
)

func TestCreateNoteInCategory(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "work")
	writeNote(t, filepath.Join(root, "work", "older.md"), "x", time.Now().Add(-time.Hour))

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	if err := s.BeginCreate(KindNote); err != nil {
		t.Fatalf("BeginCreate returned error: %v", err)
	}
	if s.Mode() != ModeCreatingNote {
		t.Fatalf("expected creating note mode, got %v", s.Mode())
	}

	s.SetInput("draft")
	path, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}

	want := filepath.Join(root, "work", "draft.md")
	if path != want {
		t.Fatalf("created %q, want %q", path, want)
	}

	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if string(content) != "# New Note" {
		t.Fatalf("unexpected note content %q", content)
	}

	snap := s.Snapshot()
	if snap.Mode != ModeNormal {
		t.Fatalf("expected normal mode after commit, got %v", snap.Mode)
	}
	if names := fileNames(snap); len(names) != 2 || names[0] != "draft.md" {
		t.Fatalf("expected new note listed first, got %v", names)
	}
}

func TestCreateNoteKeepsExistingExtension(t *testing.T) {
	root := t.TempDir()
	s := newState(t, root)

	mustBegin(t, s, KindNote)
	path, err := s.CommitCreate("todo.md")
	if err != nil {
		t.Fatalf("CommitCreate returned error: %v", err)
	}
	if filepath.Base(path) != "todo.md" {
		t.Fatalf("expected todo.md, got %s", filepath.Base(path))
	}
}

func TestCreateNoteInSubfolder(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, filepath.Join("work", "q3"))

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}
	if err := s.SelectSubfolder("q3"); err != nil {
		t.Fatalf("SelectSubfolder returned error: %v", err)
	}

	mustBegin(t, s, KindNote)
	path, err := s.CommitCreate("plan")
	if err != nil {
		t.Fatalf("CommitCreate returned error: %v", err)
	}
	if want := filepath.Join(root, "work", "q3", "plan.md"); path != want {
		t.Fatalf("created %q, want %q", path, want)
	}
}

func TestCreateExistingNoteSurfacesError(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "idea.md"), "keep me", time.Now())

	s := newState(t, root)
	mustBegin(t, s, KindNote)

	_, err := s.CommitCreate("idea")
	var merr *MutationError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MutationError, got %v", err)
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist, got %v", err)
	}
	if merr.Op != "create note" {
		t.Fatalf("unexpected op %q", merr.Op)
	}

	content, _ := os.ReadFile(filepath.Join(root, "idea.md"))
	if string(content) != "keep me" {
		t.Fatalf("existing note was overwritten: %q", content)
	}

	snap := s.Snapshot()
	if snap.Mode != ModeNormal {
		t.Fatalf("expected normal mode after failed create, got %v", snap.Mode)
	}
	if snap.Status == "" {
		t.Fatalf("expected failure in status line")
	}
}

func TestCommitCreateBlankIsNoop(t *testing.T) {
	root := t.TempDir()
	s := newState(t, root)
	before := s.Snapshot()

	for _, k := range []Kind{KindCategory, KindSubfolder, KindNote} {
		mustBegin(t, s, k)
		path, err := s.CommitCreate("   ")
		if err != nil || path != "" {
			t.Fatalf("blank %v create returned (%q, %v)", k, path, err)
		}
		if s.Mode() != ModeNormal {
			t.Fatalf("expected normal mode, got %v", s.Mode())
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty vault, found %d entries", len(entries))
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("snapshot changed after blank creates")
	}
}

func TestCommitCreateRejectsInvalidNames(t *testing.T) {
	root := t.TempDir()
	s := newState(t, root)

	for _, name := range []string{"..", ".", ".hidden", "a/b", `a\b`, "../escape", RootCategory} {
		mustBegin(t, s, KindCategory)
		if _, err := s.CommitCreate(name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("CommitCreate(%q) = %v, want ErrInvalidName", name, err)
		}
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Fatalf("invalid names created entries: %v", entries)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("escape directory was created outside the vault")
	}
}

func TestCreateCategorySelectsIt(t *testing.T) {
	root := t.TempDir()
	s := newState(t, root)

	mustBegin(t, s, KindCategory)
	if _, err := s.CommitCreate("work"); err != nil {
		t.Fatalf("CommitCreate returned error: %v", err)
	}

	snap := s.Snapshot()
	if snap.SelectedCategory() != "work" {
		t.Fatalf("expected work selected, got %q", snap.SelectedCategory())
	}

	mustBegin(t, s, KindCategory)
	if _, err := s.CommitCreate("work"); err != nil {
		t.Fatalf("creating an existing category should select it, got %v", err)
	}
}

func TestCreateCategoryClearsHidingFilter(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "home")
	s := newState(t, root)
	s.SetFilter("hom")

	mustBegin(t, s, KindCategory)
	if _, err := s.CommitCreate("work"); err != nil {
		t.Fatalf("CommitCreate returned error: %v", err)
	}

	snap := s.Snapshot()
	if snap.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", snap.Filter)
	}
	if snap.SelectedCategory() != "work" {
		t.Fatalf("expected work selected, got %q", snap.SelectedCategory())
	}
	if want := []string{RootCategory, "home", "work"}; !slices.Equal(snap.Categories, want) {
		t.Fatalf("categories = %v, want %v", snap.Categories, want)
	}
	assertValid(t, snap)
}

func TestCreateSubfolderSelectsIt(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "work")

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	mustBegin(t, s, KindSubfolder)
	path, err := s.CommitCreate("q3")
	if err != nil {
		t.Fatalf("CommitCreate returned error: %v", err)
	}
	if want := filepath.Join(root, "work", "q3"); path != want {
		t.Fatalf("created %q, want %q", path, want)
	}

	snap := s.Snapshot()
	if snap.Subfolder == NoSelection || snap.Subfolders[snap.Subfolder] != "q3" {
		t.Fatalf("expected q3 selected, got %d in %v", snap.Subfolder, snap.Subfolders)
	}
}

func TestTwoPaneLayoutHasNoSubfolders(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, filepath.Join("work", "q3"))

	s := newState(t, root, WithLayout(LayoutTwoPane))
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	if len(s.Snapshot().Subfolders) != 0 {
		t.Fatalf("two-pane layout listed subfolders")
	}
	if err := s.BeginCreate(KindSubfolder); !errors.Is(err, ErrNoSubfolders) {
		t.Fatalf("BeginCreate(subfolder) = %v, want ErrNoSubfolders", err)
	}
	if s.Mode() != ModeNormal {
		t.Fatalf("mode changed on rejected create: %v", s.Mode())
	}
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	s := newState(t, t.TempDir())

	mustBegin(t, s, KindNote)
	if err := s.BeginCreate(KindCategory); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("nested BeginCreate = %v", err)
	}
	if err := s.BeginDelete(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("BeginDelete while creating = %v", err)
	}
	if err := s.BeginSearch(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("BeginSearch while creating = %v", err)
	}
	if s.Mode() != ModeCreatingNote {
		t.Fatalf("mode changed: %v", s.Mode())
	}

	s.Cancel()
	if s.Mode() != ModeNormal {
		t.Fatalf("expected normal after cancel, got %v", s.Mode())
	}
	if _, err := s.Commit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Commit in normal mode = %v", err)
	}
	if err := s.ConfirmDelete(true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("ConfirmDelete in normal mode = %v", err)
	}
}

func TestNavigationIgnoredOutsideNormal(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a", "b")

	s := newState(t, root)
	mustBegin(t, s, KindCategory)

	s.MoveSelection(Down)
	s.CycleFocus(Down)
	if snap := s.Snapshot(); snap.Category != 0 || snap.Focus != FocusCategories {
		t.Fatalf("navigation applied while creating: %+v", snap)
	}
}

func TestSearchCommitKeepsAndCancelRestoresFilter(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "work", "home")

	s := newState(t, root)
	s.SetFilter("o")

	if err := s.BeginSearch(); err != nil {
		t.Fatalf("BeginSearch returned error: %v", err)
	}
	s.SetInput("wor")
	if got := s.Snapshot().Categories; !slices.Equal(got, []string{RootCategory, "work"}) {
		t.Fatalf("live filter categories = %v", got)
	}

	s.Cancel()
	if s.Filter() != "o" || s.Mode() != ModeNormal {
		t.Fatalf("cancel should restore filter %q, got %q in %v", "o", s.Filter(), s.Mode())
	}

	if err := s.BeginSearch(); err != nil {
		t.Fatalf("BeginSearch returned error: %v", err)
	}
	s.SetInput("hom")
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if s.Filter() != "hom" || s.Mode() != ModeNormal {
		t.Fatalf("commit should keep filter, got %q in %v", s.Filter(), s.Mode())
	}
}

func TestSearchCancelRestoresCategory(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "home", "work", "work/drafts")

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}
	if err := s.SelectSubfolder("drafts"); err != nil {
		t.Fatalf("SelectSubfolder returned error: %v", err)
	}

	if err := s.BeginSearch(); err != nil {
		t.Fatalf("BeginSearch returned error: %v", err)
	}
	s.SetInput("zz")
	if got := s.Snapshot().SelectedCategory(); got != RootCategory {
		t.Fatalf("live filter should fall back to root, got %q", got)
	}

	s.Cancel()
	snap := s.Snapshot()
	if snap.Filter != "" || snap.Mode != ModeNormal {
		t.Fatalf("cancel should restore empty filter, got %q in %v", snap.Filter, snap.Mode)
	}
	if got := snap.SelectedCategory(); got != "work" {
		t.Fatalf("cancel should restore category work, got %q", got)
	}
	if snap.Subfolder == NoSelection || snap.Subfolders[snap.Subfolder] != "drafts" {
		t.Fatalf("cancel should restore subfolder drafts, got %d in %v", snap.Subfolder, snap.Subfolders)
	}
	assertValid(t, snap)
}

func TestConfirmDeleteFalseChangesNothing(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, filepath.Join("work", "q3"))
	writeNote(t, filepath.Join(root, "work", "plan.md"), "x", time.Now())

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	for _, focus := range []Focus{FocusCategories, FocusSubfolders, FocusFiles} {
		s.SetFocus(focus)
		before := s.Snapshot()

		if err := s.BeginDelete(); err != nil {
			t.Fatalf("BeginDelete returned error: %v", err)
		}
		if err := s.ConfirmDelete(false); err != nil {
			t.Fatalf("ConfirmDelete(false) returned error: %v", err)
		}

		if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
			t.Fatalf("declined delete changed state:\nbefore %+v\nafter  %+v", before, after)
		}
	}

	for _, p := range []string{"work", filepath.Join("work", "q3"), filepath.Join("work", "plan.md")} {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Fatalf("declined delete removed %s: %v", p, err)
		}
	}
}

func TestCancelConfirmDeleteIsDecline(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "work")

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete returned error: %v", err)
	}
	s.Cancel()

	if s.Mode() != ModeNormal {
		t.Fatalf("expected normal mode, got %v", s.Mode())
	}
	if _, err := os.Stat(filepath.Join(root, "work")); err != nil {
		t.Fatalf("cancel removed category: %v", err)
	}
}

func TestDeleteActiveCategoryResetsToRoot(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a", "work", filepath.Join("work", "q3"))
	writeNote(t, filepath.Join(root, "work", "q3", "deep.md"), "x", time.Now())

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	if target, ok := s.DeleteTarget(); !ok || target != filepath.Join(root, "work") {
		t.Fatalf("DeleteTarget = (%q, %v)", target, ok)
	}
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete returned error: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("ConfirmDelete returned error: %v", err)
	}

	snap := s.Snapshot()
	assertValid(t, snap)
	if snap.Category != 0 || snap.SelectedCategory() != RootCategory {
		t.Fatalf("expected root category after delete, got %d (%q)", snap.Category, snap.SelectedCategory())
	}
	if slices.Contains(snap.Categories, "work") {
		t.Fatalf("deleted category still listed: %v", snap.Categories)
	}
	if _, err := os.Stat(filepath.Join(root, "work")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected work removed, got %v", err)
	}
}

func TestRootCategoryIsNeverDeleted(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "keep.md"), "x", time.Now())

	s := newState(t, root)
	if _, ok := s.DeleteTarget(); ok {
		t.Fatalf("root category offered as delete target")
	}

	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete returned error: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("ConfirmDelete returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "keep.md")); err != nil {
		t.Fatalf("root contents touched: %v", err)
	}
}

func TestDeleteSubfolderAndFile(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, filepath.Join("work", "q3"))
	writeNote(t, filepath.Join(root, "work", "q3", "deep.md"), "x", time.Now())
	writeNote(t, filepath.Join(root, "work", "plan.md"), "x", time.Now())

	s := newState(t, root)
	if err := s.SelectCategory("work"); err != nil {
		t.Fatalf("SelectCategory returned error: %v", err)
	}

	s.SetFocus(FocusFiles)
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete returned error: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("ConfirmDelete(file) returned error: %v", err)
	}
	if snap := s.Snapshot(); len(snap.Files) != 0 || snap.File != NoSelection {
		t.Fatalf("expected no files left, got %v (%d)", fileNames(snap), snap.File)
	}

	s.SetFocus(FocusSubfolders)
	if err := s.SelectSubfolder("q3"); err != nil {
		t.Fatalf("SelectSubfolder returned error: %v", err)
	}
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete returned error: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("ConfirmDelete(subfolder) returned error: %v", err)
	}

	snap := s.Snapshot()
	assertValid(t, snap)
	if len(snap.Subfolders) != 0 || snap.Subfolder != NoSelection {
		t.Fatalf("expected subfolder removed, got %v (%d)", snap.Subfolders, snap.Subfolder)
	}
	if snap.SelectedCategory() != "work" {
		t.Fatalf("subfolder delete changed category to %q", snap.SelectedCategory())
	}
}

func TestCreateAndDeleteRoundTrip(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "existing")
	writeNote(t, filepath.Join(root, "root.md"), "x", time.Now())

	s := newState(t, root)
	before := s.Snapshot()

	mustBegin(t, s, KindCategory)
	if _, err := s.CommitCreate("trip"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	mustBegin(t, s, KindNote)
	if _, err := s.CommitCreate("leg"); err != nil {
		t.Fatalf("create note: %v", err)
	}

	s.SetFocus(FocusFiles)
	if f, ok := s.SelectedFile(); !ok || f.Name != "leg.md" {
		t.Fatalf("expected leg.md selected, got %+v", f)
	}
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	s.SetFocus(FocusCategories)
	if err := s.BeginDelete(); err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	if err := s.ConfirmDelete(true); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	after := s.Snapshot()
	if !slices.Equal(before.Categories, after.Categories) {
		t.Fatalf("categories differ: %v vs %v", before.Categories, after.Categories)
	}
	if !slices.Equal(fileNames(before), fileNames(after)) {
		t.Fatalf("files differ: %v vs %v", fileNames(before), fileNames(after))
	}
}

func mustBegin(t *testing.T, s *State, k Kind) {
	t.Helper()
	if err := s.BeginCreate(k); err != nil {
		t.Fatalf("BeginCreate(%v) returned error: %v", k, err)
	}
}
