package vault

import (
	"path/filepath"
	"strings"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/handler"
)

// BeginSearch enters Searching, remembering the filter to restore on cancel.
func (s *State) BeginSearch() error {
	if s.mode != ModeNormal {
		return ErrInvalidTransition
	}
	s.mode = ModeSearching
	s.preSearch = s.filter
	s.preSearchCategory = s.category
	s.preSearchSubfolder = s.subfolder
	s.input = s.filter
	return nil
}

// BeginCreate enters the creation mode for k with an empty input buffer.
func (s *State) BeginCreate(k Kind) error {
	if s.mode != ModeNormal {
		return ErrInvalidTransition
	}
	if k == KindSubfolder && s.layout == LayoutTwoPane {
		return ErrNoSubfolders
	}
	s.mode = k.mode()
	s.input = ""
	return nil
}

// SetInput mirrors the text input buffer. While searching the filter follows it.
func (s *State) SetInput(text string) {
	switch {
	case s.mode == ModeSearching:
		s.input = text
		s.SetFilter(text)
	case s.mode.Creating():
		s.input = text
	}
}

// Commit finishes the active text-entry mode: it creates the pending item or
// keeps the typed search filter.
func (s *State) Commit() (string, error) {
	switch {
	case s.mode == ModeSearching:
		s.mode = ModeNormal
		s.input = ""
		s.Refresh()
		return "", nil
	case s.mode.Creating():
		return s.CommitCreate(s.input)
	}
	return "", ErrInvalidTransition
}

// CommitCreate creates the item for the active creation mode and returns its
// path. Blank names are ignored. The mode always returns to Normal and the
// vault is refreshed; failures are also recorded in the status line.
func (s *State) CommitCreate(name string) (string, error) {
	if !s.mode.Creating() {
		return "", ErrInvalidTransition
	}

	mode := s.mode
	s.mode = ModeNormal
	s.input = ""

	name = strings.TrimSpace(name)
	if name == "" {
		s.Refresh()
		return "", nil
	}

	var (
		path string
		err  error
		op   string
	)

	switch mode {
	case ModeCreatingCategory:
		op = "create category"
		if err = validName(name); err == nil {
			path, err = s.handler.MakeDir(s.root, name)
			if err == nil {
				// an active filter would hide the new category again
				s.filter = ""
				s.category = name
				s.subfolder = ""
			}
		}
	case ModeCreatingSubfolder:
		op = "create folder"
		if err = validName(name); err == nil {
			path, err = s.handler.MakeDir(s.CategoryDir(), name)
			if err == nil {
				s.subfolder = name
			}
		}
	case ModeCreatingNote:
		op = "create note"
		if !handler.HasExtension(name, constants.NoteExt) {
			name += constants.NoteExt
		}
		if err = validName(name); err == nil {
			path, err = s.handler.CreateNote(s.Dir(), name, constants.DefaultNoteHeading)
		}
	}

	s.Refresh()

	if err != nil {
		if path == "" {
			path = name
		}
		return "", s.fail(op, path, err)
	}

	s.log.WithField("path", path).Infof("%s", op)
	return path, nil
}

// Cancel leaves the active mode without side effects. Searching restores the
// filter and the category and subfolder selections from before the search.
func (s *State) Cancel() {
	switch {
	case s.mode == ModeSearching:
		s.mode = ModeNormal
		s.input = ""
		s.filter = s.preSearch
		s.category = s.preSearchCategory
		s.subfolder = s.preSearchSubfolder
		s.Refresh()
	case s.mode.Creating(), s.mode == ModeConfirmingDelete:
		s.mode = ModeNormal
		s.input = ""
		s.Refresh()
	}
}

// BeginDelete asks for confirmation. The target is resolved at confirmation.
func (s *State) BeginDelete() error {
	if s.mode != ModeNormal {
		return ErrInvalidTransition
	}
	s.mode = ModeConfirmingDelete
	return nil
}

// DeleteTarget resolves the path that ConfirmDelete(true) would remove from the
// focused pane and its selection. The root category is never a target.
func (s *State) DeleteTarget() (string, bool) {
	switch s.focus {
	case FocusCategories:
		if s.category != RootCategory {
			return filepath.Join(s.root, s.category), true
		}
	case FocusSubfolders:
		if s.subfolder != "" {
			return filepath.Join(s.CategoryDir(), s.subfolder), true
		}
	case FocusFiles:
		if f, ok := s.SelectedFile(); ok {
			return f.Path, true
		}
	}
	return "", false
}

// ConfirmDelete removes the target when yes is true. Either way the mode
// returns to Normal and the vault is refreshed.
func (s *State) ConfirmDelete(yes bool) error {
	if s.mode != ModeConfirmingDelete {
		return ErrInvalidTransition
	}
	s.mode = ModeNormal

	if !yes {
		s.Refresh()
		return nil
	}

	target, ok := s.DeleteTarget()
	if !ok {
		s.Refresh()
		return nil
	}

	err := s.handler.Remove(target)
	if err == nil {
		switch s.focus {
		case FocusCategories:
			s.category = RootCategory
			s.subfolder = ""
		case FocusSubfolders:
			s.subfolder = ""
		}
	}

	s.Refresh()

	if err != nil {
		return s.fail("delete", target, err)
	}

	s.log.WithField("path", target).Info("deleted")
	return nil
}

func (s *State) fail(op, path string, err error) error {
	merr := &MutationError{Op: op, Path: path, Err: err}
	s.status = merr.Error()
	s.log.WithError(err).WithField("path", path).Warnf("%s failed", op)
	return merr
}

func validName(name string) error {
	if name == "." || name == ".." ||
		strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) ||
		name == RootCategory {
		return ErrInvalidName
	}
	return nil
}
