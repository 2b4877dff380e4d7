package vault

import (
	"fmt"
	"slices"
)

// CycleFocus moves focus to the next or previous pane of the layout, wrapping.
func (s *State) CycleFocus(d Direction) {
	if s.mode != ModeNormal {
		return
	}

	panes := s.layout.panes()
	i := slices.Index(panes, s.focus)
	if i < 0 {
		s.focus = panes[0]
		return
	}
	s.focus = panes[wrap(i+int(d), len(panes))]
}

// SetFocus focuses f. Panes absent from the layout are ignored.
func (s *State) SetFocus(f Focus) {
	if s.mode != ModeNormal || !slices.Contains(s.layout.panes(), f) {
		return
	}
	s.focus = f
}

// MoveSelection moves the cursor of the focused pane by one with wraparound.
// Category and subfolder moves recompute the dependent lists.
func (s *State) MoveSelection(d Direction) {
	if s.mode != ModeNormal {
		return
	}

	switch s.focus {
	case FocusCategories:
		s.MoveCategory(d)
	case FocusSubfolders:
		s.moveSubfolder(d)
	case FocusFiles:
		if len(s.files) == 0 {
			return
		}
		s.file = wrap(s.file+int(d), len(s.files))
	}
}

// MoveCategory moves the category cursor regardless of focus.
func (s *State) MoveCategory(d Direction) {
	if s.mode != ModeNormal || len(s.categories) == 0 {
		return
	}

	next := s.categories[wrap(s.categoryIndex()+int(d), len(s.categories))]
	if next == s.category {
		return
	}
	s.category = next
	s.subfolder = ""
	s.refreshSubfolders()
	s.refreshFiles()
}

func (s *State) moveSubfolder(d Direction) {
	if len(s.subfolders) == 0 {
		return
	}

	i := s.subfolderIndex()
	switch {
	case i >= 0:
		i = wrap(i+int(d), len(s.subfolders))
	case d == Up:
		i = len(s.subfolders) - 1
	default:
		i = 0
	}
	s.subfolder = s.subfolders[i]
	s.refreshFiles()
}

// ClearSubfolder returns the files pane to the notes directly in the category.
func (s *State) ClearSubfolder() {
	if s.mode != ModeNormal || s.subfolder == "" {
		return
	}
	s.subfolder = ""
	s.refreshFiles()
}

// SelectCategory selects a category by name from the current listing.
func (s *State) SelectCategory(name string) error {
	if !slices.Contains(s.categories, name) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	if name != s.category {
		s.category = name
		s.subfolder = ""
	}
	s.refreshSubfolders()
	s.refreshFiles()
	return nil
}

// SelectSubfolder selects a subfolder of the current category by name. An
// empty name clears the subfolder.
func (s *State) SelectSubfolder(name string) error {
	if s.layout == LayoutTwoPane {
		return ErrNoSubfolders
	}
	if name != "" && !slices.Contains(s.subfolders, name) {
		return fmt.Errorf("%w: %q", ErrUnknownSubfolder, name)
	}
	s.subfolder = name
	s.refreshFiles()
	return nil
}

// SelectFile moves the file cursor to the note at path, if listed.
func (s *State) SelectFile(path string) bool {
	for i, f := range s.files {
		if f.Path == path {
			s.file = i
			return true
		}
	}
	return false
}

// SetFilter replaces the filter and refreshes everything. An empty query
// restores the unfiltered listing.
func (s *State) SetFilter(q string) {
	s.filter = q
	s.Refresh()
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
