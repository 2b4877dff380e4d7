package vault

import (
	"slices"
	"sort"
	"strings"
)

// Refresh regenerates categories, subfolders and files from the filesystem in
// dependency order and re-validates every selection.
func (s *State) Refresh() Snapshot {
	s.refreshCategories()
	s.refreshSubfolders()
	s.refreshFiles()
	return s.Snapshot()
}

func (s *State) refreshCategories() {
	dirs, err := s.handler.ListDirs(s.root)
	if err != nil {
		s.log.WithError(err).WithField("dir", s.root).Warn("failed to list categories")
	}

	categories := []string{RootCategory}
	for _, d := range dirs {
		if d == RootCategory || !s.matches(d) {
			continue
		}
		categories = append(categories, d)
	}
	s.categories = categories

	if !slices.Contains(s.categories, s.category) {
		s.category = RootCategory
		s.subfolder = ""
	}
}

func (s *State) refreshSubfolders() {
	if s.layout == LayoutTwoPane {
		s.subfolders = nil
		s.subfolder = ""
		return
	}

	dir := s.CategoryDir()
	dirs, err := s.handler.ListDirs(dir)
	if err != nil {
		s.log.WithError(err).WithField("dir", dir).Warn("failed to list subfolders")
	}
	s.subfolders = dirs

	if s.subfolder != "" && !slices.Contains(s.subfolders, s.subfolder) {
		s.subfolder = ""
	}
}

func (s *State) refreshFiles() {
	dir := s.Dir()
	notes, err := s.handler.ListNotes(dir)
	if err != nil {
		s.log.WithError(err).WithField("dir", dir).Warn("failed to list notes")
	}

	files := notes[:0]
	for _, n := range notes {
		if s.matches(n.Name) {
			files = append(files, n)
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
	s.files = files

	if dir != s.filesDir {
		s.filesDir = dir
		s.file = 0
	}
	s.clampFile()
}

func (s *State) clampFile() {
	switch {
	case len(s.files) == 0:
		s.file = NoSelection
	case s.file < 0:
		s.file = 0
	case s.file >= len(s.files):
		s.file = len(s.files) - 1
	}
}

func (s *State) matches(name string) bool {
	if s.filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(s.filter))
}
