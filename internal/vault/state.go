package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/pathutil"
)

const (
	RootCategory = constants.RootCategory
	NoSelection  = -1
)

type Focus int

const (
	FocusCategories Focus = iota
	FocusSubfolders
	FocusFiles
)

func (f Focus) String() string {
	switch f {
	case FocusCategories:
		return "categories"
	case FocusSubfolders:
		return "subfolders"
	case FocusFiles:
		return "files"
	}
	return fmt.Sprintf("Focus(%d)", int(f))
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeCreatingCategory
	ModeCreatingSubfolder
	ModeCreatingNote
	ModeSearching
	ModeConfirmingDelete
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeCreatingCategory:
		return "new category"
	case ModeCreatingSubfolder:
		return "new folder"
	case ModeCreatingNote:
		return "new note"
	case ModeSearching:
		return "search"
	case ModeConfirmingDelete:
		return "confirm delete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Creating reports whether m is one of the text-entry creation modes.
func (m Mode) Creating() bool {
	return m == ModeCreatingCategory || m == ModeCreatingSubfolder || m == ModeCreatingNote
}

type Kind int

const (
	KindCategory Kind = iota
	KindSubfolder
	KindNote
)

func (k Kind) mode() Mode {
	switch k {
	case KindSubfolder:
		return ModeCreatingSubfolder
	case KindNote:
		return ModeCreatingNote
	default:
		return ModeCreatingCategory
	}
}

func (k Kind) String() string {
	switch k {
	case KindSubfolder:
		return "subfolder"
	case KindNote:
		return "note"
	default:
		return "category"
	}
}

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

type Layout int

const (
	LayoutThreePane Layout = iota
	LayoutTwoPane
)

// ParseLayout maps the config value ("three" or "two") to a Layout.
func ParseLayout(s string) Layout {
	if s == "two" {
		return LayoutTwoPane
	}
	return LayoutThreePane
}

func (l Layout) panes() []Focus {
	if l == LayoutTwoPane {
		return []Focus{FocusCategories, FocusFiles}
	}
	return []Focus{FocusCategories, FocusSubfolders, FocusFiles}
}

type NoteFile = handler.Note

// Snapshot is an immutable view of the state for rendering.
type Snapshot struct {
	Root       string
	Layout     Layout
	Categories []string
	Subfolders []string
	Files      []NoteFile
	Category   int
	Subfolder  int
	File       int
	Filter     string
	Mode       Mode
	Focus      Focus
	Input      string
	Status     string
}

// SelectedCategory returns the name under the category cursor.
func (s Snapshot) SelectedCategory() string {
	return s.Categories[s.Category]
}

type Stats struct {
	Words   int
	Minutes int
}

// State mirrors the vault directory tree into lists and keeps the selections,
// filter and interaction mode consistent. It is owned by a single goroutine.
type State struct {
	root         string
	layout       Layout
	handler      *handler.FileHandler
	log          *logrus.Entry
	readingSpeed int

	categories []string
	subfolders []string
	files      []NoteFile

	category  string
	subfolder string
	file      int
	filesDir  string

	filter    string
	preSearch string
	mode      Mode
	focus     Focus
	input     string
	status    string

	// selections to restore when a search is cancelled
	preSearchCategory  string
	preSearchSubfolder string
}

type Option func(*State)

func WithLayout(l Layout) Option {
	return func(s *State) { s.layout = l }
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *State) {
		if log != nil {
			s.log = log
		}
	}
}

func WithHandler(h *handler.FileHandler) Option {
	return func(s *State) {
		if h != nil {
			s.handler = h
		}
	}
}

func WithReadingSpeed(wordsPerMinute int) Option {
	return func(s *State) {
		if wordsPerMinute > 0 {
			s.readingSpeed = wordsPerMinute
		}
	}
}

// New creates the vault root if needed and performs the first refresh.
func New(root string, opts ...Option) (*State, error) {
	root = pathutil.NormalizePath(root)
	if root == "" {
		return nil, fmt.Errorf("vault root is empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}

	if err := os.MkdirAll(abs, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create vault root %s: %w", abs, err)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &State{
		root:         abs,
		readingSpeed: constants.WordsPerMinute,
		log:          logrus.NewEntry(discard),
		category:     RootCategory,
		file:         NoSelection,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.handler == nil {
		s.handler = handler.NewFileHandler(abs)
	}
	s.log = s.log.WithField("component", "vault")

	s.Refresh()
	return s, nil
}

func (s *State) Root() string {
	return s.root
}

func (s *State) Layout() Layout {
	return s.layout
}

func (s *State) Mode() Mode {
	return s.mode
}

func (s *State) Focus() Focus {
	return s.focus
}

func (s *State) Filter() string {
	return s.filter
}

// SetStatus replaces the transient status line.
func (s *State) SetStatus(msg string) {
	s.status = msg
}

// Snapshot copies the current lists, selections and mode.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Root:       s.root,
		Layout:     s.layout,
		Categories: slices.Clone(s.categories),
		Subfolders: slices.Clone(s.subfolders),
		Files:      slices.Clone(s.files),
		Category:   s.categoryIndex(),
		Subfolder:  s.subfolderIndex(),
		File:       s.file,
		Filter:     s.filter,
		Mode:       s.mode,
		Focus:      s.focus,
		Input:      s.input,
		Status:     s.status,
	}
}

// SelectedFile returns the note under the file cursor.
func (s *State) SelectedFile() (NoteFile, bool) {
	if s.file == NoSelection || s.file >= len(s.files) {
		return NoteFile{}, false
	}
	return s.files[s.file], true
}

// CategoryDir is the directory of the selected category.
func (s *State) CategoryDir() string {
	if s.category == RootCategory {
		return s.root
	}
	return filepath.Join(s.root, s.category)
}

// Dir is the directory currently listed in the files pane.
func (s *State) Dir() string {
	if s.subfolder == "" {
		return s.CategoryDir()
	}
	return filepath.Join(s.CategoryDir(), s.subfolder)
}

func (s *State) categoryIndex() int {
	if i := slices.Index(s.categories, s.category); i >= 0 {
		return i
	}
	return 0
}

func (s *State) subfolderIndex() int {
	if s.subfolder == "" {
		return NoSelection
	}
	return slices.Index(s.subfolders, s.subfolder)
}
