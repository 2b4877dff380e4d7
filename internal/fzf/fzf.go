package fzf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/pathutil"
	"github.com/Paintersrp/knot/internal/preview"
)

// ErrNoSelection is returned when the finder is closed without a pick.
var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder picks a note from the whole vault with a live preview.
type FuzzyFinder struct {
	handler *handler.FileHandler
	Header  string
	notes   []handler.Note
	labels  []string
}

func NewFuzzyFinder(h *handler.FileHandler, header string) *FuzzyFinder {
	return &FuzzyFinder{handler: h, Header: header}
}

// Find lists every note, newest first, and returns the one the user picks.
func (f *FuzzyFinder) Find(query string) (handler.Note, error) {
	if err := f.load(); err != nil {
		return handler.Note{}, err
	}
	if len(f.notes) == 0 {
		return handler.Note{}, fmt.Errorf("vault %s has no notes", f.handler.VaultDir())
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.notes, func(i int) string {
		return f.labels[i]
	}, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return handler.Note{}, ErrNoSelection
	}
	if err != nil {
		return handler.Note{}, fmt.Errorf("error selecting note: %w", err)
	}

	return f.notes[idx], nil
}

func (f *FuzzyFinder) load() error {
	notes, err := f.handler.WalkNotes(nil)
	if err != nil {
		return fmt.Errorf("error listing notes: %w", err)
	}

	sortNewestFirst(notes)
	f.notes = notes
	f.labels = Labels(f.handler.VaultDir(), notes)
	return nil
}

// Labels shows each note by its vault-relative path.
func Labels(vaultDir string, notes []handler.Note) []string {
	labels := make([]string, len(notes))
	for i, n := range notes {
		rel, err := pathutil.VaultRelative(vaultDir, n.Path)
		if err != nil {
			rel = n.Path
		}
		labels[i] = rel
	}
	return labels
}

func sortNewestFirst(notes []handler.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].ModTime.Equal(notes[j].ModTime) {
			return notes[i].ModTime.After(notes[j].ModTime)
		}
		return notes[i].Path < notes[j].Path
	})
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, _, err := preview.Load(f.notes[i].Path, constants.PreviewMaxBytes)
	if err != nil {
		return "Error reading file"
	}

	// leave room for the preview window border
	return preview.Render(preview.Classify(content), w-2, h-2)
}
