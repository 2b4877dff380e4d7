package browser

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/knot/internal/cache"
	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/logging"
	"github.com/Paintersrp/knot/internal/state"
	gitsync "github.com/Paintersrp/knot/internal/sync"
	"github.com/Paintersrp/knot/internal/vault"
)

const previewCacheBytes = 4 << 20

// Model is the vault browser. All state transitions go through the wrapped
// vault.State; the model only owns widgets and terminal geometry.
type Model struct {
	ctx    context.Context
	vault  *vault.State
	cfg    *config.Config
	syncer *gitsync.Syncer
	last   *state.SyncStatus
	log    *logrus.Entry

	keys    *keyMap
	help    help.Model
	input   textinput.Model
	preview viewport.Model
	cache   *cache.Cache
	stats   vault.Stats

	// previewKey identifies the note, revision and width currently shown.
	previewKey string

	copy func(string) error

	width  int
	height int
}

// New wires the browser to the application state and an opened vault.
func New(s *state.State, v *vault.State) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128

	last := s.SyncStatus
	if last == nil {
		last = &state.SyncStatus{}
	}

	log := logging.For(s.Logger, "tui")

	m := &Model{
		ctx:     context.Background(),
		vault:   v,
		cfg:     s.Config,
		syncer:  gitsync.New(v.Root(), s.Config.Sync, logging.For(s.Logger, "sync")),
		last:    last,
		log:     log,
		keys:    newKeyMap(),
		help:    help.New(),
		input:   ti,
		preview: viewport.New(0, 0),
		cache:   cache.New(previewCacheBytes),
		copy:    clipboard.WriteAll,
		width:   100,
		height:  30,
	}
	m.resize()
	m.updatePreview()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Run opens the configured vault and blocks until the browser exits.
func Run(s *state.State) error {
	v, err := s.OpenVault()
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}

	m := New(s, v)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
