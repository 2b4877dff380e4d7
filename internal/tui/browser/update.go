package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/knot/internal/note"
	gitsync "github.com/Paintersrp/knot/internal/sync"
	"github.com/Paintersrp/knot/internal/vault"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case note.EditorFinishedMsg:
		m.handleEditorFinished(msg)

	case gitsync.FinishedMsg:
		m.handleSyncFinished(msg)

	case tea.KeyMsg:
		// Status text lives until the next key press.
		m.vault.SetStatus("")

		switch m.vault.Mode() {
		case vault.ModeNormal:
			cmd = m.handleNormalUpdate(msg)
		case vault.ModeConfirmingDelete:
			m.handleConfirmUpdate(msg)
		default:
			cmd = m.handleInputUpdate(msg)
		}

	default:
		// cursor blink
		if m.input.Focused() {
			m.input, cmd = m.input.Update(msg)
		}
	}

	m.updatePreview()
	return m, cmd
}

func (m *Model) handleNormalUpdate(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.nextPane):
		m.vault.CycleFocus(vault.Down)
	case key.Matches(msg, m.keys.prevPane):
		m.vault.CycleFocus(vault.Up)
	case key.Matches(msg, m.keys.prevCat):
		m.vault.MoveCategory(vault.Up)
	case key.Matches(msg, m.keys.nextCat):
		m.vault.MoveCategory(vault.Down)
	case key.Matches(msg, m.keys.up):
		m.vault.MoveSelection(vault.Up)
	case key.Matches(msg, m.keys.down):
		m.vault.MoveSelection(vault.Down)
	case key.Matches(msg, m.keys.newCategory):
		return m.beginCreate(vault.KindCategory)
	case key.Matches(msg, m.keys.newFolder):
		return m.beginCreate(vault.KindSubfolder)
	case key.Matches(msg, m.keys.newNote):
		return m.beginCreate(vault.KindNote)
	case key.Matches(msg, m.keys.remove):
		if err := m.vault.BeginDelete(); err != nil {
			m.vault.SetStatus(err.Error())
		}
	case key.Matches(msg, m.keys.search):
		return m.beginSearch()
	case key.Matches(msg, m.keys.back):
		snap := m.vault.Snapshot()
		if snap.Subfolder != vault.NoSelection {
			m.vault.ClearSubfolder()
		} else if snap.Filter != "" {
			m.vault.SetFilter("")
		}
	case key.Matches(msg, m.keys.open):
		return m.openSelected()
	case key.Matches(msg, m.keys.sync):
		m.vault.SetStatus("Syncing...")
		return gitsync.Cmd(m.ctx, m.syncer, m.cfg.Sync.Pause)
	case key.Matches(msg, m.keys.refresh):
		m.cache.Purge()
		m.vault.Refresh()
	case key.Matches(msg, m.keys.copyPath):
		m.copySelected()
	case key.Matches(msg, m.keys.scrollDown):
		m.preview.HalfViewDown()
	case key.Matches(msg, m.keys.scrollUp):
		m.preview.HalfViewUp()
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}

	return nil
}

func (m *Model) handleInputUpdate(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.vault.Cancel()
		m.endInput()
		return nil

	case key.Matches(msg, m.keys.submit):
		creatingNote := m.vault.Mode() == vault.ModeCreatingNote
		path, err := m.vault.Commit()
		m.endInput()
		if err != nil {
			m.logError("commit", err)
			return nil
		}
		if creatingNote && path != "" {
			if err := note.RunPostCreateHooks(m.cfg, path); err != nil {
				m.vault.SetStatus(fmt.Sprintf("post-create hook failed: %v", err))
			}
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.vault.SetInput(m.input.Value())
	return cmd
}

func (m *Model) handleConfirmUpdate(msg tea.KeyMsg) {
	err := m.vault.ConfirmDelete(key.Matches(msg, m.keys.confirm))
	if err != nil {
		m.logError("delete", err)
		return
	}
	m.cache.Purge()
}

func (m *Model) handleEditorFinished(msg note.EditorFinishedMsg) {
	m.vault.Refresh()
	m.vault.SelectFile(msg.Path)

	if msg.Err != nil {
		m.log.WithError(msg.Err).WithField("path", msg.Path).Warn("editor failed")
		m.vault.SetStatus(fmt.Sprintf("Editor error: %v", msg.Err))
	}
}

func (m *Model) handleSyncFinished(msg gitsync.FinishedMsg) {
	at := msg.Result.Finished
	if at.IsZero() {
		at = time.Now()
	}

	err := msg.Err
	if err == nil {
		err = msg.Result.Err()
	}
	m.last.Record(at, err == nil)
	m.cache.Purge()
	m.vault.Refresh()

	if err != nil {
		m.log.WithError(err).Warn("sync failed")
		m.vault.SetStatus(fmt.Sprintf("Sync failed: %v", err))
		return
	}
	m.vault.SetStatus("Sync complete")
}

func (m *Model) beginCreate(k vault.Kind) tea.Cmd {
	if err := m.vault.BeginCreate(k); err != nil {
		m.vault.SetStatus(createError(k, err))
		return nil
	}

	m.input.Reset()
	m.input.Placeholder = fmt.Sprintf("%s name", k)
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) beginSearch() tea.Cmd {
	if err := m.vault.BeginSearch(); err != nil {
		m.vault.SetStatus(err.Error())
		return nil
	}

	m.input.Reset()
	m.input.Placeholder = "filter"
	m.input.SetValue(m.vault.Filter())
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.Reset()
}

// openSelected edits the selected note from the files pane. From the other
// panes enter steps focus towards the files.
func (m *Model) openSelected() tea.Cmd {
	if m.vault.Focus() != vault.FocusFiles {
		m.vault.CycleFocus(vault.Down)
		return nil
	}

	f, ok := m.vault.SelectedFile()
	if !ok {
		return nil
	}

	m.log.WithField("path", f.Path).Debug("opening note")
	return note.OpenCmd(f.Path, m.cfg)
}

func (m *Model) copySelected() {
	f, ok := m.vault.SelectedFile()
	if !ok {
		m.vault.SetStatus("No note selected")
		return
	}

	if err := m.copy(f.Path); err != nil {
		m.log.WithError(err).Warn("clipboard write failed")
		m.vault.SetStatus(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.vault.SetStatus(fmt.Sprintf("Copied %s", f.Path))
}

// logError records failures the vault has not already reported in its
// status line.
func (m *Model) logError(op string, err error) {
	var mutErr *vault.MutationError
	if errors.As(err, &mutErr) {
		return
	}
	m.log.WithError(err).WithField("op", op).Warn("action rejected")
	m.vault.SetStatus(err.Error())
}

func createError(k vault.Kind, err error) string {
	if errors.Is(err, vault.ErrNoSubfolders) {
		return "Folders are disabled in the two-pane layout"
	}
	return fmt.Sprintf("Cannot create %s: %v", k, err)
}
