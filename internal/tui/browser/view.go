package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/preview"
	"github.com/Paintersrp/knot/internal/vault"
)

const minPaneWidth = 12

type geometry struct {
	folders int
	notes   int
	preview int
	body    int
}

func (m *Model) View() string {
	snap := m.vault.Snapshot()
	g := m.geometry(snap)

	header := m.headerView(snap)
	tabs := m.tabsView(snap)
	footer := m.footerView(snap)

	var columns []string
	if snap.Layout == vault.LayoutThreePane {
		columns = append(columns, m.foldersView(snap, g))
	}
	columns = append(columns, m.notesView(snap, g), m.previewView(snap, g))
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, footer))
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.input.Width = max(m.width/2, 20)
}

func (m *Model) geometry(snap vault.Snapshot) geometry {
	total := max(m.width-appStyle.GetHorizontalFrameSize(), 3*minPaneWidth)

	var g geometry
	if snap.Layout == vault.LayoutThreePane {
		g.folders = max(total/5, minPaneWidth)
		g.notes = max(total*3/10, minPaneWidth)
	} else {
		g.notes = max(total*7/20, minPaneWidth)
	}
	g.preview = max(total-g.folders-g.notes, minPaneWidth)

	// header and tabs take one line each
	chrome := 2 + lipgloss.Height(m.footerView(snap))
	g.body = max(m.height-chrome, 3+paneStyle.GetVerticalFrameSize())

	return g
}

func (m *Model) headerView(snap vault.Snapshot) string {
	left := titleStyle.Render(constants.AppName) + dimStyle.Render(snap.Root)
	right := syncStyle.Render("Last Sync: " + m.last.Line())

	gap := m.width - appStyle.GetHorizontalFrameSize() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) tabsView(snap vault.Snapshot) string {
	focused := snap.Focus == vault.FocusCategories && snap.Mode == vault.ModeNormal

	tabs := make([]string, len(snap.Categories))
	for i, name := range snap.Categories {
		tabs[i] = tabStyle(i, i == snap.Category, focused).Render(name)
	}

	line := strings.Join(tabs, " ")
	return lipgloss.NewStyle().MaxWidth(max(m.width-appStyle.GetHorizontalFrameSize(), 1)).Render(line)
}

func (m *Model) foldersView(snap vault.Snapshot, g geometry) string {
	title := "Folders"
	if snap.Subfolder == vault.NoSelection {
		title += dimStyle.Render(" (all)")
	}

	return m.listPane(title, snap.Subfolders, snap.Subfolder, snap.Focus == vault.FocusSubfolders, g.folders, g.body)
}

func (m *Model) notesView(snap vault.Snapshot, g geometry) string {
	names := make([]string, len(snap.Files))
	for i, f := range snap.Files {
		names[i] = f.Name
	}

	title := "Notes"
	if snap.Filter != "" {
		title += dimStyle.Render(fmt.Sprintf(" /%s", snap.Filter))
	}

	return m.listPane(title, names, snap.File, snap.Focus == vault.FocusFiles, g.notes, g.body)
}

func (m *Model) previewView(snap vault.Snapshot, g geometry) string {
	title := "Preview"
	if snap.File != vault.NoSelection {
		f := snap.Files[snap.File]
		title = fmt.Sprintf(
			"%s %s",
			f.Name,
			dimStyle.Render(fmt.Sprintf(
				"%s · %d words · ~%d min",
				f.ModTime.Format("Jan 02 15:04"),
				m.stats.Words,
				m.stats.Minutes,
			)),
		)
	}

	width := g.preview - paneStyle.GetHorizontalFrameSize()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		paneTitleStyle.Copy().MaxWidth(width).Render(title),
		m.preview.View(),
	)

	return pane(paneStyle, content, g.preview, g.body)
}

// listPane renders a titled list, scrolled so the selected row is visible.
func (m *Model) listPane(title string, items []string, selected int, focused bool, width, height int) string {
	style := paneStyle
	if focused && m.vault.Mode() == vault.ModeNormal {
		style = focusedPaneStyle
	}

	inner := width - style.GetHorizontalFrameSize()
	rows := height - style.GetVerticalFrameSize() - 1

	lines := []string{paneTitleStyle.Copy().MaxWidth(inner).Render(title)}
	if len(items) == 0 {
		lines = append(lines, dimStyle.Render("empty"))
	}

	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	for i := start; i < len(items) && i < start+rows; i++ {
		item := itemStyle
		if i == selected {
			item = selectedItemStyle
			if focused {
				item = focusedItemStyle
			}
		}
		lines = append(lines, item.Copy().Width(inner).MaxWidth(inner).Render(items[i]))
	}

	return pane(style, strings.Join(lines, "\n"), width, height)
}

func (m *Model) footerView(snap vault.Snapshot) string {
	var lines []string

	switch {
	case snap.Mode == vault.ModeConfirmingDelete:
		lines = append(lines, m.confirmView())
	case snap.Mode != vault.ModeNormal:
		label := dimStyle.Render(m.inputLabel(snap))
		lines = append(lines,
			label,
			inputStyle.Render(m.input.View()),
			m.help.View(inputKeyMap{keys: m.keys}),
		)
	default:
		lines = append(lines, m.help.View(m.keys))
	}

	if snap.Status != "" {
		lines = append(lines, statusStyle(snap.Status))
	} else {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m *Model) confirmView() string {
	target, ok := m.vault.DeleteTarget()
	if !ok {
		return confirmStyle.Render("Nothing to delete here. Press any key to continue.")
	}

	rel, err := filepath.Rel(m.vault.Root(), target)
	if err != nil {
		rel = target
	}

	return confirmStyle.Render(fmt.Sprintf("Delete %s? [y] yes · any other key: no", rel))
}

func (m *Model) inputLabel(snap vault.Snapshot) string {
	if snap.Mode == vault.ModeSearching {
		return "Search"
	}

	where := snap.SelectedCategory()
	if snap.Mode == vault.ModeCreatingCategory {
		where = constants.RootCategory
	} else if snap.Subfolder != vault.NoSelection && snap.Mode == vault.ModeCreatingNote {
		where = filepath.Join(where, snap.Subfolders[snap.Subfolder])
	}

	return fmt.Sprintf("%s in %s", upperFirst(snap.Mode.String()), where)
}

func (m *Model) updatePreview() {
	snap := m.vault.Snapshot()
	g := m.geometry(snap)

	m.preview.Width = max(g.preview-paneStyle.GetHorizontalFrameSize(), 1)
	m.preview.Height = max(g.body-paneStyle.GetVerticalFrameSize()-1, 1)

	f, ok := m.vault.SelectedFile()
	if !ok {
		m.previewKey = ""
		m.stats = vault.Stats{}
		m.preview.SetContent(dimStyle.Render("No note selected"))
		return
	}

	k := fmt.Sprintf("%s|%d|%d", f.Path, f.ModTime.UnixNano(), m.preview.Width)
	if k == m.previewKey {
		return
	}
	m.previewKey = k

	body, hit := m.cache.Get(k)
	if !hit {
		body = renderNote(f.Path, m.preview.Width)
		m.cache.Put(k, body)
	}

	m.preview.SetContent(body)
	m.preview.GotoTop()
	m.stats = m.vault.SelectedStats()
}

func renderNote(path string, width int) string {
	content, truncated, err := preview.Load(path, constants.PreviewMaxBytes)
	if err != nil {
		return statusStyle(fmt.Sprintf("cannot read note: %v", err))
	}

	out := preview.Render(preview.Classify(content), width, 0)
	if truncated {
		out += "\n" + dimStyle.Render("… (truncated)")
	}

	return out
}

func pane(style lipgloss.Style, content string, width, height int) string {
	return style.Copy().
		Width(width - style.GetHorizontalBorderSize()).
		Height(height - style.GetVerticalBorderSize()).
		MaxHeight(height).
		Render(content)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
