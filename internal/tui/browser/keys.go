package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit        key.Binding
	nextPane    key.Binding
	prevPane    key.Binding
	prevCat     key.Binding
	nextCat     key.Binding
	up          key.Binding
	down        key.Binding
	newCategory key.Binding
	newFolder   key.Binding
	newNote     key.Binding
	remove      key.Binding
	search      key.Binding
	back        key.Binding
	open        key.Binding
	sync        key.Binding
	refresh     key.Binding
	copyPath    key.Binding
	toggleHelp  key.Binding
	scrollDown  key.Binding
	scrollUp    key.Binding

	submit  key.Binding
	cancel  key.Binding
	confirm key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		nextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		prevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		prevCat: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev category"),
		),
		nextCat: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next category"),
		),
		up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		newCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "new category"),
		),
		newFolder: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "new folder"),
		),
		newNote: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new note"),
		),
		remove: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear folder/filter"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "edit"),
		),
		sync: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sync"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "preview down"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "preview up"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "confirm"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "delete"),
		),
	}
}

func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.quit, k.nextPane, k.down, k.up, k.open,
		k.newNote, k.remove, k.search, k.sync, k.toggleHelp,
	}
}

func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prevCat, k.nextCat},
		{k.nextPane, k.prevPane, k.back, k.open},
		{k.newCategory, k.newFolder, k.newNote, k.remove},
		{k.search, k.sync, k.refresh, k.copyPath},
		{k.scrollDown, k.scrollUp, k.toggleHelp, k.quit},
	}
}

type inputKeyMap struct {
	keys *keyMap
}

func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.submit, k.keys.cancel}
}

func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
