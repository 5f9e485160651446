package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	forceQuit key.Binding

	// main screen
	quit     key.Binding
	down     key.Binding
	up       key.Binding
	open     key.Binding
	toggle   key.Binding
	newTodo  key.Binding
	deleteIt key.Binding
	edit     key.Binding

	// detail screen
	switchEdit key.Binding
	back       key.Binding
	cancel     key.Binding
	save       key.Binding
	nextField  key.Binding
	prevField  key.Binding
	backspace  key.Binding
	newline    key.Binding

	// confirm dialog
	yes key.Binding
	no  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		toggle:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle")),
		newTodo:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		deleteIt: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),

		switchEdit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		nextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
		prevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		backspace:  key.NewBinding(key.WithKeys("backspace")),
		newline:    key.NewBinding(key.WithKeys("enter")),

		yes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "no")),
	}
}

func (k keyMap) mainHelp() []key.Binding {
	return []key.Binding{k.open, k.edit, k.toggle, k.newTodo, k.deleteIt, k.down, k.up, k.quit}
}

func (k keyMap) viewHelp() []key.Binding {
	return []key.Binding{k.switchEdit, k.back}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.nextField, k.save, k.cancel}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.yes, k.no}
}
