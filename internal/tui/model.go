package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todotui/internal/app"
	"github.com/idilsaglam/todotui/internal/logging"
	"github.com/idilsaglam/todotui/internal/ui"
)

const defaultTick = 100 * time.Millisecond

// tickMsg re-renders the screen when no input arrived; it changes nothing.
type tickMsg time.Time

// Model adapts the controller to Bubble Tea: keys become controller calls,
// View draws the controller state.
type Model struct {
	ctrl   *app.Controller
	keys   keyMap
	help   help.Model
	theme  ui.Theme
	tick   time.Duration
	logger *log.Logger

	width  int
	height int
}

type Option func(*Model)

func WithTheme(t ui.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithTick sets the idle re-render interval.
func WithTick(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tick = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(ctrl *app.Controller, opts ...Option) Model {
	m := Model{
		ctrl:   ctrl,
		keys:   newKeyMap(),
		help:   help.New(),
		theme:  ui.ThemeByName("classic"),
		tick:   defaultTick,
		logger: logging.Discard(),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.nextTick() }

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, m.nextTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			m.ctrl.Quit()
		} else {
			m.handleKey(msg)
		}
		if m.ctrl.ShouldQuit() {
			m.logger.Info("quit requested")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) {
	switch m.ctrl.State() {
	case app.StateMain:
		m.handleMainKey(msg)
	case app.StateDetail:
		m.handleDetailKey(msg)
	case app.StateConfirm:
		m.handleConfirmKey(msg)
	}
}

func (m Model) handleMainKey(msg tea.KeyMsg) {
	k := m.keys
	switch {
	case key.Matches(msg, k.quit):
		m.ctrl.Quit()
	case key.Matches(msg, k.down):
		m.ctrl.SelectNext()
	case key.Matches(msg, k.up):
		m.ctrl.SelectPrevious()
	case key.Matches(msg, k.open):
		m.ctrl.Open()
	case key.Matches(msg, k.toggle):
		_ = m.ctrl.Toggle()
	case key.Matches(msg, k.newTodo):
		m.ctrl.New()
	case key.Matches(msg, k.deleteIt):
		m.ctrl.RequestDelete()
	case key.Matches(msg, k.edit):
		m.ctrl.Edit()
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) {
	k := m.keys
	if _, viewing := m.ctrl.Draft().(*app.Viewing); viewing {
		switch {
		case key.Matches(msg, k.back):
			_ = m.ctrl.Close()
		case key.Matches(msg, k.switchEdit):
			m.ctrl.SwitchToEdit()
		}
		return
	}

	switch {
	case key.Matches(msg, k.cancel):
		_ = m.ctrl.Close()
	case key.Matches(msg, k.save):
		_ = m.ctrl.Save()
	case key.Matches(msg, k.nextField):
		m.ctrl.NextField()
	case key.Matches(msg, k.prevField):
		m.ctrl.PreviousField()
	case key.Matches(msg, k.backspace):
		m.ctrl.DeleteRune()
	case key.Matches(msg, k.newline):
		if f, ok := m.ctrl.ActiveField(); ok && f == app.FieldDescription {
			m.ctrl.InsertRune('\n')
		}
	case msg.Type == tea.KeySpace:
		m.ctrl.InsertRune(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			m.ctrl.InsertRune(r)
		}
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.yes):
		_ = m.ctrl.ConfirmYes()
	case key.Matches(msg, m.keys.no):
		m.ctrl.ConfirmNo()
	}
}
