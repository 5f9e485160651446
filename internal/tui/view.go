package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/todotui/internal/app"
	"github.com/idilsaglam/todotui/internal/model"
	"github.com/idilsaglam/todotui/internal/ui"
)

const (
	listTimeLayout   = "2006-01-02 15:04"
	detailTimeLayout = "2006-01-02 15:04:05"
	cursorGlyph      = "▏"
)

func (m Model) View() string {
	switch m.ctrl.State() {
	case app.StateDetail:
		return m.overlay(m.detailView())
	case app.StateConfirm:
		return m.overlay(m.confirmView())
	default:
		return m.mainView()
	}
}

func (m Model) mainView() string {
	items := m.ctrl.Listing()
	t := m.theme

	sections := []string{m.header(items), m.listing(items)}
	if err := m.ctrl.Err(); err != nil {
		sections = append(sections, t.Error.Render("✖ "+err.Error()))
	}
	sections = append(sections, m.help.ShortHelpView(m.keys.mainHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// header shows live counts and progress.
func (m Model) header(items []model.Item) string {
	t := m.theme
	done, pending := model.Stats(items)
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(items),
	)
	return t.Panel([]string{counts, t.Muted.Render(ui.ProgressBar(done, len(items), 28))})
}

func (m Model) listing(items []model.Item) string {
	t := m.theme
	if len(items) == 0 {
		return t.Frame().Render(t.Muted.Render("No todos yet. Press n to add one."))
	}

	cursor := m.ctrl.Cursor()
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		marker := "  "
		if i == cursor {
			marker = "▶ "
		}
		box := t.BoxUnchecked
		if it.Completed() {
			box = t.BoxChecked
		}
		rows = append(rows, []string{
			marker + box,
			firstLine(it.Subject),
			it.LastModifiedAt.Local().Format(listTimeLayout),
		})
	}

	tbl := table.New().
		Border(t.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.BorderColor)).
		Headers("", "Subject", "Last Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(t.Title)
			case row == cursor:
				return base.Inherit(t.Selected)
			case row >= 0 && row < len(items) && items[row].Completed():
				return base.Inherit(t.Done)
			}
			return base
		})
	if m.width > 0 {
		tbl = tbl.Width(m.width)
	}
	return tbl.Render()
}

func (m Model) detailView() string {
	t := m.theme
	var (
		title    string
		buf      app.Buffer
		editable bool
		created  *time.Time
		modified *time.Time
		closed   *time.Time
		helpKeys []key.Binding
	)
	switch d := m.ctrl.Draft().(type) {
	case *app.Viewing:
		title = "Todo Details"
		buf = app.Buffer{Subject: d.Item.Subject, Description: d.Item.Description}
		created, modified, closed = &d.Item.CreatedAt, &d.Item.LastModifiedAt, d.Item.ClosedAt
		helpKeys = m.keys.viewHelp()
	case *app.Editing:
		title = "Edit Todo"
		buf, editable = d.Buffer, true
		created, modified, closed = &d.CreatedAt, &d.LastModifiedAt, d.ClosedAt
		helpKeys = m.keys.editHelp()
	case *app.Creating:
		title = "New Todo"
		buf, editable = d.Buffer, true
		helpKeys = m.keys.editHelp()
	default:
		return ""
	}

	width := m.popupWidth(80)
	field := func(label, text string, active bool) string {
		frame, heading := t.Frame().Width(width-2), t.Accent.Render(label)
		if active {
			frame = frame.BorderForeground(t.Accent.GetForeground())
			heading = t.Active.Render(" " + label + " ")
			text += cursorGlyph
		}
		return heading + "\n" + frame.Render(text)
	}

	var meta []string
	if created != nil {
		meta = append(meta, t.Accent.Render("Created:  ")+created.Local().Format(detailTimeLayout))
	}
	if modified != nil {
		meta = append(meta, t.Accent.Render("Modified: ")+modified.Local().Format(detailTimeLayout))
	}
	status := t.Success.Render("Active")
	if closed != nil {
		status = t.Done.Render("Completed")
	}
	meta = append(meta, t.Accent.Render("Status:   ")+status)
	if closed != nil {
		meta = append(meta, t.Accent.Render("Closed:   ")+closed.Local().Format(detailTimeLayout))
	}

	sections := []string{
		t.Title.Render(title),
		field("Subject", buf.Subject, editable && buf.Field == app.FieldSubject),
		field("Description", buf.Description, editable && buf.Field == app.FieldDescription),
		strings.Join(meta, "\n"),
	}
	if err := m.ctrl.Err(); err != nil {
		sections = append(sections, t.Error.Render("✖ "+err.Error()))
	}
	sections = append(sections, m.help.ShortHelpView(helpKeys))
	return t.Frame().Width(width).Render(strings.Join(sections, "\n\n"))
}

func (m Model) confirmView() string {
	t := m.theme
	c := m.ctrl.Confirmation()
	if c == nil {
		return ""
	}
	lines := []string{
		t.Error.Render(c.Title),
		"",
		c.Message,
		"",
		t.Pending.Bold(true).Render("Are you sure?"),
	}
	if err := m.ctrl.Err(); err != nil {
		lines = append(lines, "", t.Error.Render("✖ "+err.Error()))
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.confirmHelp()))
	return t.Frame().Width(m.popupWidth(50)).Render(strings.Join(lines, "\n"))
}

// overlay centers a popup on the screen.
func (m Model) overlay(popup string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
}

// popupWidth is pct percent of the terminal width, at least 30 columns.
func (m Model) popupWidth(pct int) int {
	return max(m.width*pct/100, 30)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
