package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dinnerconcierge/internal/models"
)

type orderRow struct {
	category models.Category
	item     models.MenuItem
}

// OrderModel is the order form for one person. The cursor walks the menu
// items, then the notes field, then the save button.
type OrderModel struct {
	env          *env
	rows         []orderRow
	cursor       int
	notes        textarea.Model
	editingNotes bool
	width        int
	height       int
}

func NewOrderModel(e *env) *OrderModel {
	notes := textarea.New()
	notes.Placeholder = "Allergies, doneness, no onions..."
	notes.ShowLineNumbers = false
	notes.SetHeight(3)
	notes.CharLimit = 500

	return &OrderModel{env: e, notes: notes}
}

func (m *OrderModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *OrderModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 10 {
		m.notes.SetWidth(width - 10)
	}
}

// Open resets the form for the draft the controller just opened.
func (m *OrderModel) Open() {
	menu := m.env.ctrl.Menu()
	m.rows = m.rows[:0]
	for _, c := range models.Categories {
		for _, item := range menu.Category(c).Items {
			m.rows = append(m.rows, orderRow{category: c, item: item})
		}
	}
	m.cursor = 0
	m.editingNotes = false
	m.notes.SetValue(m.env.ctrl.Draft().Notes)
	m.notes.Blur()
}

func (m *OrderModel) notesRow() int { return len(m.rows) }
func (m *OrderModel) saveRow() int  { return len(m.rows) + 1 }

func (m *OrderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editingNotes {
			m.notes, cmd = m.notes.Update(msg)
		}
		return m, cmd
	}

	if m.editingNotes {
		switch keyMsg.String() {
		case "esc", "tab":
			m.stopEditing()
			return m, nil
		case "ctrl+s":
			return m, m.save()
		}
		m.notes, cmd = m.notes.Update(keyMsg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < m.saveRow() {
			m.cursor++
		}
	case "ctrl+s":
		return m, m.save()
	case "enter", " ":
		switch {
		case m.cursor < len(m.rows):
			row := m.rows[m.cursor]
			if err := m.env.ctrl.ChooseSingle(row.category, row.item.ID); err != nil {
				return m, ShowError(err)
			}
		case m.cursor == m.notesRow():
			m.editingNotes = true
			return m, m.notes.Focus()
		case m.cursor == m.saveRow():
			return m, m.save()
		}
	}
	return m, nil
}

func (m *OrderModel) stopEditing() {
	m.env.ctrl.SetNotes(m.notes.Value())
	m.notes.Blur()
	m.editingNotes = false
}

func (m *OrderModel) save() tea.Cmd {
	ctrl := m.env.ctrl
	if err := ctrl.SetNotes(m.notes.Value()); err != nil {
		return ShowError(err)
	}
	if err := ctrl.Save(ctrl.Draft()); err != nil {
		return ShowError(err)
	}
	m.editingNotes = false
	m.notes.Blur()
	return tea.Batch(ChangeScreen(PickerScreen), ShowNotice(ctrl.Notice()))
}

func (m *OrderModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	ctrl := m.env.ctrl
	draft := ctrl.Draft()

	title := adaptiveTitleStyle.Render(fmt.Sprintf("🍽  Ordering for %s", ctrl.Person()))

	var b strings.Builder
	start, end := m.visibleRows()
	menu := ctrl.Menu()
	for i := start; i < end; i++ {
		row := m.rows[i]
		if i == start || m.rows[i-1].category != row.category {
			b.WriteString(categoryStyle.Render(categoryHeading(menu.Category(row.category))) + "\n")
		}
		b.WriteString(m.renderRow(i, row, draft) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Notes:") + "\n")
	notesView := m.notes.View()
	if m.cursor == m.notesRow() && !m.editingNotes {
		notesView = selectedMenuItemStyle.Render("Edit notes") + "\n" + notesView
	}
	b.WriteString(notesView + "\n\n")

	button := menuItemStyle.Render("[ Save order ]")
	if m.cursor == m.saveRow() {
		button = selectedMenuItemStyle.Render("[ Save order ]")
	}
	b.WriteString(button)
	if !ctrl.CanSave() {
		b.WriteString("  " + warningStyle.Render("Choose a soup, an appetizer and a main to save"))
	}

	form := adaptiveFormStyle.Render(b.String())

	help := "↑/↓: navigate • Enter/Space: choose • Ctrl+S: save • Esc: back without saving"
	if m.editingNotes {
		help = "Typing notes • Tab/Esc: done • Ctrl+S: save"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, form, adaptiveHelpStyle.Render(help))
}

func (m *OrderModel) renderRow(i int, row orderRow, draft models.UserOrder) string {
	var mark string
	if row.category == models.CategoryALaCarte {
		mark = "[ ]"
		if draft.HasAddOn(row.item.ID) {
			mark = "[x]"
		}
	} else {
		mark = "( )"
		if selected := draft.Selected(row.category); selected != nil && selected.ID == row.item.ID {
			mark = "(•)"
		}
	}

	label := fmt.Sprintf("%s %s", mark, row.item.Name)
	if row.item.Price != nil {
		label += " " + priceStyle.Render(fmt.Sprintf("NT$%.0f", *row.item.Price))
	}
	if i == m.cursor {
		return "> " + selectedMenuItemStyle.Render(label)
	}
	return "  " + menuItemStyle.Render(label)
}

// visibleRows keeps the cursor on screen when the menu is taller than the terminal.
func (m *OrderModel) visibleRows() (int, int) {
	window := m.height - 20
	if m.height == 0 || window >= len(m.rows) {
		return 0, len(m.rows)
	}
	if window < 5 {
		window = 5
	}
	focus := m.cursor
	if focus >= len(m.rows) {
		focus = len(m.rows) - 1
	}
	start := focus - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(m.rows) {
		end = len(m.rows)
		start = max(end-window, 0)
	}
	return start, end
}

func categoryHeading(c *models.MenuCategory) string {
	switch {
	case c.Required && !c.MultiSelect:
		return c.Title + " · choose one"
	case c.MultiSelect:
		return c.Title + " · optional, choose any"
	}
	return c.Title
}
