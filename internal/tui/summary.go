package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dinnerconcierge/internal/export"
	"dinnerconcierge/internal/models"
)

// SummaryModel is the final review shown to restaurant staff.
type SummaryModel struct {
	env    *env
	names  []string
	cursor int
	width  int
	height int
}

func NewSummaryModel(e *env) *SummaryModel {
	return &SummaryModel{env: e}
}

func (m *SummaryModel) Init() tea.Cmd {
	return nil
}

func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SummaryModel) Open() {
	m.names = m.env.ctrl.Orders().Names()
	if m.cursor >= len(m.names) {
		m.cursor = 0
	}
}

func (m *SummaryModel) selected() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.cursor]
}

func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ctrl := m.env.ctrl
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", "e":
		if err := ctrl.EditPerson(m.selected()); err != nil {
			return m, ShowError(err)
		}
		return m, ChangeScreen(OrderScreen)
	case "c":
		return m, copyToClipboard(m.env, export.Report(ctrl.Orders(), m.env.now()), "Order summary copied to clipboard")
	case "d":
		return m, copyToClipboard(m.env, export.Digest(ctrl.Orders()), "Message copied to clipboard")
	case "l":
		link, err := ctrl.ShareLink(m.env.shareBase, m.selected())
		if err != nil {
			return m, ShowError(err)
		}
		return m, copyToClipboard(m.env, link, fmt.Sprintf("Share link for %s copied to clipboard", m.selected()))
	case "s":
		path, err := export.WriteFile(m.env.exportDir, export.FormatReport, ctrl.Orders(), m.env.now())
		if err != nil {
			return m, ShowError(err)
		}
		return m, ShowNotice("Saved " + path)
	}
	return m, nil
}

func (m *SummaryModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	orders := m.env.ctrl.Orders()

	title := adaptiveTitleStyle.Render("📋 Order Summary\nFinal review for restaurant staff")

	var cards []string
	for i, name := range m.names {
		cards = append(cards, m.renderCard(orders[name], i == m.cursor))
	}

	var status string
	if waiting := m.env.ctrl.Waiting(); len(waiting) > 0 {
		names := make([]string, len(waiting))
		for i, w := range waiting {
			names[i] = string(w)
		}
		status = warningStyle.Render("Waiting for: " + strings.Join(names, ", "))
	} else {
		status = successStyle.Render("Everyone has ordered!")
	}

	help := adaptiveHelpStyle.Render("↑/↓: choose person • e: edit • c: copy summary • d: copy message • l: copy share link • s: save file • Esc: back")

	body := adaptiveFormStyle.Render(strings.Join(cards, "\n\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, help)
}

func (m *SummaryModel) renderCard(o models.UserOrder, selected bool) string {
	name := labelStyle.Render(o.UserName)
	if selected {
		name = selectedMenuItemStyle.Render(o.UserName)
	}
	if !o.IsConfirmed {
		name += " " + warningStyle.Render("(not confirmed)")
	}

	lines := []string{name}
	for _, c := range []models.Category{models.CategorySoup, models.CategoryAppetizer, models.CategoryMain} {
		value := "-"
		if item := o.Selected(c); item != nil {
			value = item.Name
		}
		lines = append(lines, fmt.Sprintf("  %-10s %s", c.Label()+":", value))
	}
	if len(o.ALaCarte) > 0 {
		lines = append(lines, fmt.Sprintf("  %-10s %s", "Add-ons:", strings.Join(o.AddOnNames(), ", ")))
	}
	if o.Notes != "" {
		lines = append(lines, "  "+warningStyle.Render("Note: "+o.Notes))
	}
	return strings.Join(lines, "\n")
}
