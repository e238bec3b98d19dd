package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dinnerconcierge/internal/models"
)

type pickerAction int

const (
	actionPerson pickerAction = iota
	actionSummary
	actionScan
	actionShare
	actionExit
)

type pickerChoice struct {
	label  string
	action pickerAction
	member models.Member
}

// PickerModel is the person picker and main menu.
type PickerModel struct {
	env     *env
	choices []pickerChoice
	cursor  int
	width   int
	height  int
}

func NewPickerModel(e *env) *PickerModel {
	var choices []pickerChoice
	for _, member := range models.Members {
		choices = append(choices, pickerChoice{label: string(member), action: actionPerson, member: member})
	}
	choices = append(choices,
		pickerChoice{label: "📋 Review orders", action: actionSummary},
		pickerChoice{label: "📷 Scan a menu photo", action: actionScan},
		pickerChoice{label: "🔗 Copy share link", action: actionShare},
		pickerChoice{label: "🚪 Exit", action: actionExit},
	)
	return &PickerModel{env: e, choices: choices}
}

func (m *PickerModel) Init() tea.Cmd {
	return nil
}

func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, m.handleSelection(m.choices[m.cursor])
		}
	}
	return m, nil
}

func (m *PickerModel) handleSelection(choice pickerChoice) tea.Cmd {
	ctrl := m.env.ctrl
	switch choice.action {
	case actionPerson:
		if err := ctrl.SelectPerson(string(choice.member)); err != nil {
			return ShowError(err)
		}
		return ChangeScreen(OrderScreen)
	case actionSummary:
		if err := ctrl.ViewSummary(); err != nil {
			return ShowError(err)
		}
		return ChangeScreen(SummaryScreen)
	case actionScan:
		if ctrl.Busy() {
			return ShowNotice("A scan is already running")
		}
		return ChangeScreen(ScanScreen)
	case actionShare:
		link, err := ctrl.ShareLink(m.env.shareBase, "")
		if err != nil {
			return ShowError(err)
		}
		return copyToClipboard(m.env, link, "Share link copied to clipboard")
	case actionExit:
		return tea.Quit
	}
	return nil
}

func (m *PickerModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🍽  Family Dinner · Who is ordering?")
	orders := m.env.ctrl.Orders()

	var menu string
	for i, choice := range m.choices {
		label := choice.label
		if choice.action == actionPerson {
			mark := "  "
			if order, ok := orders[string(choice.member)]; ok && order.IsConfirmed {
				mark = "✓ "
			}
			label = fmt.Sprintf("(%s) %s%s", choice.member.Initial(), mark, label)
		}
		if i == len(models.Members) {
			menu += "\n"
		}

		cursor := " "
		if m.cursor == i {
			cursor = ">"
			label = selectedMenuItemStyle.Render(label)
		} else {
			label = menuItemStyle.Render(label)
		}
		menu += fmt.Sprintf("%s %s\n", cursor, label)
	}

	help := adaptiveHelpStyle.Render("↑/↓ (or j/k): navigate • Enter: select • q: quit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, menu, help)
	if m.width > 0 {
		content = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}
	return content
}

// copyToClipboard copies text and reports the outcome on the status line.
// Without a clipboard the text itself is shown so it can be copied by hand.
func copyToClipboard(e *env, text, done string) tea.Cmd {
	if err := e.copy(text); err != nil {
		return ShowNotice("Clipboard unavailable, copy this: " + text)
	}
	return ShowNotice(done)
}
