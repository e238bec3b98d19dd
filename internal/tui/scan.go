package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var imagePatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.webp", "*.heic"}

// ScanModel asks for a menu photo and starts the extraction.
type ScanModel struct {
	env          *env
	pathInput    textinput.Model
	files        []string
	selectedFile int
	browsing     bool
	width        int
	height       int
}

func NewScanModel(e *env) *ScanModel {
	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/menu.jpg"
	pathInput.CharLimit = 4096

	return &ScanModel{env: e, pathInput: pathInput}
}

func (m *ScanModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ScanModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 10 {
		m.pathInput.Width = width - 10
	}
}

func (m *ScanModel) Open() tea.Cmd {
	m.browsing = false
	m.pathInput.SetValue("")
	return m.pathInput.Focus()
}

func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	if m.browsing {
		return m.updateFileSelect(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		return m, m.startScan(path)
	}

	m.pathInput, cmd = m.pathInput.Update(keyMsg)
	return m, cmd
}

func (m *ScanModel) updateFileSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.pathInput.SetValue(m.files[m.selectedFile])
		}
		m.browsing = false
	case "esc":
		m.browsing = false
	}
	return m, nil
}

func (m *ScanModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, err := os.Getwd()
	if err != nil {
		return m, ShowError(err)
	}

	var files []string
	for _, pattern := range imagePatterns {
		matches, err := filepath.Glob(filepath.Join(cwd, pattern))
		if err != nil {
			return m, ShowError(err)
		}
		for _, file := range matches {
			rel, _ := filepath.Rel(cwd, file)
			files = append(files, rel)
		}
	}
	sort.Strings(files)

	m.files = files
	m.selectedFile = 0
	m.browsing = true
	return m, nil
}

// startScan marks the controller busy and runs the extraction as a command, so
// the rest of the interface keeps responding until ScanCompleteMsg arrives.
func (m *ScanModel) startScan(path string) tea.Cmd {
	if m.env.extractor == nil {
		return ShowError(fmt.Errorf("menu scanning is not available"))
	}
	if err := m.env.ctrl.BeginScan(); err != nil {
		return ShowError(err)
	}
	m.pathInput.Blur()

	extractor := m.env.extractor
	return func() tea.Msg {
		image, err := os.ReadFile(path)
		if err != nil {
			return ScanCompleteMsg{Err: fmt.Errorf("failed to read image: %w", err)}
		}
		menu, err := extractor.Extract(context.Background(), image)
		return ScanCompleteMsg{Menu: menu, Err: err}
	}
}

func (m *ScanModel) View() string {
	if m.browsing {
		return m.renderFileSelector()
	}

	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	title := adaptiveTitleStyle.Render("📷 Scan a menu photo")

	body := labelStyle.Render("Image file:") + "\n" + m.pathInput.View()
	if configured, ok := m.env.extractor.(interface{ Configured() bool }); ok && !configured.Configured() {
		body += "\n\n" + warningStyle.Render("No API key is configured (set DINNER_GEMINI_API_KEY); the current menu will be kept.")
	}

	help := adaptiveHelpStyle.Render("Enter: scan • Ctrl+F: browse images • Esc: back")
	return lipgloss.JoinVertical(lipgloss.Left, title, adaptiveFormStyle.Render(body), help)
}

func (m *ScanModel) renderFileSelector() string {
	title := titleStyle.Render("📁 Select a menu photo")

	if len(m.files) == 0 {
		content := warningStyle.Render("No images found in current directory")
		help := helpStyle.Render("Esc: back to form")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var fileList string
	for i, file := range m.files {
		cursor := " "
		style := menuItemStyle
		if i == m.selectedFile {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		fileList += fmt.Sprintf("%s %s\n", cursor, style.Render(file))
	}

	help := helpStyle.Render("↑/↓: navigate • Enter: select • Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}
