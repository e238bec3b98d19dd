package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dinnerconcierge/internal/flow"
	"dinnerconcierge/internal/models"
)

type Screen int

const (
	PickerScreen Screen = iota
	OrderScreen
	SummaryScreen
	ScanScreen
)

type Options struct {
	Controller *flow.Controller
	Extractor  flow.Extractor
	ShareBase  string
	ExportDir  string

	// Copy defaults to the system clipboard.
	Copy func(string) error
	Now  func() time.Time
}

// env is what every screen needs from the session.
type env struct {
	ctrl      *flow.Controller
	extractor flow.Extractor
	shareBase string
	exportDir string
	copy      func(string) error
	now       func() time.Time
}

type Model struct {
	currentScreen Screen
	env           *env
	pickerModel   *PickerModel
	orderModel    *OrderModel
	summaryModel  *SummaryModel
	scanModel     *ScanModel
	spinner       spinner.Model
	notice        string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(opts Options) Model {
	e := &env{
		ctrl:      opts.Controller,
		extractor: opts.Extractor,
		shareBase: opts.ShareBase,
		exportDir: opts.ExportDir,
		copy:      opts.Copy,
		now:       opts.Now,
	}
	if e.copy == nil {
		e.copy = clipboard.WriteAll
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.exportDir == "" {
		e.exportDir = "."
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	return Model{
		currentScreen: PickerScreen,
		env:           e,
		pickerModel:   NewPickerModel(e),
		orderModel:    NewOrderModel(e),
		summaryModel:  NewSummaryModel(e),
		scanModel:     NewScanModel(e),
		spinner:       s,
		notice:        e.ctrl.Notice(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pickerModel.SetSize(msg.Width, msg.Height)
		m.orderModel.SetSize(msg.Width, msg.Height)
		m.summaryModel.SetSize(msg.Width, msg.Height)
		m.scanModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == PickerScreen || m.currentScreen == SummaryScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if handled, cmd := m.back(); handled {
				return m, cmd
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		switch msg.Screen {
		case OrderScreen:
			m.orderModel.Open()
		case SummaryScreen:
			m.summaryModel.Open()
		case ScanScreen:
			return m, m.scanModel.Open()
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case NoticeMsg:
		m.notice = string(msg)
		return m, nil

	case ScanCompleteMsg:
		if err := m.env.ctrl.FinishScan(msg.Menu, msg.Err); err != nil {
			m.err = err
		}
		m.notice = m.env.ctrl.Notice()
		return m, nil

	case spinner.TickMsg:
		if !m.env.ctrl.Busy() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.currentScreen {
	case PickerScreen:
		newPickerModel, cmd := m.pickerModel.Update(msg)
		m.pickerModel = newPickerModel.(*PickerModel)
		return m, cmd
	case OrderScreen:
		newOrderModel, cmd := m.orderModel.Update(msg)
		m.orderModel = newOrderModel.(*OrderModel)
		return m, cmd
	case SummaryScreen:
		newSummaryModel, cmd := m.summaryModel.Update(msg)
		m.summaryModel = newSummaryModel.(*SummaryModel)
		return m, cmd
	case ScanScreen:
		wasBusy := m.env.ctrl.Busy()
		newScanModel, cmd := m.scanModel.Update(msg)
		m.scanModel = newScanModel.(*ScanModel)
		if !wasBusy && m.env.ctrl.Busy() {
			// extraction keeps running in the background
			m.env.ctrl.Notice()
			m.notice = ""
			m.currentScreen = PickerScreen
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		return m, cmd
	}

	return m, cmd
}

// back handles esc for screens that do not need it themselves.
func (m *Model) back() (bool, tea.Cmd) {
	switch m.currentScreen {
	case OrderScreen:
		if m.orderModel.editingNotes {
			return false, nil
		}
		if err := m.env.ctrl.Back(); err != nil {
			return true, ShowError(err)
		}
	case SummaryScreen:
		if err := m.env.ctrl.LeaveSummary(); err != nil {
			return true, ShowError(err)
		}
	case ScanScreen:
		if m.scanModel.browsing {
			return false, nil
		}
	default:
		return false, nil
	}
	m.currentScreen = PickerScreen
	return true, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Enjoy your dinner!\n"
	}

	var content string
	switch m.currentScreen {
	case PickerScreen:
		content = m.pickerModel.View()
	case OrderScreen:
		content = m.orderModel.View()
	case SummaryScreen:
		content = m.summaryModel.View()
	case ScanScreen:
		content = m.scanModel.View()
	}

	if m.env.ctrl.Busy() {
		content += "\n" + m.spinner.View() + " " + warningStyle.Render("Scanning menu...")
	} else if m.notice != "" {
		content += "\n" + successStyle.Render(m.notice)
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

// NoticeMsg replaces the status line.
type NoticeMsg string

type ScanCompleteMsg struct {
	Menu *models.FullMenu
	Err  error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

func ShowNotice(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg(text)
	}
}
