package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/flow"
	"dinnerconcierge/internal/models"
	"dinnerconcierge/internal/store"
)

type fakeExtractor struct {
	menu *models.FullMenu
	err  error
}

func (f fakeExtractor) Extract(context.Context, []byte) (*models.FullMenu, error) {
	return f.menu, f.err
}

type harness struct {
	model   Model
	ctrl    *flow.Controller
	store   *store.Store
	copied  []string
	exports string
}

func newHarness(t *testing.T, extractor flow.Extractor) *harness {
	t.Helper()
	logger, _ := test.NewNullLogger()
	st := store.New(database.NewMemory(), "", logger)
	ctrl := flow.New(st, models.DefaultMenu(), logger)
	_, err := ctrl.Startup(context.Background(), "")
	require.NoError(t, err)

	h := &harness{ctrl: ctrl, store: st, exports: t.TempDir()}
	h.model = NewModel(Options{
		Controller: ctrl,
		Extractor:  extractor,
		ShareBase:  "http://localhost:8080/",
		ExportDir:  h.exports,
		Copy: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		Now: func() time.Time { return time.Date(2025, 12, 24, 19, 0, 0, 0, time.UTC) },
	})
	return h
}

// send feeds msg through Update and follows the resulting commands. Commands
// that do not finish promptly, like cursor blinks, are dropped.
func (h *harness) send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		h.step(msg, 0)
	}
}

func (h *harness) step(msg tea.Msg, depth int) {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	if depth > 8 {
		return
	}
	for _, out := range collect(cmd) {
		h.step(out, depth+1)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// moveTo puts the order form cursor on the item with id.
func (h *harness) moveTo(t *testing.T, id string) {
	t.Helper()
	for i, row := range h.model.orderModel.rows {
		if row.item.ID == id {
			h.model.orderModel.cursor = i
			return
		}
	}
	t.Fatalf("item %s not on the form", id)
}

func TestOrderThroughTheForm(t *testing.T) {
	h := newHarness(t, nil)

	h.send(key("enter"))
	require.Equal(t, OrderScreen, h.model.currentScreen)
	assert.Equal(t, "Jackson", h.ctrl.Person())
	assert.Contains(t, h.model.View(), "Ordering for Jackson")

	h.send(key("ctrl+s"))
	assert.ErrorIs(t, h.model.err, flow.ErrNotConfirmable)
	assert.Equal(t, OrderScreen, h.model.currentScreen)

	for _, id := range []string{"s2", "ap1", "m5", "al1"} {
		h.moveTo(t, id)
		h.send(key("enter"))
	}
	assert.True(t, h.ctrl.CanSave())

	h.model.orderModel.cursor = h.model.orderModel.notesRow()
	h.send(key("enter"))
	require.True(t, h.model.orderModel.editingNotes)
	h.send(key("no onions"))
	h.send(key("tab"))
	assert.False(t, h.model.orderModel.editingNotes)
	assert.Equal(t, "no onions", h.ctrl.Draft().Notes)

	h.send(key("ctrl+s"))
	assert.Equal(t, PickerScreen, h.model.currentScreen)
	assert.Equal(t, "Saved order for Jackson", h.model.notice)
	assert.Contains(t, h.model.View(), "✓ Jackson")

	stored, err := h.store.Read(context.Background())
	require.NoError(t, err)
	order := stored["Jackson"]
	assert.True(t, order.IsConfirmed)
	assert.Equal(t, "m5", order.Main.ID)
	assert.Equal(t, "no onions", order.Notes)
	assert.True(t, order.HasAddOn("al1"))
}

func TestEscLeavesFormWithoutSaving(t *testing.T) {
	h := newHarness(t, nil)
	h.send(key("down"), key("enter"))
	require.Equal(t, "Stella", h.ctrl.Person())

	h.moveTo(t, "s1")
	h.send(key("enter"), key("esc"))
	assert.Equal(t, PickerScreen, h.model.currentScreen)
	assert.Equal(t, flow.Selecting, h.ctrl.State())
	assert.Empty(t, h.ctrl.Orders())
}

func TestSummaryNeedsOrders(t *testing.T) {
	h := newHarness(t, nil)
	h.model.pickerModel.cursor = len(models.Members)

	h.send(key("enter"))
	assert.ErrorIs(t, h.model.err, flow.ErrNoOrders)
	assert.Equal(t, PickerScreen, h.model.currentScreen)
}

func saveJackson(t *testing.T, h *harness) {
	t.Helper()
	h.send(key("enter"))
	for _, id := range []string{"s2", "ap1", "m5"} {
		h.moveTo(t, id)
		h.send(key("enter"))
	}
	h.send(key("ctrl+s"))
	require.Equal(t, PickerScreen, h.model.currentScreen)
}

func TestSummaryActions(t *testing.T) {
	h := newHarness(t, nil)
	saveJackson(t, h)

	h.model.pickerModel.cursor = len(models.Members)
	h.send(key("enter"))
	require.Equal(t, SummaryScreen, h.model.currentScreen)
	view := h.model.View()
	assert.Contains(t, view, "Waiting for: Stella, Ai Ning, Channing")
	assert.Contains(t, view, "Jackson")

	h.send(key("c"))
	require.Len(t, h.copied, 1)
	assert.True(t, strings.HasPrefix(h.copied[0], "DINNER ORDER SUMMARY"))

	h.send(key("d"))
	require.Len(t, h.copied, 2)
	assert.True(t, strings.HasPrefix(h.copied[1], "*Jackson*"))

	h.send(key("l"))
	require.Len(t, h.copied, 3)
	assert.True(t, strings.HasPrefix(h.copied[2], "http://localhost:8080/?import="))

	h.send(key("s"))
	_, err := os.Stat(filepath.Join(h.exports, "Dinner_Order_2025-12-24.txt"))
	assert.NoError(t, err)

	h.send(key("e"))
	assert.Equal(t, OrderScreen, h.model.currentScreen)
	assert.Equal(t, "Jackson", h.ctrl.Person())
	assert.Equal(t, "m5", h.ctrl.Draft().Main.ID)
}

func TestClipboardUnavailableShowsText(t *testing.T) {
	h := newHarness(t, nil)
	h.model.env.copy = func(string) error { return errors.New("no clipboard") }
	h.model.pickerModel.cursor = len(models.Members) + 2

	h.send(key("enter"))
	assert.True(t, strings.HasPrefix(h.model.notice, "Clipboard unavailable, copy this: http://localhost:8080/?import="))
}

func TestScanReplacesMenu(t *testing.T) {
	scanned := models.DefaultMenu()
	scanned.Main.Items = scanned.Main.Items[:2]
	h := newHarness(t, fakeExtractor{menu: &scanned})

	image := filepath.Join(t.TempDir(), "menu.jpg")
	require.NoError(t, os.WriteFile(image, []byte("jpeg"), 0644))

	h.model.pickerModel.cursor = len(models.Members) + 1
	h.send(key("enter"))
	require.Equal(t, ScanScreen, h.model.currentScreen)

	h.model.scanModel.pathInput.SetValue(image)
	h.send(key("enter"))

	assert.Equal(t, PickerScreen, h.model.currentScreen)
	assert.False(t, h.ctrl.Busy())
	assert.Len(t, h.ctrl.Menu().Main.Items, 2)
	assert.Contains(t, h.model.notice, "Menu updated")
}

func TestScanFailureKeepsMenu(t *testing.T) {
	h := newHarness(t, fakeExtractor{err: errors.New("quota exceeded")})

	h.send(ScreenChangeMsg{Screen: ScanScreen})
	h.model.scanModel.pathInput.SetValue(filepath.Join(t.TempDir(), "missing.jpg"))
	h.send(key("enter"))

	assert.False(t, h.ctrl.Busy())
	assert.Equal(t, models.DefaultMenu(), h.ctrl.Menu())
	assert.Contains(t, h.model.notice, "Menu scan failed")
}

func TestBusyWhileScanning(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.ctrl.BeginScan())

	h.send(key("enter"))
	assert.ErrorIs(t, h.model.err, flow.ErrBusy)
	assert.Contains(t, h.model.View(), "Scanning menu...")

	h.send(ScanCompleteMsg{})
	assert.False(t, h.ctrl.Busy())
	assert.Contains(t, h.model.notice, "Keeping the current menu")
}

func TestQuitFromPicker(t *testing.T) {
	h := newHarness(t, nil)
	next, cmd := h.model.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Enjoy your dinner!\n", next.View())
}
