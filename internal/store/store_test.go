package store

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/models"
)

type failingKV struct {
	getErr error
	setErr error
}

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.getErr }
func (f failingKV) Set(context.Context, string, string) error          { return f.setErr }
func (f failingKV) Close() error                                        { return nil }

func newLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func TestLoadNothingStored(t *testing.T) {
	logger, hook := newLogger()
	s := New(database.NewMemory(), "", logger)

	orders := s.Load(context.Background())
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, DefaultKey, s.Key())
}

func TestSaveThenLoad(t *testing.T) {
	logger, _ := newLogger()
	kv := database.NewMemory()
	s := New(kv, "orders", logger)
	menu := models.DefaultMenu()

	soup, _ := menu.FindItem("s2")
	main, _ := menu.FindItem("m5")
	addOn, _ := menu.FindItem("al1")
	order := models.NewOrder("Jackson")
	order.Soup = &soup
	order.Main = &main
	order.ALaCarte = append(order.ALaCarte, addOn)
	order.Notes = "no onions"
	order.IsConfirmed = true

	s.Save(context.Background(), models.OrderSet{"Jackson": order})

	loaded := s.Load(context.Background())
	assert.Equal(t, models.OrderSet{"Jackson": order}, loaded)

	raw, found, err := kv.Get(context.Background(), "orders")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"userName":"Jackson"`)
	assert.Contains(t, raw, `"isConfirmed":true`)
	assert.Contains(t, raw, `"aLaCarte":[{"id":"al1"`)
}

func TestSaveOverwritesWholeValue(t *testing.T) {
	logger, _ := newLogger()
	s := New(database.NewMemory(), "", logger)

	s.Save(context.Background(), models.OrderSet{"A": {UserName: "A"}, "B": {UserName: "B"}})
	s.Save(context.Background(), models.OrderSet{"C": {UserName: "C"}})

	assert.Equal(t, []string{"C"}, s.Load(context.Background()).Names())
}

func TestLoadCorruptValueIsLoggedNotRaised(t *testing.T) {
	logger, hook := newLogger()
	kv := database.NewMemory()
	require.NoError(t, kv.Set(context.Background(), DefaultKey, "{not json"))
	s := New(kv, "", logger)

	orders := s.Load(context.Background())
	assert.Empty(t, orders)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	_, err := s.Read(context.Background())
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "parse", perr.Op)
}

func TestLoadBackendFailure(t *testing.T) {
	logger, hook := newLogger()
	s := New(failingKV{getErr: errors.New("disk gone")}, "", logger)

	assert.Empty(t, s.Load(context.Background()))
	assert.Len(t, hook.AllEntries(), 1)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	logger, hook := newLogger()
	s := New(failingKV{setErr: errors.New("quota exceeded")}, "", logger)

	assert.NotPanics(t, func() {
		s.Save(context.Background(), models.OrderSet{"A": {UserName: "A"}})
	})
	require.Len(t, hook.AllEntries(), 1)
	assert.Contains(t, hook.LastEntry().Data[logrus.ErrorKey].(error).Error(), "quota exceeded")

	err := s.Write(context.Background(), models.OrderSet{})
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "write", perr.Op)
}
