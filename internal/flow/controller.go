// Package flow holds the ordering state machine shared by the terminal UI and
// the HTTP surface. It owns the session's orders, the catalog in effect, and
// which screen the user is on.
package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"dinnerconcierge/internal/codec"
	"dinnerconcierge/internal/models"
)

type State int

const (
	Selecting State = iota
	Ordering
	Reviewing
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Ordering:
		return "ordering"
	case Reviewing:
		return "reviewing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrBusy              = errors.New("a menu scan is in progress")
	ErrNotConfirmable    = errors.New("soup, appetizer and main must all be chosen")
	ErrInvalidTransition = errors.New("action not available on this screen")
	ErrNoOrders          = errors.New("no orders yet")
	ErrUnknownItem       = errors.New("item is not on the menu")
)

// Persister stores the whole order set. Save never reports failure to the caller.
type Persister interface {
	Load(ctx context.Context) models.OrderSet
	Save(ctx context.Context, orders models.OrderSet)
}

// Extractor turns a menu photo into a catalog. A nil menu with a nil error
// means nothing usable came back.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*models.FullMenu, error)
}

type Controller struct {
	persister Persister
	logger    logrus.FieldLogger

	state   State
	person  string
	draft   models.UserOrder
	orders  models.OrderSet
	menu    models.FullMenu
	busy    bool
	started bool
	notice  string
}

func New(persister Persister, menu models.FullMenu, logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		persister: persister,
		logger:    logger,
		state:     Selecting,
		orders:    models.OrderSet{},
		menu:      menu,
	}
}

// Startup loads persisted orders and merges in an optional share payload, with
// imported orders winning on name collision. It runs once per controller and
// returns the names that were imported.
func (c *Controller) Startup(ctx context.Context, payload string) ([]string, error) {
	if c.started {
		return nil, ErrInvalidTransition
	}
	c.started = true
	c.state = Selecting

	stored := c.persister.Load(ctx)

	var imported models.OrderSet
	if strings.TrimSpace(payload) != "" {
		var err error
		imported, err = codec.DecodeLenient(payload, c.menu)
		if err != nil {
			c.logger.WithError(err).Warn("Ignoring unreadable share payload")
			c.notice = unreadableLink
		}
	}
	imported = c.householdOnly(imported)

	c.orders = stored.Merge(imported)
	names := imported.Names()
	if len(names) > 0 {
		c.persist()
		c.notice = "Imported orders for " + strings.Join(names, ", ")
		c.logger.WithField("names", names).Info("Imported shared orders")
	}
	return names, nil
}

// Import merges a payload into an already running session.
func (c *Controller) Import(payload string) ([]string, error) {
	if c.busy {
		return nil, ErrBusy
	}
	imported, err := codec.DecodeLenient(payload, c.menu)
	if err != nil {
		c.notice = unreadableLink
		return nil, err
	}
	imported = c.householdOnly(imported)
	names := imported.Names()
	if len(names) == 0 {
		return nil, nil
	}
	c.orders = c.orders.Merge(imported)
	c.persist()
	c.notice = "Imported orders for " + strings.Join(names, ", ")
	return names, nil
}

const unreadableLink = "The shared link could not be read. Nothing was imported."

// householdOnly drops imported orders for names outside the household, which
// could never be edited afterwards.
func (c *Controller) householdOnly(imported models.OrderSet) models.OrderSet {
	kept := make(models.OrderSet, len(imported))
	for name, order := range imported {
		if _, err := models.ParseMember(name); err != nil {
			c.logger.WithField("name", name).Warn("Skipping shared order for unknown person")
			continue
		}
		kept[name] = order
	}
	return kept
}

// SelectPerson opens the order form for a household member, prefilled with
// their existing order if they have one.
func (c *Controller) SelectPerson(name string) error {
	if c.busy {
		return ErrBusy
	}
	if c.state != Selecting {
		return ErrInvalidTransition
	}
	return c.open(name)
}

// EditPerson reopens an order from the summary.
func (c *Controller) EditPerson(name string) error {
	if c.busy {
		return ErrBusy
	}
	if c.state != Reviewing {
		return ErrInvalidTransition
	}
	return c.open(name)
}

func (c *Controller) open(name string) error {
	member, err := models.ParseMember(name)
	if err != nil {
		return err
	}
	c.person = string(member)
	if existing, ok := c.orders[c.person]; ok {
		c.draft = existing.Clone()
	} else {
		c.draft = models.NewOrder(c.person)
	}
	c.state = Ordering
	return nil
}

func (c *Controller) ChooseSingle(category models.Category, itemID string) error {
	if c.state != Ordering {
		return ErrInvalidTransition
	}
	if category == models.CategoryALaCarte {
		return c.ToggleAddOn(itemID)
	}
	cat := c.menu.Category(category)
	if cat == nil {
		return errors.Errorf("unknown category %q", category)
	}
	item, ok := cat.Find(itemID)
	if !ok {
		return errors.Wrap(ErrUnknownItem, itemID)
	}
	c.draft.Choose(category, item)
	return nil
}

func (c *Controller) ToggleAddOn(itemID string) error {
	if c.state != Ordering {
		return ErrInvalidTransition
	}
	item, ok := c.menu.ALaCarte.Find(itemID)
	if !ok {
		return errors.Wrap(ErrUnknownItem, itemID)
	}
	c.draft.ToggleAddOn(item)
	return nil
}

func (c *Controller) SetNotes(notes string) error {
	if c.state != Ordering {
		return ErrInvalidTransition
	}
	c.draft.Notes = notes
	return nil
}

// CanSave reports whether the current draft may be saved.
func (c *Controller) CanSave() bool {
	return c.state == Ordering && !c.busy && models.IsConfirmable(c.draft)
}

// Save confirms order for the person being edited and returns to selection.
// An order missing a required course is refused and the form stays open.
func (c *Controller) Save(order models.UserOrder) error {
	if c.busy {
		return ErrBusy
	}
	if c.state != Ordering {
		return ErrInvalidTransition
	}
	order.UserName = c.person
	confirmed, ok := models.Confirm(order)
	if !ok {
		c.draft = order.Clone()
		return ErrNotConfirmable
	}

	c.orders = c.orders.Merge(models.OrderSet{c.person: confirmed})
	c.persist()
	c.notice = "Saved order for " + c.person
	c.logger.WithField("person", c.person).Info("Order saved")
	c.reset()
	return nil
}

// Back leaves the order form without saving.
func (c *Controller) Back() error {
	if c.state != Ordering {
		return ErrInvalidTransition
	}
	c.reset()
	return nil
}

func (c *Controller) ViewSummary() error {
	if c.busy {
		return ErrBusy
	}
	if c.state != Selecting {
		return ErrInvalidTransition
	}
	if len(c.orders) == 0 {
		return ErrNoOrders
	}
	c.state = Reviewing
	return nil
}

func (c *Controller) LeaveSummary() error {
	if c.state != Reviewing {
		return ErrInvalidTransition
	}
	c.state = Selecting
	return nil
}

func (c *Controller) reset() {
	c.state = Selecting
	c.person = ""
	c.draft = models.UserOrder{}
}

// BeginScan marks an extraction as outstanding. Only one may run at a time.
func (c *Controller) BeginScan() error {
	if c.busy {
		return ErrBusy
	}
	if c.state != Selecting {
		return ErrInvalidTransition
	}
	c.busy = true
	c.notice = "Scanning menu..."
	return nil
}

// FinishScan ends the outstanding extraction. The catalog is replaced only when
// a menu came back; otherwise the previous one stays in effect.
func (c *Controller) FinishScan(menu *models.FullMenu, err error) error {
	if !c.busy {
		return ErrInvalidTransition
	}
	c.busy = false

	switch {
	case err != nil:
		c.logger.WithError(err).Error("Menu scan failed")
		c.notice = "Menu scan failed: " + err.Error()
	case menu == nil:
		c.notice = "No menu was recognised. Keeping the current menu."
	default:
		c.menu = *menu
		c.notice = fmt.Sprintf("Menu updated with %d items", len(menu.AllItems()))
	}
	return nil
}

// ReplaceMenu swaps the catalog outside of a scan, e.g. from a catalog file.
func (c *Controller) ReplaceMenu(menu models.FullMenu) error {
	if c.busy {
		return ErrBusy
	}
	c.menu = menu
	return nil
}

// ShareLink encodes the orders of person, or everyone when person is empty or
// has no order, into a link under base.
func (c *Controller) ShareLink(base, person string) (string, error) {
	payload, err := codec.EncodeFor(c.orders, person)
	if err != nil {
		return "", err
	}
	return codec.ShareLink(base, payload), nil
}

func (c *Controller) persist() {
	c.persister.Save(context.Background(), c.orders)
}

func (c *Controller) State() State { return c.state }

// Person is the member whose order form is open.
func (c *Controller) Person() string { return c.person }

func (c *Controller) Busy() bool { return c.busy }

func (c *Controller) Menu() models.FullMenu { return c.menu }

// Draft returns a copy of the order being edited.
func (c *Controller) Draft() models.UserOrder { return c.draft.Clone() }

// Orders returns a copy of the session's orders.
func (c *Controller) Orders() models.OrderSet {
	return models.OrderSet{}.Merge(c.orders)
}

func (c *Controller) Waiting() []models.Member { return c.orders.Waiting() }

// Notice returns the latest status line and clears it.
func (c *Controller) Notice() string {
	n := c.notice
	c.notice = ""
	return n
}
