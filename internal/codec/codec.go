// Package codec turns an order set into the short share payload carried in an
// import link, and back.
//
// The payload is base64 text of a JSON array of compact tuples. Only item ids
// travel; names and prices are resolved against the catalog in effect when the
// payload is decoded, so a changed catalog silently drops unknown ids.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"dinnerconcierge/internal/models"
)

// ImportParam is the query parameter that carries a payload in a share link.
const ImportParam = "import"

type compactOrder struct {
	User      string    `json:"u"`
	Soup      string    `json:"s"`
	Appetizer string    `json:"ap"`
	Main      string    `json:"m"`
	ALaCarte  *[]string `json:"al"`
	Notes     string    `json:"n"`
}

// DecodeError reports a payload that could not be read. Callers treat it as an
// empty import.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode share payload (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errMissingAddOns = errors.New(`tuple has no "al" list`)

// Encode projects every order to its compact tuple, in orders.Names() order.
func Encode(orders models.OrderSet) (string, error) {
	list := make([]compactOrder, 0, len(orders))
	for _, name := range orders.Names() {
		list = append(list, compact(orders[name]))
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "marshal compact orders")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// EncodeFor encodes only name's order when there is one, otherwise every order.
func EncodeFor(orders models.OrderSet, name string) (string, error) {
	if name == "" {
		return Encode(orders)
	}
	return Encode(orders.Only(name))
}

func compact(o models.UserOrder) compactOrder {
	addOns := make([]string, 0, len(o.ALaCarte))
	for _, item := range o.ALaCarte {
		addOns = append(addOns, item.ID)
	}
	return compactOrder{
		User:      o.UserName,
		Soup:      itemID(o.Soup),
		Appetizer: itemID(o.Appetizer),
		Main:      itemID(o.Main),
		ALaCarte:  &addOns,
		Notes:     o.Notes,
	}
}

func itemID(item *models.MenuItem) string {
	if item == nil {
		return ""
	}
	return item.ID
}

// Decode rebuilds an order set from payload, resolving ids against catalog.
// On any failure it returns an empty, non-nil set together with a *DecodeError.
func Decode(payload string, catalog models.FullMenu) (models.OrderSet, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.OrderSet{}, &DecodeError{Stage: "base64", Err: err}
	}

	var list []compactOrder
	if err := json.Unmarshal(raw, &list); err != nil {
		return models.OrderSet{}, &DecodeError{Stage: "json", Err: err}
	}
	if list == nil {
		return models.OrderSet{}, &DecodeError{Stage: "shape", Err: errors.New("payload is not a list")}
	}
	for i, c := range list {
		if c.ALaCarte == nil {
			return models.OrderSet{}, &DecodeError{Stage: "shape", Err: errors.Wrapf(errMissingAddOns, "entry %d", i)}
		}
	}

	orders := make(models.OrderSet, len(list))
	for _, c := range list {
		if c.User == "" {
			continue
		}
		orders[c.User] = expand(c, catalog)
	}
	return orders, nil
}

// DecodeLenient accepts payloads that went through a query parser or were
// pasted still URL-escaped.
func DecodeLenient(payload string, catalog models.FullMenu) (models.OrderSet, error) {
	return Decode(Clean(payload), catalog)
}

// Clean undoes the usual damage done to a payload in transit: surrounding
// whitespace, percent escapes and '+' decoded to space.
func Clean(payload string) string {
	p := strings.TrimSpace(payload)
	if strings.Contains(p, "%") {
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
	}
	return strings.ReplaceAll(p, " ", "+")
}

func expand(c compactOrder, catalog models.FullMenu) models.UserOrder {
	order := models.NewOrder(c.User)
	order.Soup = lookup(c.Soup, catalog)
	order.Appetizer = lookup(c.Appetizer, catalog)
	order.Main = lookup(c.Main, catalog)
	for _, id := range *c.ALaCarte {
		if item := lookup(id, catalog); item != nil {
			order.ALaCarte = append(order.ALaCarte, *item)
		}
	}
	order.Notes = c.Notes
	// Imported orders count as confirmed even when a stale id emptied a course.
	order.IsConfirmed = true
	return order
}

func lookup(id string, catalog models.FullMenu) *models.MenuItem {
	item, ok := catalog.FindItem(id)
	if !ok {
		return nil
	}
	return &item
}

// ShareLink appends payload to base as the import parameter.
func ShareLink(base, payload string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + ImportParam + "=" + url.QueryEscape(payload)
}

// PayloadFromInput accepts either a bare payload or a full share link and
// returns the payload part.
func PayloadFromInput(input string) string {
	s := strings.TrimSpace(input)
	if !strings.Contains(s, ImportParam+"=") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if v := u.Query().Get(ImportParam); v != "" {
		return v
	}
	return s
}
