package models

import (
	"fmt"
	"sort"
)

// Member is one of the fixed household members who can place an order.
type Member string

const (
	Jackson  Member = "Jackson"
	Stella   Member = "Stella"
	AiNing   Member = "Ai Ning"
	Channing Member = "Channing"
)

// Members lists the household in picker order.
var Members = []Member{Jackson, Stella, AiNing, Channing}

func ParseMember(name string) (Member, error) {
	for _, m := range Members {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%q is not a household member", name)
}

func (m Member) Initial() string {
	for _, r := range string(m) {
		return string(r)
	}
	return ""
}

// UserOrder is one person's selections. IsConfirmed is only set through Confirm
// or by decoding a share payload.
type UserOrder struct {
	UserName    string     `json:"userName"`
	Soup        *MenuItem  `json:"soup,omitempty"`
	Appetizer   *MenuItem  `json:"appetizer,omitempty"`
	Main        *MenuItem  `json:"main,omitempty"`
	ALaCarte    []MenuItem `json:"aLaCarte"`
	Notes       string     `json:"notes"`
	IsConfirmed bool       `json:"isConfirmed"`
}

// NewOrder returns an empty draft for name.
func NewOrder(name string) UserOrder {
	return UserOrder{UserName: name, ALaCarte: []MenuItem{}}
}

// IsConfirmable reports whether soup, appetizer and main are all chosen.
func IsConfirmable(o UserOrder) bool {
	return o.Soup != nil && o.Appetizer != nil && o.Main != nil
}

// Confirm marks a confirmable draft as confirmed. A draft missing a required
// course comes back unchanged with ok=false.
func Confirm(draft UserOrder) (UserOrder, bool) {
	if !IsConfirmable(draft) {
		return draft, false
	}
	confirmed := draft.Clone()
	confirmed.IsConfirmed = true
	return confirmed, true
}

// Selected returns the single choice for a required category.
func (o UserOrder) Selected(c Category) *MenuItem {
	switch c {
	case CategorySoup:
		return o.Soup
	case CategoryAppetizer:
		return o.Appetizer
	case CategoryMain:
		return o.Main
	}
	return nil
}

// Choose sets the single choice for a required category. Choosing for the a la
// carte category is a toggle.
func (o *UserOrder) Choose(c Category, item MenuItem) {
	chosen := item
	switch c {
	case CategorySoup:
		o.Soup = &chosen
	case CategoryAppetizer:
		o.Appetizer = &chosen
	case CategoryMain:
		o.Main = &chosen
	case CategoryALaCarte:
		o.ToggleAddOn(item)
	}
}

// HasAddOn reports whether an a la carte item with this id is selected.
func (o UserOrder) HasAddOn(id string) bool {
	for _, item := range o.ALaCarte {
		if item.ID == id {
			return true
		}
	}
	return false
}

// ToggleAddOn removes the item when present and appends it otherwise, so the
// add-on list stays a set by id.
func (o *UserOrder) ToggleAddOn(item MenuItem) {
	for i, existing := range o.ALaCarte {
		if existing.ID == item.ID {
			o.ALaCarte = append(o.ALaCarte[:i:i], o.ALaCarte[i+1:]...)
			return
		}
	}
	o.ALaCarte = append(o.ALaCarte, item)
}

// AddOnNames returns the names of the selected add-ons in selection order.
func (o UserOrder) AddOnNames() []string {
	names := make([]string, 0, len(o.ALaCarte))
	for _, item := range o.ALaCarte {
		names = append(names, item.Name)
	}
	return names
}

// Clone copies the order so later edits to the copy never reach the original.
func (o UserOrder) Clone() UserOrder {
	c := o
	c.Soup = cloneItem(o.Soup)
	c.Appetizer = cloneItem(o.Appetizer)
	c.Main = cloneItem(o.Main)
	c.ALaCarte = append([]MenuItem{}, o.ALaCarte...)
	return c
}

func cloneItem(item *MenuItem) *MenuItem {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}

// OrderSet maps a person's name to their order.
type OrderSet map[string]UserOrder

// Names returns the keys with household members first in picker order, then any
// other names sorted. Encoders iterate in this order so output is reproducible.
func (s OrderSet) Names() []string {
	names := make([]string, 0, len(s))
	known := make(map[string]bool, len(Members))
	for _, m := range Members {
		known[string(m)] = true
		if _, ok := s[string(m)]; ok {
			names = append(names, string(m))
		}
	}
	var others []string
	for name := range s {
		if !known[name] {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	return append(names, others...)
}

// Merge returns a new set holding every entry of s overwritten by imported on
// name collision. Neither input is modified.
func (s OrderSet) Merge(imported OrderSet) OrderSet {
	merged := make(OrderSet, len(s)+len(imported))
	for name, order := range s {
		merged[name] = order
	}
	for name, order := range imported {
		merged[name] = order
	}
	return merged
}

// Only returns a set with the single named order, or the whole set when the
// name has no order.
func (s OrderSet) Only(name string) OrderSet {
	order, ok := s[name]
	if !ok {
		return s
	}
	return OrderSet{name: order}
}

// Waiting lists household members without a confirmed order.
func (s OrderSet) Waiting() []Member {
	var waiting []Member
	for _, m := range Members {
		if order, ok := s[string(m)]; !ok || !order.IsConfirmed {
			waiting = append(waiting, m)
		}
	}
	return waiting
}
