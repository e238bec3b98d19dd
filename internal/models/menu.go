package models

import "fmt"

type MenuItem struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}

// Price returns a pointer for MenuItem.Price literals.
func Price(v float64) *float64 {
	return &v
}

type MenuCategory struct {
	Title       string     `json:"title"`
	Items       []MenuItem `json:"items"`
	Required    bool       `json:"required"`
	MultiSelect bool       `json:"multiSelect"`
}

// Find returns the item with the given id in this category.
func (c MenuCategory) Find(id string) (MenuItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

type Category string

const (
	CategorySoup      Category = "soup"
	CategoryAppetizer Category = "appetizer"
	CategoryMain      Category = "main"
	CategoryALaCarte  Category = "aLaCarte"
)

// Categories lists the four catalog categories in display order.
var Categories = []Category{CategorySoup, CategoryAppetizer, CategoryMain, CategoryALaCarte}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	switch s {
	case "a_la_carte", "alacarte", "addon", "add-on":
		return CategoryALaCarte, nil
	}
	return "", fmt.Errorf("unknown menu category %q", s)
}

// Label is the short human name used by exports and the order form.
func (c Category) Label() string {
	switch c {
	case CategorySoup:
		return "Soup"
	case CategoryAppetizer:
		return "Appetizer"
	case CategoryMain:
		return "Main"
	case CategoryALaCarte:
		return "Add-ons"
	}
	return string(c)
}

// FullMenu is the catalog in effect for a session.
type FullMenu struct {
	Soup      MenuCategory `json:"soup"`
	Appetizer MenuCategory `json:"appetizer"`
	Main      MenuCategory `json:"main"`
	ALaCarte  MenuCategory `json:"aLaCarte"`
}

// Category returns a pointer to the named category so callers can edit it in place.
func (m *FullMenu) Category(c Category) *MenuCategory {
	switch c {
	case CategorySoup:
		return &m.Soup
	case CategoryAppetizer:
		return &m.Appetizer
	case CategoryMain:
		return &m.Main
	case CategoryALaCarte:
		return &m.ALaCarte
	}
	return nil
}

// AllItems flattens the catalog in soup, appetizer, main, a la carte order.
func (m FullMenu) AllItems() []MenuItem {
	items := make([]MenuItem, 0, len(m.Soup.Items)+len(m.Appetizer.Items)+len(m.Main.Items)+len(m.ALaCarte.Items))
	items = append(items, m.Soup.Items...)
	items = append(items, m.Appetizer.Items...)
	items = append(items, m.Main.Items...)
	items = append(items, m.ALaCarte.Items...)
	return items
}

// FindItem looks an id up across all four categories. The first match wins.
func (m FullMenu) FindItem(id string) (MenuItem, bool) {
	if id == "" {
		return MenuItem{}, false
	}
	for _, item := range m.AllItems() {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// ApplyPolicy sets the fixed selection flags on every category.
func (m *FullMenu) ApplyPolicy() {
	for _, c := range []*MenuCategory{&m.Soup, &m.Appetizer, &m.Main} {
		c.Required = true
		c.MultiSelect = false
	}
	m.ALaCarte.Required = false
	m.ALaCarte.MultiSelect = true
}
