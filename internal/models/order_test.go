package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pick(t *testing.T, menu FullMenu, id string) *MenuItem {
	t.Helper()
	item, ok := menu.FindItem(id)
	require.True(t, ok, "item %s missing from catalog", id)
	return &item
}

func TestIsConfirmable(t *testing.T) {
	menu := DefaultMenu()

	full := NewOrder("Stella")
	full.Soup = pick(t, menu, "s1")
	full.Appetizer = pick(t, menu, "ap2")
	full.Main = pick(t, menu, "m3")
	assert.True(t, IsConfirmable(full))

	t.Run("notes and add-ons do not matter", func(t *testing.T) {
		o := full.Clone()
		o.Notes = "medium rare"
		o.ALaCarte = append(o.ALaCarte, *pick(t, menu, "al2"))
		assert.True(t, IsConfirmable(o))

		o = NewOrder("Stella")
		o.Notes = "anything"
		o.ALaCarte = []MenuItem{*pick(t, menu, "al1")}
		assert.False(t, IsConfirmable(o))
	})

	for _, c := range []Category{CategorySoup, CategoryAppetizer, CategoryMain} {
		t.Run("missing "+string(c), func(t *testing.T) {
			o := full.Clone()
			switch c {
			case CategorySoup:
				o.Soup = nil
			case CategoryAppetizer:
				o.Appetizer = nil
			case CategoryMain:
				o.Main = nil
			}
			assert.False(t, IsConfirmable(o))
		})
	}
}

func TestConfirm(t *testing.T) {
	menu := DefaultMenu()
	draft := NewOrder("Jackson")
	draft.Soup = pick(t, menu, "s2")
	draft.Appetizer = pick(t, menu, "ap1")

	got, ok := Confirm(draft)
	assert.False(t, ok)
	assert.False(t, got.IsConfirmed)

	draft.Main = pick(t, menu, "m5")
	got, ok = Confirm(draft)
	require.True(t, ok)
	assert.True(t, got.IsConfirmed)
	assert.False(t, draft.IsConfirmed, "draft must not be mutated")
}

func TestToggleAddOn(t *testing.T) {
	menu := DefaultMenu()
	o := NewOrder("Channing")

	o.ToggleAddOn(*pick(t, menu, "al1"))
	o.ToggleAddOn(*pick(t, menu, "al3"))
	assert.Equal(t, []string{"al1", "al3"}, ids(o.ALaCarte))

	o.ToggleAddOn(*pick(t, menu, "al1"))
	assert.Equal(t, []string{"al3"}, ids(o.ALaCarte))
	assert.False(t, o.HasAddOn("al1"))
	assert.True(t, o.HasAddOn("al3"))
}

func TestToggleAddOnDoesNotAliasClone(t *testing.T) {
	menu := DefaultMenu()
	o := NewOrder("Channing")
	o.ToggleAddOn(*pick(t, menu, "al1"))
	o.ToggleAddOn(*pick(t, menu, "al2"))

	c := o.Clone()
	c.ToggleAddOn(*pick(t, menu, "al1"))

	assert.Equal(t, []string{"al1", "al2"}, ids(o.ALaCarte))
	assert.Equal(t, []string{"al2"}, ids(c.ALaCarte))
}

func TestMergeImportWins(t *testing.T) {
	orderA := UserOrder{UserName: "A", Notes: "a"}
	orderB := UserOrder{UserName: "B", Notes: "b"}
	orderB2 := UserOrder{UserName: "B", Notes: "b2"}
	orderC := UserOrder{UserName: "C", Notes: "c"}

	existing := OrderSet{"A": orderA, "B": orderB}
	merged := existing.Merge(OrderSet{"B": orderB2, "C": orderC})

	assert.Equal(t, OrderSet{"A": orderA, "B": orderB2, "C": orderC}, merged)
	assert.Equal(t, orderB, existing["B"], "merge must not modify its receiver")
}

func TestNamesOrder(t *testing.T) {
	s := OrderSet{
		"Zed":      {},
		"Channing": {},
		"Jackson":  {},
		"Amy":      {},
	}
	assert.Equal(t, []string{"Jackson", "Channing", "Amy", "Zed"}, s.Names())
}

func TestWaiting(t *testing.T) {
	s := OrderSet{
		"Jackson": {UserName: "Jackson", IsConfirmed: true},
		"Stella":  {UserName: "Stella"},
	}
	assert.Equal(t, []Member{Stella, AiNing, Channing}, s.Waiting())
}

func TestParseMember(t *testing.T) {
	m, err := ParseMember("Ai Ning")
	require.NoError(t, err)
	assert.Equal(t, AiNing, m)
	assert.Equal(t, "A", m.Initial())

	_, err = ParseMember("jackson")
	assert.Error(t, err)
}

func TestFindItemAcrossCategories(t *testing.T) {
	menu := DefaultMenu()
	for _, id := range []string{"s3", "ap2", "m14", "al2"} {
		_, ok := menu.FindItem(id)
		assert.True(t, ok, id)
	}
	_, ok := menu.FindItem("m99")
	assert.False(t, ok)
	_, ok = menu.FindItem("")
	assert.False(t, ok)
}

func ids(items []MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
