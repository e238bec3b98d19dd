package csv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerconcierge/internal/models"
)

const catalogCSV = `category,id,name,price,description
soup,s1,Pumpkin Soup,,
appetizer,ap1,Smoked Salmon,,cold
main,m1,Sirloin,3400,
a_la_carte,al1,Foie Gras,1080,
`

func TestReadCatalog(t *testing.T) {
	menu, err := ReadCatalog(strings.NewReader(catalogCSV))
	require.NoError(t, err)

	require.Len(t, menu.Soup.Items, 1)
	assert.Nil(t, menu.Soup.Items[0].Price)
	assert.Equal(t, "cold", menu.Appetizer.Items[0].Description)
	require.NotNil(t, menu.Main.Items[0].Price)
	assert.Equal(t, 3400.0, *menu.Main.Items[0].Price)
	assert.Equal(t, "Foie Gras", menu.ALaCarte.Items[0].Name)

	assert.Equal(t, models.DefaultMenu().Main.Title, menu.Main.Title)
	assert.True(t, menu.Main.Required)
	assert.True(t, menu.ALaCarte.MultiSelect)
	assert.False(t, menu.ALaCarte.Required)
}

func TestReadCatalogRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"unknown category": "category,id,name\ndessert,d1,Cake\n",
		"missing name":     "category,id,name\nsoup,s1,\n",
		"duplicate id":     "category,id,name\nsoup,s1,A\nmain,s1,B\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCatalog(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestWriteCatalogRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, models.DefaultMenu()))
	assert.True(t, strings.HasPrefix(buf.String(), "category,id,name,price,description\n"))

	menu, err := ReadCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMenu(), menu)
}

func TestParserParseCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogCSV), 0644))

	menu, err := NewParser(path).ParseCatalog()
	require.NoError(t, err)
	assert.Len(t, menu.AllItems(), 4)

	_, err = NewParser(filepath.Join(t.TempDir(), "missing.csv")).ParseCatalog()
	assert.Error(t, err)
}
