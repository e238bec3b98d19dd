package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"dinnerconcierge/internal/models"

	"github.com/jszwec/csvutil"
)

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// ParseCatalog reads a catalog file with the columns category, id, name and
// optionally price and description. Category titles come from the built-in menu.
func (p *Parser) ParseCatalog() (models.FullMenu, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return models.FullMenu{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadCatalog(file)
}

func ReadCatalog(r io.Reader) (models.FullMenu, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return models.FullMenu{}, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var records []models.CatalogRecord
	if err := decoder.Decode(&records); err != nil && err != io.EOF {
		return models.FullMenu{}, fmt.Errorf("failed to decode CSV: %w", err)
	}

	defaults := models.DefaultMenu()
	var menu models.FullMenu
	for _, c := range models.Categories {
		menu.Category(c).Title = defaults.Category(c).Title
		menu.Category(c).Items = []models.MenuItem{}
	}

	seen := make(map[string]int)
	for i, record := range records {
		line := i + 2 // header is line 1
		category, err := models.ParseCategory(strings.TrimSpace(record.Category))
		if err != nil {
			return models.FullMenu{}, fmt.Errorf("line %d: %w", line, err)
		}
		id := strings.TrimSpace(record.ID)
		name := strings.TrimSpace(record.Name)
		if id == "" || name == "" {
			return models.FullMenu{}, fmt.Errorf("line %d: id and name are required", line)
		}
		if prev, dup := seen[id]; dup {
			return models.FullMenu{}, fmt.Errorf("line %d: id %q already used on line %d", line, id, prev)
		}
		seen[id] = line

		c := menu.Category(category)
		c.Items = append(c.Items, models.MenuItem{
			ID:          id,
			Name:        name,
			Price:       record.Price,
			Description: strings.TrimSpace(record.Description),
		})
	}

	menu.ApplyPolicy()
	return menu, nil
}

// WriteCatalog writes menu in the format ParseCatalog reads.
func WriteCatalog(w io.Writer, menu models.FullMenu) error {
	var records []models.CatalogRecord
	for _, c := range models.Categories {
		for _, item := range menu.Category(c).Items {
			records = append(records, models.CatalogRecord{
				Category:    string(c),
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
			})
		}
	}

	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)
	if len(records) == 0 {
		if err := encoder.EncodeHeader(models.CatalogRecord{}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	} else if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
