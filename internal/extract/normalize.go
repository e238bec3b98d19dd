package extract

import (
	"fmt"
	"strings"

	"dinnerconcierge/internal/models"
)

var idPrefix = map[models.Category]string{
	models.CategorySoup:      "s",
	models.CategoryAppetizer: "ap",
	models.CategoryMain:      "m",
	models.CategoryALaCarte:  "al",
}

// Normalize post-processes a menu returned by the extraction service. Category
// policy flags are always overwritten; the service is trusted only for item
// content. Missing titles fall back to the built-in catalog's, unnamed items are
// dropped, and items without a unique id get one. The input is not modified.
func Normalize(raw models.FullMenu) models.FullMenu {
	defaults := models.DefaultMenu()
	var out models.FullMenu

	used := make(map[string]bool)
	for _, c := range models.Categories {
		for _, item := range raw.Category(c).Items {
			if id := strings.TrimSpace(item.ID); id != "" && strings.TrimSpace(item.Name) != "" {
				used[id] = false
			}
		}
	}

	for _, c := range models.Categories {
		src := raw.Category(c)
		dst := out.Category(c)

		dst.Title = strings.TrimSpace(src.Title)
		if dst.Title == "" {
			dst.Title = defaults.Category(c).Title
		}

		dst.Items = make([]models.MenuItem, 0, len(src.Items))
		next := 1
		for _, item := range src.Items {
			item.Name = strings.TrimSpace(item.Name)
			if item.Name == "" {
				continue
			}
			item.ID = strings.TrimSpace(item.ID)
			if taken, known := used[item.ID]; item.ID == "" || !known || taken {
				item.ID, next = freshID(idPrefix[c], next, used)
			}
			used[item.ID] = true
			if item.Price != nil {
				item.Price = models.Price(*item.Price)
			}
			dst.Items = append(dst.Items, item)
		}
	}

	out.ApplyPolicy()
	return out
}

func freshID(prefix string, next int, used map[string]bool) (string, int) {
	for {
		id := fmt.Sprintf("%s%d", prefix, next)
		next++
		if _, exists := used[id]; !exists {
			return id, next
		}
	}
}
