package extract

// schema is the OpenAPI subset accepted as a Gemini responseSchema.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Nullable   bool               `json:"nullable,omitempty"`
}

func menuSchema() *schema {
	item := &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"id":    {Type: "STRING"},
			"name":  {Type: "STRING"},
			"price": {Type: "NUMBER", Nullable: true},
		},
		Required: []string{"id", "name"},
	}
	category := &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"title":       {Type: "STRING"},
			"items":       {Type: "ARRAY", Items: item},
			"required":    {Type: "BOOLEAN"},
			"multiSelect": {Type: "BOOLEAN"},
		},
		Required: []string{"title", "items"},
	}
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"soup":      category,
			"appetizer": category,
			"main":      category,
			"aLaCarte":  category,
		},
		Required: []string{"soup", "appetizer", "main", "aLaCarte"},
	}
}
