package models

// CatalogRecord is one row of a catalog CSV file.
type CatalogRecord struct {
	Category    string   `csv:"category"`
	ID          string   `csv:"id"`
	Name        string   `csv:"name"`
	Price       *float64 `csv:"price,omitempty"`
	Description string   `csv:"description,omitempty"`
}

// OrderRecord is one row of the CSV staff export.
type OrderRecord struct {
	Name      string `csv:"name"`
	Soup      string `csv:"soup"`
	Appetizer string `csv:"appetizer"`
	Main      string `csv:"main"`
	AddOns    string `csv:"add_ons"`
	Notes     string `csv:"notes"`
	Confirmed bool   `csv:"confirmed"`
}
