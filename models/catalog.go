package models

// CatalogItem represents a single product in the static catalog
type CatalogItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Size     string `json:"size"`
	Category string `json:"category"`
	Price    int64  `json:"price"` // Whole rupees
}

// CatalogFilter represents optional search predicates over the catalog.
// A nil or empty field matches every item.
type CatalogFilter struct {
	Query    string
	Brand    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
