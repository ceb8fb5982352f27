package service

import "voice-shopping-assistant/models"

// CatalogServiceInterface defines the contract for catalog reasoning
type CatalogServiceInterface interface {
	Items() []models.CatalogItem
	Search(filter models.CatalogFilter) []models.CatalogItem
	Categorize(name string) string
	SubstitutesFor(name string) []string
	SeasonalItems(month int) []string
	CurrentSeasonalItems() []string
	LowStockSuggestions(items []models.ListItem) []models.Suggestion
	DefaultSuggestions() []models.Suggestion
}
