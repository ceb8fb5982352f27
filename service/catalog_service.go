package service

import (
	"fmt"
	"strings"
	"time"

	"voice-shopping-assistant/models"
	"voice-shopping-assistant/utils"
)

// DefaultCategory is assigned when no keyword matches
const DefaultCategory = "general"

// maxLowStockSuggestions caps LowStockSuggestions output
const maxLowStockSuggestions = 3

// categoryKeywords is scanned in order; the first category with a keyword
// contained in the name wins.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"dairy", []string{"milk", "almond milk", "yogurt", "paneer", "butter", "ghee", "curd", "dahi", "cheese"}},
	{"bakery", []string{"bread", "loaf", "bun", "cake", "biscuit"}},
	{"produce", []string{"apple", "banana", "mango", "orange", "tomato", "onion", "potato", "carrot"}},
	{"staples", []string{"basmati rice", "atta", "dal", "oil", "salt", "sugar", "tea", "coffee", "flour", "rice"}},
	{"personal care", []string{"toothpaste", "soap", "shampoo", "deodorant"}},
	{"snacks", []string{"chips", "biscuits", "chocolate", "nuts", "cookies"}},
	{"beverages", []string{"juice", "soda", "water", "soft drink"}},
}

// substitutes is intentionally one-directional except where mirrored
var substitutes = map[string][]string{
	"milk":        {"almond milk", "soy milk", "oat milk"},
	"almond milk": {"milk", "soy milk", "oat milk"},
	"bread":       {"roti", "naan", "pita bread"},
	"apple":       {"banana", "orange", "pear"},
	"toothpaste":  {"dabur red", "colgate", "pepsodent"},
	"rice":        {"quinoa", "couscous", "millet"},
	"oil":         {"ghee", "butter", "olive oil"},
}

var (
	summerItems  = []string{"mango", "watermelon", "cucumber"}
	monsoonItems = []string{"apple", "pear", "grapes"}
	autumnItems  = []string{"pomegranate", "guava", "papaya"}
	winterItems  = []string{"orange", "sweet lime", "strawberry"}
)

var defaultSuggestions = []models.Suggestion{
	{Name: "milk", Reason: "daily essential", Priority: models.PriorityLow},
	{Name: "bread", Reason: "breakfast staple", Priority: models.PriorityLow},
	{Name: "apple", Reason: "healthy snack", Priority: models.PriorityLow},
	{Name: "toothpaste", Reason: "personal care", Priority: models.PriorityLow},
}

// defaultCatalog is the reference product table
var defaultCatalog = []models.CatalogItem{
	// Dairy
	{ID: "sku-milk-1", Name: "milk", Brand: "Amul", Size: "1L", Category: "dairy", Price: 60},
	{ID: "sku-milk-2", Name: "milk", Brand: "Mother Dairy", Size: "1L", Category: "dairy", Price: 58},
	{ID: "sku-almond-milk-1", Name: "almond milk", Brand: "Sofit", Size: "1L", Category: "dairy", Price: 180},

	// Bakery
	{ID: "sku-bread-1", Name: "bread", Brand: "Britannia", Size: "400g", Category: "bakery", Price: 38},
	{ID: "sku-bread-2", Name: "bread", Brand: "Modern", Size: "400g", Category: "bakery", Price: 36},

	// Produce
	{ID: "sku-apple-1", Name: "apple", Brand: "Kinnaur", Size: "1kg", Category: "produce", Price: 180},
	{ID: "sku-banana-1", Name: "banana", Brand: "Yelakki", Size: "1dozen", Category: "produce", Price: 60},

	// Staples
	{ID: "sku-rice-1", Name: "basmati rice", Brand: "Daawat", Size: "5kg", Category: "staples", Price: 699},
	{ID: "sku-rice-2", Name: "basmati rice", Brand: "India Gate", Size: "5kg", Category: "staples", Price: 749},
	{ID: "sku-atta-1", Name: "atta", Brand: "Aashirvaad", Size: "5kg", Category: "staples", Price: 330},

	// Personal care
	{ID: "sku-toothpaste-1", Name: "toothpaste", Brand: "Colgate", Size: "100g", Category: "personal care", Price: 85},
	{ID: "sku-toothpaste-2", Name: "toothpaste", Brand: "Pepsodent", Size: "100g", Category: "personal care", Price: 75},
	{ID: "sku-toothpaste-3", Name: "toothpaste", Brand: "Dabur Red", Size: "100g", Category: "personal care", Price: 70},
}

// CatalogService answers product questions from a static catalog
type CatalogService struct {
	items []models.CatalogItem
	now   func() time.Time
}

// NewCatalogService creates a CatalogService over the default catalog
func NewCatalogService() *CatalogService {
	return NewCatalogServiceWithItems(defaultCatalog, time.Now)
}

// NewCatalogServiceWithItems creates a CatalogService over items, using now
// to resolve the current season. The slice is copied.
func NewCatalogServiceWithItems(items []models.CatalogItem, now func() time.Time) *CatalogService {
	if now == nil {
		now = time.Now
	}
	copied := make([]models.CatalogItem, len(items))
	copy(copied, items)
	return &CatalogService{items: copied, now: now}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// Items returns a copy of the whole catalog in declaration order
func (s *CatalogService) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(s.items))
	copy(out, s.items)
	return out
}

// Search returns catalog items matching every provided predicate, in
// declaration order. Never returns nil.
func (s *CatalogService) Search(filter models.CatalogFilter) []models.CatalogItem {
	query := strings.TrimSpace(filter.Query)
	brand := strings.TrimSpace(filter.Brand)
	category := strings.TrimSpace(filter.Category)

	results := []models.CatalogItem{}
	for _, item := range s.items {
		if !utils.ContainsFold(item.Name, query) {
			continue
		}
		if !utils.ContainsFold(item.Brand, brand) {
			continue
		}
		if !utils.ContainsFold(item.Category, category) {
			continue
		}
		price := float64(item.Price)
		if filter.MinPrice != nil && price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && price > *filter.MaxPrice {
			continue
		}
		results = append(results, item)
	}
	return results
}

// Categorize returns the category of the first keyword contained in name
func (s *CatalogService) Categorize(name string) string {
	n := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(n, word) {
				return entry.category
			}
		}
	}
	return DefaultCategory
}

// SubstitutesFor returns known alternatives for name, or an empty slice
func (s *CatalogService) SubstitutesFor(name string) []string {
	subs, ok := substitutes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return []string{}
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// SeasonalItems returns the regional seasonal set for a 1-12 month
func (s *CatalogService) SeasonalItems(month int) []string {
	var set []string
	switch {
	case month >= 1 && month <= 6:
		set = summerItems
	case month >= 7 && month <= 9:
		set = monsoonItems
	case month == 10 || month == 11:
		set = autumnItems
	case month == 12:
		set = winterItems
	default:
		return []string{}
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// CurrentSeasonalItems returns SeasonalItems for the current month
func (s *CatalogService) CurrentSeasonalItems() []string {
	return s.SeasonalItems(int(s.now().Month()))
}

// LowStockSuggestions flags names that appear at least twice on the list.
// Output follows first-seen order and is capped at three entries.
func (s *CatalogService) LowStockSuggestions(items []models.ListItem) []models.Suggestion {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		name := strings.ToLower(item.Name)
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	suggestions := []models.Suggestion{}
	for _, name := range order {
		if counts[name] < 2 {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			Name:     name,
			Reason:   fmt.Sprintf("You frequently buy %s and haven't added it recently", name),
			Priority: models.PriorityHigh,
		})
		if len(suggestions) == maxLowStockSuggestions {
			break
		}
	}
	return suggestions
}

// DefaultSuggestions returns the generic starter suggestions
func (s *CatalogService) DefaultSuggestions() []models.Suggestion {
	out := make([]models.Suggestion, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}
