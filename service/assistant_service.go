package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
	"voice-shopping-assistant/repository"
	"voice-shopping-assistant/utils"
)

var (
	// ErrMissingMessage is returned when a query carries no text
	ErrMissingMessage = errors.New("message is required")
	// ErrInvalidListItem is returned for direct list operations with bad input
	ErrInvalidListItem = errors.New("invalid list item")
)

const (
	unknownItemName      = "unknown item"
	directAddCategory    = "uncategorized"
	defaultFallbackReply = "Sorry, I didn't understand that."
	seasonalPicks        = 2
	defaultPicks         = 2
)

// AssistantService turns classified utterances into list and catalog actions
type AssistantService struct {
	classifier ClassifierInterface
	catalog    CatalogServiceInterface
	list       repository.ListRepositoryInterface
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(classifier ClassifierInterface, catalog CatalogServiceInterface, list repository.ListRepositoryInterface) *AssistantService {
	return &AssistantService{
		classifier: classifier,
		catalog:    catalog,
		list:       list,
	}
}

// Query classifies text and dispatches the result
func (s *AssistantService) Query(ctx context.Context, text, sessionID string) (*models.AssistantResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingMessage
	}

	classification, err := s.classifier.Classify(ctx, sessionID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to classify query: %w", err)
	}
	if classification == nil {
		classification = &models.Classification{Intent: models.IntentUnknown, QueryText: text}
	}

	logger.S().Infof("🧭 Query: intent=%s source=%s", classification.Intent, classification.Source)
	return s.Dispatch(ctx, classification)
}

// Dispatch performs the action for a classification. Only AddItem and
// RemoveItem mutate the list.
func (s *AssistantService) Dispatch(ctx context.Context, c *models.Classification) (*models.AssistantResponse, error) {
	var (
		resp *models.AssistantResponse
		err  error
	)

	switch c.Intent {
	case models.IntentAddItem:
		resp, err = s.handleAdd(ctx, c.Slots)
	case models.IntentRemoveItem:
		resp, err = s.handleRemove(ctx, c.Slots)
	case models.IntentGetList:
		resp, err = s.handleList(ctx)
	case models.IntentSearchItem:
		resp = s.handleSearch(c.Slots)
	case models.IntentSubstitutes:
		resp = s.handleSubstitutes(c.Slots)
	case models.IntentSuggestions:
		resp, err = s.handleSuggestions(ctx)
	default:
		resp = s.handleUnknown(c)
	}
	if err != nil {
		return nil, err
	}

	resp.Intent = responseIntent(c)
	resp.QueryText = c.QueryText
	resp.Source = c.Source
	return resp, nil
}

func (s *AssistantService) handleAdd(ctx context.Context, slots models.Slots) (*models.AssistantResponse, error) {
	item, ok := slots.Text("item")
	if !ok {
		item = unknownItemName
	}
	quantity, ok := slots.Get("quantity").Int()
	if !ok || quantity < 1 {
		quantity = 1
	}

	saved, err := s.list.Add(ctx, models.ListItem{
		Name:     item,
		Quantity: quantity,
		Category: s.catalog.Categorize(item),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", item, err)
	}

	return &models.AssistantResponse{
		Action:          models.ActionAdd,
		Data:            saved,
		ResponseMessage: fmt.Sprintf("Added %d %s(s) to your list.", quantity, item),
	}, nil
}

func (s *AssistantService) handleRemove(ctx context.Context, slots models.Slots) (*models.AssistantResponse, error) {
	item, ok := slots.Text("item")
	if !ok {
		return missingSlot("No item recognized to remove."), nil
	}

	items, err := s.list.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	// First match in store order wins when names repeat
	var matchID string
	for _, existing := range items {
		if utils.EqualFoldTrim(existing.Name, item) {
			matchID = existing.ID
			break
		}
	}

	resp := &models.AssistantResponse{Action: models.ActionRemove}
	if matchID == "" {
		resp.ResponseMessage = fmt.Sprintf("%s not found in your list.", item)
		return resp, nil
	}

	if err := s.list.Delete(ctx, matchID); err != nil {
		return nil, fmt.Errorf("failed to remove %s: %w", item, err)
	}
	resp.ResponseMessage = fmt.Sprintf("Removed %s from your list.", item)
	return resp, nil
}

func (s *AssistantService) handleList(ctx context.Context) (*models.AssistantResponse, error) {
	items, err := s.list.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}
	if items == nil {
		items = []models.ListItem{}
	}

	message := "Your shopping list is empty."
	if len(items) > 0 {
		message = "Here is your shopping list."
	}

	return &models.AssistantResponse{
		Action:          models.ActionList,
		Items:           items,
		ResponseMessage: message,
	}, nil
}

func (s *AssistantService) handleSearch(slots models.Slots) *models.AssistantResponse {
	item, hasItem := slots.Text("item")
	brand, _ := slots.Text("brand")
	category, hasCategory := slots.Text("category")

	filter := models.CatalogFilter{Brand: brand}
	if hasItem {
		filter.Query = item
	} else if hasCategory {
		filter.Category = category
	}
	if minPrice, ok := slots.Get("minPrice").Number(); ok {
		filter.MinPrice = &minPrice
	}
	if maxPrice, ok := slots.Get("maxPrice").Number(); ok {
		filter.MaxPrice = &maxPrice
	}

	results := s.catalog.Search(filter)

	subs := []models.Substitute{}
	if len(results) == 0 && hasItem && !hasCategory {
		for _, name := range s.catalog.SubstitutesFor(item) {
			subs = append(subs, models.Substitute{
				Name:         name,
				Reason:       "alternative to " + item,
				IsSubstitute: true,
			})
		}
	}

	var message string
	switch {
	case len(results) > 0:
		message = fmt.Sprintf("Found %d result(s).", len(results))
	case len(subs) > 0:
		message = "No exact matches found, but here are some alternatives."
	default:
		message = "I couldn't find matching items."
	}

	return &models.AssistantResponse{
		Action:          models.ActionSearch,
		Results:         results,
		Substitutes:     subs,
		ResponseMessage: message,
	}
}

func (s *AssistantService) handleSubstitutes(slots models.Slots) *models.AssistantResponse {
	item, ok := slots.Text("item")
	if !ok {
		return missingSlot("No item specified to find substitutes for.")
	}

	subs := []models.Substitute{}
	for _, name := range s.catalog.SubstitutesFor(item) {
		subs = append(subs, models.Substitute{Name: name, Reason: "alternative to " + item})
	}

	message := fmt.Sprintf("Here are some alternatives to %s.", item)
	if len(subs) == 0 {
		message = fmt.Sprintf("I don't have substitutes for %s.", item)
	}

	return &models.AssistantResponse{
		Action:          models.ActionSubstitutes,
		Item:            item,
		Substitutes:     subs,
		ResponseMessage: message,
	}
}

func (s *AssistantService) handleSuggestions(ctx context.Context) (*models.AssistantResponse, error) {
	items, err := s.list.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	suggestions := s.catalog.LowStockSuggestions(items)

	seasonal := s.catalog.CurrentSeasonalItems()
	for i := 0; i < len(seasonal) && i < seasonalPicks; i++ {
		suggestions = append(suggestions, models.Suggestion{
			Name:     seasonal[i],
			Reason:   "in season now",
			Priority: models.PriorityMedium,
		})
	}

	defaults := s.catalog.DefaultSuggestions()
	for i := 0; i < len(defaults) && i < defaultPicks; i++ {
		suggestions = append(suggestions, defaults[i])
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	message := "I don't have suggestions yet."
	if len(suggestions) > 0 {
		message = "Here are some smart suggestions for you."
	}

	return &models.AssistantResponse{
		Action:          models.ActionSuggestions,
		Suggestions:     suggestions,
		ResponseMessage: message,
	}, nil
}

func (s *AssistantService) handleUnknown(c *models.Classification) *models.AssistantResponse {
	message := c.FulfillmentText
	if strings.TrimSpace(message) == "" {
		message = defaultFallbackReply
	}
	params := c.Slots
	if params == nil {
		params = models.Slots{}
	}
	return &models.AssistantResponse{
		ResponseMessage: message,
		Parameters:      params,
	}
}

// AddItem stores an item directly, without classification.
// quantity below 1 becomes 1 and an empty category becomes "uncategorized".
func (s *AssistantService) AddItem(ctx context.Context, name string, quantity int, category string) (*models.ListItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidListItem)
	}
	if quantity < 1 {
		quantity = 1
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = directAddCategory
	}

	saved, err := s.list.Add(ctx, models.ListItem{Name: name, Quantity: quantity, Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", name, err)
	}
	return saved, nil
}

// ListItems returns the stored list in insertion order
func (s *AssistantService) ListItems(ctx context.Context) ([]models.ListItem, error) {
	items, err := s.list.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}
	if items == nil {
		items = []models.ListItem{}
	}
	return items, nil
}

// DeleteItem removes an item by id; unknown ids are not an error
func (s *AssistantService) DeleteItem(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidListItem)
	}
	if err := s.list.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	return nil
}

// Catalog exposes the catalog engine used by the service
func (s *AssistantService) Catalog() CatalogServiceInterface {
	return s.catalog
}

// missingSlot reports a required slot that the classifier did not fill.
// The message is repeated as the reply so the user always hears something.
func missingSlot(message string) *models.AssistantResponse {
	return &models.AssistantResponse{Error: message, ResponseMessage: message}
}

// responseIntent names known intents canonically and echoes unknown ones
func responseIntent(c *models.Classification) string {
	if c.Intent != models.IntentUnknown && c.Intent != "" {
		return string(c.Intent)
	}
	if c.RawIntent != "" {
		return c.RawIntent
	}
	return string(models.IntentUnknown)
}
