package repository

import (
	"context"

	"voice-shopping-assistant/models"
)

// ListRepositoryInterface defines the contract for shopping list storage.
// Add assigns the id, List returns items in insertion order and Delete
// succeeds whether or not the id exists.
type ListRepositoryInterface interface {
	Add(ctx context.Context, item models.ListItem) (*models.ListItem, error)
	List(ctx context.Context) ([]models.ListItem, error)
	Delete(ctx context.Context, id string) error
}
