package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"voice-shopping-assistant/models"
)

// MemoryListRepository keeps the shopping list in process memory.
// Contents are lost when the process exits.
type MemoryListRepository struct {
	mu    sync.RWMutex
	items []models.ListItem
}

// NewMemoryListRepository creates an empty MemoryListRepository
func NewMemoryListRepository() *MemoryListRepository {
	return &MemoryListRepository{}
}

// Ensure MemoryListRepository implements ListRepositoryInterface
var _ ListRepositoryInterface = (*MemoryListRepository)(nil)

// Add appends item with a fresh id
func (r *MemoryListRepository) Add(_ context.Context, item models.ListItem) (*models.ListItem, error) {
	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.items = append(r.items, item)
	r.mu.Unlock()

	return &item, nil
}

// List returns a copy of all items in insertion order
func (r *MemoryListRepository) List(_ context.Context) ([]models.ListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.ListItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// Delete removes the item with id; unknown ids are ignored
func (r *MemoryListRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored items
func (r *MemoryListRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
