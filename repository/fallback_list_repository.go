package repository

import (
	"context"
	"sync/atomic"
	"time"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
)

// FallbackListRepository serves list operations from a durable repository
// and falls back to an in-memory one whenever the durable call fails.
//
// The fallback is best-effort: items written while degraded live only in
// process memory, are not copied back to the durable store, and are lost
// on restart. Callers never see storage errors.
type FallbackListRepository struct {
	durable  ListRepositoryInterface
	memory   *MemoryListRepository
	timeout  time.Duration
	degraded atomic.Bool
}

// NewFallbackListRepository wraps durable. A nil durable repository means
// every operation is served from memory.
func NewFallbackListRepository(durable ListRepositoryInterface, timeout time.Duration) *FallbackListRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &FallbackListRepository{
		durable: durable,
		memory:  NewMemoryListRepository(),
		timeout: timeout,
	}
}

// Ensure FallbackListRepository implements ListRepositoryInterface
var _ ListRepositoryInterface = (*FallbackListRepository)(nil)

// Backend names the configured primary store
func (r *FallbackListRepository) Backend() string {
	if r.durable == nil {
		return "memory"
	}
	return "postgres"
}

// Degraded reports whether the most recent durable call failed
func (r *FallbackListRepository) Degraded() bool {
	return r.durable == nil || r.degraded.Load()
}

// Add stores item durably, or in memory when that fails
func (r *FallbackListRepository) Add(ctx context.Context, item models.ListItem) (*models.ListItem, error) {
	if r.durable != nil {
		dctx, cancel := context.WithTimeout(ctx, r.timeout)
		saved, err := r.durable.Add(dctx, item)
		cancel()
		if err == nil {
			r.degraded.Store(false)
			return saved, nil
		}
		r.markDegraded("Add", err)
	}

	saved, _ := r.memory.Add(ctx, item)
	logger.S().Infof("📝 Item added to in-memory storage: %s", saved.ID)
	return saved, nil
}

// List returns the durable contents, or the in-memory contents when that fails
func (r *FallbackListRepository) List(ctx context.Context) ([]models.ListItem, error) {
	if r.durable != nil {
		dctx, cancel := context.WithTimeout(ctx, r.timeout)
		items, err := r.durable.List(dctx)
		cancel()
		if err == nil {
			r.degraded.Store(false)
			if items == nil {
				items = []models.ListItem{}
			}
			return items, nil
		}
		r.markDegraded("List", err)
	}

	items, _ := r.memory.List(ctx)
	logger.S().Debugf("📝 Retrieved %d items from in-memory storage", len(items))
	return items, nil
}

// Delete removes id durably, or from memory when that fails
func (r *FallbackListRepository) Delete(ctx context.Context, id string) error {
	if r.durable != nil {
		dctx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.durable.Delete(dctx, id)
		cancel()
		if err == nil {
			r.degraded.Store(false)
			return nil
		}
		r.markDegraded("Delete", err)
	}

	_ = r.memory.Delete(ctx, id)
	logger.S().Infof("📝 Item deleted from in-memory storage: %s", id)
	return nil
}

func (r *FallbackListRepository) markDegraded(op string, err error) {
	r.degraded.Store(true)
	logger.S().Warnf("⚠️  %s: durable list store unavailable, using in-memory storage: %v", op, err)
}
