package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
)

// PostgresListRepository handles database operations for the shopping list
type PostgresListRepository struct {
	db *sql.DB
}

// NewPostgresListRepository creates a new PostgresListRepository
func NewPostgresListRepository(conn *sql.DB) *PostgresListRepository {
	return &PostgresListRepository{db: conn}
}

// Ensure PostgresListRepository implements ListRepositoryInterface
var _ ListRepositoryInterface = (*PostgresListRepository)(nil)

// Add inserts a new row and returns it with its id and creation time
func (r *PostgresListRepository) Add(ctx context.Context, item models.ListItem) (*models.ListItem, error) {
	item.ID = uuid.NewString()

	query := `
		INSERT INTO shopping_list (id, name, quantity, category)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, item.ID, item.Name, item.Quantity, item.Category).Scan(&item.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert list item: %w", err)
	}

	logger.S().Debugf("✓ Item added to database: id=%s, name=%s", item.ID, item.Name)
	return &item, nil
}

// List retrieves every row in insertion order
func (r *PostgresListRepository) List(ctx context.Context) ([]models.ListItem, error) {
	query := `
		SELECT id, name, quantity, category, created_at
		FROM shopping_list
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	items := []models.ListItem{}
	for rows.Next() {
		var item models.ListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate list items: %w", err)
	}

	logger.S().Debugf("✓ Retrieved %d items from database", len(items))
	return items, nil
}

// Delete removes the row with id. Deleting a missing id is not an error.
func (r *PostgresListRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_list WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete list item %s: %w", id, err)
	}
	logger.S().Debugf("✓ Item deleted from database: id=%s", id)
	return nil
}
