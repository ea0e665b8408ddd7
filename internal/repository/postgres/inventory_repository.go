// backend-go/internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/bioaura/platform/backend-go/internal/repository"
)

const inventoryColumns = `
	id, pharmacy_id, name,
	COALESCE(generic, '') AS generic,
	COALESCE(category, '') AS category,
	COALESCE(dosage, '') AS dosage,
	COALESCE(form, '') AS form,
	stock, threshold
`

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	query := `SELECT ` + inventoryColumns + ` FROM pharmacy_inventory_items`

	var items []domain.InventoryRecord
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("error listing inventory items: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) TopByStock(ctx context.Context, limit int) ([]domain.InventoryRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	query := `
		SELECT ` + inventoryColumns + `
		FROM pharmacy_inventory_items
		ORDER BY stock DESC
		LIMIT $1
	`

	var items []domain.InventoryRecord
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("error listing top stocked items: %w", err)
	}

	return items, nil
}
