// backend-go/internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/bioaura/platform/backend-go/internal/repository"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// orderItemRow flattens the orders/order_items join so one query returns
// complete orders. Rows come back grouped by order id.
type orderItemRow struct {
	OrderID      string     `db:"order_id"`
	CreatedAt    time.Time  `db:"created_at"`
	PlacedAt     *time.Time `db:"placed_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
	MedicineID   string     `db:"medicine_id"`
	MedicineName string     `db:"medicine_name"`
	Quantity     int        `db:"quantity"`
	PackSize     int        `db:"pack_size"`
	UnitPrice    float64    `db:"unit_price"`
	TotalPrice   float64    `db:"total_price"`
	PharmacyID   string     `db:"pharmacy_id"`
}

func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	query := `
		SELECT
			o.id AS order_id,
			o.created_at,
			o.placed_at,
			o.updated_at,
			COALESCE(i.medicine_id, '') AS medicine_id,
			COALESCE(i.medicine_name, '') AS medicine_name,
			i.quantity,
			COALESCE(i.pack_size, 1) AS pack_size,
			COALESCE(i.unit_price, 0) AS unit_price,
			COALESCE(i.total_price, 0) AS total_price,
			COALESCE(i.pharmacy_id, '') AS pharmacy_id
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.created_at >= $1
		ORDER BY o.created_at, o.id
	`

	var rows []orderItemRow
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	orders := make([]domain.Order, 0)
	index := make(map[string]int)
	for _, row := range rows {
		pos, ok := index[row.OrderID]
		if !ok {
			pos = len(orders)
			index[row.OrderID] = pos
			orders = append(orders, domain.Order{
				ID:        row.OrderID,
				CreatedAt: row.CreatedAt,
				PlacedAt:  row.PlacedAt,
				UpdatedAt: row.UpdatedAt,
			})
		}
		orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
			MedicineID:   row.MedicineID,
			MedicineName: row.MedicineName,
			Quantity:     row.Quantity,
			PackSize:     row.PackSize,
			UnitPrice:    row.UnitPrice,
			TotalPrice:   row.TotalPrice,
			PharmacyID:   row.PharmacyID,
		})
	}

	return orders, nil
}
