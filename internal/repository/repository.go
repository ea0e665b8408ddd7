// backend-go/internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

// PharmacyRepository reads the pharmacy identity and profile stores.
type PharmacyRepository interface {
	Identities(ctx context.Context) ([]domain.PharmacyIdentity, error)
	Profiles(ctx context.Context) ([]domain.PharmacyProfile, error)
}

// InventoryRepository reads the pharmacy inventory catalog.
type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	TopByStock(ctx context.Context, limit int) ([]domain.InventoryRecord, error)
}

// OrderRepository reads patient orders with their line items.
type OrderRepository interface {
	ListSince(ctx context.Context, since time.Time) ([]domain.Order, error)
}
