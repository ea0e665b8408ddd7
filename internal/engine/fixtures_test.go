package engine

import (
	"time"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func identity(id, name, city, state string) domain.PharmacyIdentity {
	return domain.PharmacyIdentity{
		ID:           id,
		Email:        id + "@pharmacy.in",
		PharmacyName: name,
		City:         city,
		State:        state,
	}
}

func orderOn(id string, day time.Time, items ...domain.OrderItem) domain.Order {
	return domain.Order{ID: id, CreatedAt: day, Items: items}
}

// puneSnapshot is the single-region fixture: one pharmacy in Pune with one
// low-stock respiratory item and one two-unit order against it.
func puneSnapshot() Snapshot {
	inventory := []domain.InventoryRecord{{
		ID:         "med1",
		PharmacyID: "ph1",
		Name:       "Salbutamol",
		Generic:    "salbutamol",
		Category:   "Respiratory",
		Dosage:     "100mcg",
		Form:       "Inhaler",
		Stock:      5,
		Threshold:  10,
	}}
	return Snapshot{
		Identities:   []domain.PharmacyIdentity{identity("ph1", "Pune Central", "Pune", "Maharashtra")},
		Inventory:    inventory,
		TopInventory: inventory,
		Orders: []domain.Order{orderOn("ord1", testNow.AddDate(0, 0, -1), domain.OrderItem{
			MedicineID: "med1",
			Quantity:   2,
			PackSize:   1,
			TotalPrice: 100,
		})},
		Days: 30,
		Now:  testNow,
	}
}
