package engine

import (
	"testing"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestAggregateOrdersSingleRegion(t *testing.T) {
	snap := puneSnapshot()
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	analytics := AggregateOrders(snap.Orders, contexts, BuildInventoryIndex(snap.Inventory), testNow)

	require.Equal(t, 1, analytics.TotalOrders)
	require.Equal(t, 2, analytics.TotalItems)

	require.Len(t, analytics.RegionOrder, 1)
	region := analytics.PerRegion["Pune|Maharashtra"]
	require.NotNil(t, region)
	require.Equal(t, 2, region.TotalItems)
	require.Equal(t, 2, region.Categories["Respiratory"])
	require.Len(t, region.OrderIDs, 1)

	sales := analytics.PerPharmacy["ph1"]
	require.NotNil(t, sales)
	require.Equal(t, 2, sales.TotalItemsSold)
	require.InDelta(t, 100, sales.TotalRevenue, 1e-9)

	stat := analytics.PerMedicine["med1"]
	require.NotNil(t, stat)
	require.Equal(t, "Salbutamol", stat.Name)
	require.Equal(t, 2, stat.TotalDemand)
	require.Equal(t, 2, analytics.CategoryDemand["Respiratory"])
}

func TestAggregateOrdersPackSizeAndSkips(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{identity("ph1", "A", "Pune", "Maharashtra")}, nil)
	inventory := BuildInventoryIndex([]domain.InventoryRecord{{ID: "med1", PharmacyID: "ph1", Name: "X", Category: "Fever"}})

	orders := []domain.Order{orderOn("ord1", testNow,
		// pack size zero is treated as one
		domain.OrderItem{MedicineID: "med1", Quantity: 3, PackSize: 0, UnitPrice: 10},
		// non-positive quantity is skipped
		domain.OrderItem{MedicineID: "med1", Quantity: 0, PackSize: 2},
		// unresolvable pharmacy is skipped
		domain.OrderItem{MedicineID: "unknown", Quantity: 1, PackSize: 1},
	)}

	analytics := AggregateOrders(orders, contexts, inventory, testNow)
	require.Equal(t, 3, analytics.TotalItems)
	require.Equal(t, 1, analytics.TotalOrders)
	// revenue falls back to unit price times effective quantity
	require.InDelta(t, 30, analytics.PerPharmacy["ph1"].TotalRevenue, 1e-9)
}

func TestAggregateOrdersItemPharmacyWins(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{
		identity("ph1", "A", "Pune", "Maharashtra"),
		identity("ph2", "B", "Nashik", "Maharashtra"),
	}, nil)
	inventory := BuildInventoryIndex([]domain.InventoryRecord{{ID: "med1", PharmacyID: "ph1", Name: "X"}})

	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "med1", Quantity: 1, PackSize: 1, PharmacyID: "ph2"},
	)}

	analytics := AggregateOrders(orders, contexts, inventory, testNow)
	require.Nil(t, analytics.PerPharmacy["ph1"])
	require.Equal(t, 1, analytics.PerPharmacy["ph2"].TotalItemsSold)
	require.Contains(t, analytics.PerRegion, "Nashik|Maharashtra")
}

func TestAggregateOrdersRegionKeyDisambiguation(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{
		identity("ph1", "A", "Springfield", "Karnataka"),
		identity("ph2", "B", "Springfield", "Kerala"),
	}, nil)

	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "m1", Quantity: 1, PackSize: 1, PharmacyID: "ph1"},
		domain.OrderItem{MedicineID: "m2", Quantity: 1, PackSize: 1, PharmacyID: "ph2"},
	)}

	analytics := AggregateOrders(orders, contexts, nil, testNow)
	require.Len(t, analytics.RegionOrder, 2)

	insights := BuildRegionalInsights(analytics, nil)
	require.Len(t, insights, 2)
}

func TestAggregateOrdersUnresolvedMedicineCategory(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{identity("ph1", "A", "Pune", "Maharashtra")}, nil)

	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "ghost", MedicineName: "Ghost", Quantity: 2, PackSize: 1, PharmacyID: "ph1"},
	)}

	analytics := AggregateOrders(orders, contexts, nil, testNow)
	require.Equal(t, 2, analytics.CategoryDemand["General"])
	// no inventory record, so no per-medicine stat
	require.Empty(t, analytics.MedicineOrder)
}
