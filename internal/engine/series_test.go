package engine

import (
	"testing"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestBuildHistoricalSeriesNormalized(t *testing.T) {
	history := map[string]*DayStat{
		"2024-03-02": {TotalItems: 5},
		"2024-03-01": {TotalItems: 10},
		"2024-03-03": {TotalItems: 0},
	}

	series := BuildHistoricalSeries(history)
	require.Equal(t, []domain.IndexPoint{
		{Date: "2024-03-01", Index: 100},
		{Date: "2024-03-02", Index: 50},
		{Date: "2024-03-03", Index: 0},
	}, series)
}

func TestBuildHistoricalSeriesEmpty(t *testing.T) {
	require.Empty(t, BuildHistoricalSeries(nil))
}

func TestBuildRegionalComparisonNormalized(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{
		identity("ph1", "A", "Pune", "Maharashtra"),
		identity("ph2", "B", "Nashik", "Maharashtra"),
	}, nil)
	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "m1", Quantity: 4, PackSize: 1, PharmacyID: "ph1"},
		domain.OrderItem{MedicineID: "m2", Quantity: 2, PackSize: 1, PharmacyID: "ph2"},
	)}

	comparison := BuildRegionalComparison(AggregateOrders(orders, contexts, nil, testNow))
	require.Len(t, comparison, 2)
	require.Equal(t, "Pune", comparison[0].Region)
	require.Equal(t, 100, comparison[0].Index)
	require.Equal(t, 50, comparison[1].Index)
	require.Equal(t, domain.TrendStable, comparison[0].Trend)
}

func TestBuildCategoryBreakdownImpactBands(t *testing.T) {
	analytics := analyticsWithCategories(t, map[string]int{
		"Respiratory": 50,
		"Fever":       38,
		"Vitamins":    12,
	})

	breakdown := BuildCategoryBreakdown(analytics)
	require.Len(t, breakdown, 3)

	byCategory := make(map[string]domain.CategoryScore)
	for _, entry := range breakdown {
		byCategory[entry.Category] = entry
	}
	require.Equal(t, "high", byCategory["Respiratory"].Impact)
	require.Equal(t, 50, byCategory["Respiratory"].Score)
	require.Equal(t, "high", byCategory["Fever"].Impact)
	require.Equal(t, "medium", byCategory["Vitamins"].Impact)
}

func TestBuildCategoryBreakdownEmpty(t *testing.T) {
	analytics := AggregateOrders(nil, ContextIndex{}, nil, testNow)
	require.Empty(t, BuildCategoryBreakdown(analytics))
}

func TestBuildMedicineListingDedup(t *testing.T) {
	snap := puneSnapshot()
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	analytics := AggregateOrders(snap.Orders, contexts, BuildInventoryIndex(snap.Inventory), testNow)

	// same medicine as the ordered one, differing only in case, plus a
	// duplicated genuinely new one
	fallback := []FallbackMedicine{
		{Name: "SALBUTAMOL", Generic: "Salbutamol", Dosage: "100mcg", TotalDemand: 5},
		{Name: "Paracetamol", Generic: "acetaminophen", Dosage: "500mg", Category: "Fever", TotalDemand: 40},
		{Name: "paracetamol", Generic: "ACETAMINOPHEN", Dosage: "500mg", Category: "Fever", TotalDemand: 40},
	}

	medicines := BuildMedicineListing(analytics, fallback, MedicineFilter{}, 0)
	require.Len(t, medicines, 2)
	require.Equal(t, "Paracetamol", medicines[0].Name)
	require.Equal(t, 40, medicines[0].TotalDemand)
	require.Equal(t, "Salbutamol", medicines[1].Name)
}

func TestBuildMedicineListingFiltersAndLimit(t *testing.T) {
	fallback := []FallbackMedicine{
		{Name: "A", Category: "Fever", TotalDemand: 10, Region: &domain.RegionDemand{Region: "Pune", State: "Maharashtra", Demand: 10}},
		{Name: "B", Category: "Fever", TotalDemand: 30, Region: &domain.RegionDemand{Region: "Nashik", State: "Maharashtra", Demand: 30}},
		{Name: "C", Category: "Vitamins", TotalDemand: 20, Region: &domain.RegionDemand{Region: "Pune", State: "Maharashtra", Demand: 20}},
	}
	analytics := AggregateOrders(nil, ContextIndex{}, nil, testNow)

	fever := BuildMedicineListing(analytics, fallback, MedicineFilter{Category: "Fever"}, 0)
	require.Len(t, fever, 2)
	require.Equal(t, "B", fever[0].Name)

	pune := BuildMedicineListing(analytics, fallback, MedicineFilter{Region: "Pune"}, 0)
	require.Len(t, pune, 2)

	byState := BuildMedicineListing(analytics, fallback, MedicineFilter{Region: "Maharashtra"}, 2)
	require.Len(t, byState, 2)
	require.Equal(t, "B", byState[0].Name)
	require.Equal(t, "C", byState[1].Name)
}

func TestBuildMedicineListingSkipsUnnamedFallback(t *testing.T) {
	analytics := AggregateOrders(nil, ContextIndex{}, nil, testNow)
	medicines := BuildMedicineListing(analytics, []FallbackMedicine{{TotalDemand: 5}}, MedicineFilter{}, 0)
	require.Empty(t, medicines)
}
