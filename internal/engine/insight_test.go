package engine

import (
	"testing"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestClassifyTrendNeedsFourBuckets(t *testing.T) {
	require.Equal(t, domain.TrendStable, ClassifyTrend(nil))
	require.Equal(t, domain.TrendStable, ClassifyTrend(map[string]int{
		"2024-03-01": 100, "2024-03-02": 1, "2024-03-03": 1,
	}))
}

func TestClassifyTrendDirections(t *testing.T) {
	up := map[string]int{
		"2024-03-01": 1, "2024-03-02": 1, "2024-03-03": 1,
		"2024-03-04": 5, "2024-03-05": 5, "2024-03-06": 5,
	}
	require.Equal(t, domain.TrendUp, ClassifyTrend(up))

	down := map[string]int{
		"2024-03-01": 5, "2024-03-02": 5, "2024-03-03": 5,
		"2024-03-04": 1, "2024-03-05": 1, "2024-03-06": 1,
	}
	require.Equal(t, domain.TrendDown, ClassifyTrend(down))

	flat := map[string]int{
		"2024-03-01": 2, "2024-03-02": 2, "2024-03-03": 2,
		"2024-03-04": 2, "2024-03-05": 2, "2024-03-06": 2,
	}
	require.Equal(t, domain.TrendStable, ClassifyTrend(flat))
}

func TestClassifyTrendShortPreviousWindow(t *testing.T) {
	// four buckets: recent window is the last three, previous is just the first
	buckets := map[string]int{
		"2024-03-01": 10,
		"2024-03-02": 1, "2024-03-03": 1, "2024-03-04": 1,
	}
	require.Equal(t, domain.TrendDown, ClassifyTrend(buckets))
}

func TestBuildRegionalInsightsPuneScenario(t *testing.T) {
	snap := puneSnapshot()
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	analytics := AggregateOrders(snap.Orders, contexts, BuildInventoryIndex(snap.Inventory), testNow)
	stockStats := BuildRegionalStockStats(snap.Inventory, contexts)

	require.Len(t, stockStats, 1)
	require.Equal(t, 5, stockStats[0].TotalItems)
	require.Equal(t, 1, stockStats[0].LowStockItems)

	insights := BuildRegionalInsights(analytics, stockStats)
	require.Len(t, insights, 1)

	insight := insights[0]
	require.Equal(t, "Pune", insight.Region)
	require.Equal(t, "Maharashtra", insight.State)
	// 0.55*100 + 0.45*(100 - 0.2*120) = 55 + 34.2
	require.Equal(t, 89, insight.Index)
	require.Equal(t, domain.TrendStable, insight.Trend)
	require.Equal(t, 1, insight.Alerts)
	require.InDelta(t, 0.2, insight.LowStockRatio, 1e-9)
}

func TestBuildRegionalInsightsSortedByIndex(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{
		identity("ph1", "A", "Pune", "Maharashtra"),
		identity("ph2", "B", "Nashik", "Maharashtra"),
	}, nil)

	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "m1", Quantity: 1, PackSize: 1, PharmacyID: "ph1"},
		domain.OrderItem{MedicineID: "m2", Quantity: 10, PackSize: 1, PharmacyID: "ph2"},
	)}

	insights := BuildRegionalInsights(AggregateOrders(orders, contexts, nil, testNow), nil)
	require.Len(t, insights, 2)
	require.Equal(t, "Nashik", insights[0].Region)
	require.GreaterOrEqual(t, insights[0].Index, insights[1].Index)
}

func TestInsightIndexBounds(t *testing.T) {
	contexts := ResolveContexts([]domain.PharmacyIdentity{identity("ph1", "A", "Pune", "Maharashtra")}, nil)
	orders := []domain.Order{orderOn("ord1", testNow,
		domain.OrderItem{MedicineID: "m1", Quantity: 500, PackSize: 10, PharmacyID: "ph1"},
	)}
	stockStats := []domain.RegionalStockStat{{Region: "Pune", State: "Maharashtra", TotalItems: 1, LowStockItems: 1}}

	insights := BuildRegionalInsights(AggregateOrders(orders, contexts, nil, testNow), stockStats)
	require.Len(t, insights, 1)
	require.GreaterOrEqual(t, insights[0].Index, 0)
	require.LessOrEqual(t, insights[0].Index, 100)
}

func TestNetworkIndexEmptySnapshot(t *testing.T) {
	analytics := AggregateOrders(nil, ContextIndex{}, nil, testNow)
	index, demand, supply := NetworkIndex(analytics, InventorySummary{})

	require.Equal(t, 0.0, demand)
	require.Equal(t, 100.0, supply)
	require.Equal(t, 45, index)
}

func TestNetworkIndexSaturatedLowStock(t *testing.T) {
	analytics := AggregateOrders(nil, ContextIndex{}, nil, testNow)
	_, _, supply := NetworkIndex(analytics, InventorySummary{TotalSKUs: 1, LowStockSKUs: 1, TotalUnits: 10})
	require.Equal(t, 0.0, supply)
}
