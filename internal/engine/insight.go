package engine

import (
	"math"
	"sort"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

// Index weighting: demand intensity carries slightly more than supply health.
const (
	demandWeight = 0.55
	supplyWeight = 0.45

	// lowStockPenalty scales the low-stock ratio into the supply score so a
	// ratio above ~0.83 already floors the score at zero.
	lowStockPenalty = 120

	trendWindow = 3
)

// ClassifyTrend compares the sum of the most recent three day buckets against
// the three buckets before them. Fewer than four buckets total is not enough
// signal and always reads stable.
func ClassifyTrend(dailySales map[string]int) string {
	if len(dailySales) < 4 {
		return domain.TrendStable
	}

	keys := make([]string, 0, len(dailySales))
	for key := range dailySales {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	recent := 0
	for _, key := range keys[len(keys)-trendWindow:] {
		recent += dailySales[key]
	}

	start := len(keys) - 2*trendWindow
	if start < 0 {
		start = 0
	}
	previous := 0
	for _, key := range keys[start : len(keys)-trendWindow] {
		previous += dailySales[key]
	}

	switch {
	case recent > previous:
		return domain.TrendUp
	case recent < previous:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

// BuildRegionalInsights scores every region seen in the order window against
// its stock stat and returns the list sorted by index, highest first. A
// region with orders but no stock stat scores full supply health.
func BuildRegionalInsights(analytics *OrderAnalytics, stockStats []domain.RegionalStockStat) []domain.RegionalInsight {
	stockByKey := make(map[string]domain.RegionalStockStat, len(stockStats))
	for _, stat := range stockStats {
		stockByKey[stat.Region+"|"+stat.State] = stat
	}

	maxRegionalQty := 1
	for _, region := range analytics.PerRegion {
		if region.TotalItems > maxRegionalQty {
			maxRegionalQty = region.TotalItems
		}
	}

	insights := make([]domain.RegionalInsight, 0, len(analytics.RegionOrder))
	for _, key := range analytics.RegionOrder {
		region := analytics.PerRegion[key]

		lowStockRatio := 0.0
		if stock, ok := stockByKey[key]; ok {
			lowStockRatio = stock.LowStockRatio()
		}

		demandScore := math.Min(100, float64(region.TotalItems)/float64(maxRegionalQty)*100)
		supplyScore := math.Max(0, 100-lowStockRatio*lowStockPenalty)

		insights = append(insights, domain.RegionalInsight{
			Region:        region.Region,
			State:         region.State,
			Index:         int(math.Round(demandScore*demandWeight + supplyScore*supplyWeight)),
			Trend:         ClassifyTrend(region.DailySales),
			Alerts:        int(math.Round(lowStockRatio * 5)),
			LowStockRatio: lowStockRatio,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Index > insights[j].Index
	})
	return insights
}

// NetworkIndex blends network-wide demand intensity and supply health into
// the global composite. Denominators are floored at one so an empty snapshot
// scores zero demand and full supply rather than dividing by zero.
func NetworkIndex(analytics *OrderAnalytics, inventory InventorySummary) (index int, demandIntensity, supplyHealth float64) {
	totalUnits := inventory.TotalUnits
	if totalUnits < 1 {
		totalUnits = 1
	}
	demandIntensity = math.Min(100, float64(analytics.TotalItems)/float64(totalUnits)*100)
	supplyHealth = math.Max(0, 100-inventory.LowStockRatio()*lowStockPenalty)
	index = int(math.Round(demandIntensity*demandWeight + supplyHealth*supplyWeight))
	return index, demandIntensity, supplyHealth
}
