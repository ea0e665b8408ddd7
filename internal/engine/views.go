package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

const (
	overviewInsightCap   = 6
	trendingMedicinesCap = 25
	indicatorShare       = 0.12
	healthRecommendCap   = 3
	categoryRespiratory  = "Respiratory"
	categoryInfectious   = "Infectious"
	categoryViralFever   = "Viral Fever"
)

// Snapshot is one consistent read of the source stores. Views derive
// everything from it, so two views built from the same snapshot never
// disagree.
type Snapshot struct {
	Identities []domain.PharmacyIdentity
	Profiles   []domain.PharmacyProfile
	Inventory  []domain.InventoryRecord

	// TopInventory is the highest-stock slice of the catalog, used as the
	// demand fallback for medicines with no order history.
	TopInventory []domain.InventoryRecord

	Orders []domain.Order
	Days   int
	Now    time.Time
}

func (s Snapshot) timestamp() string {
	return s.Now.UTC().Format(time.RFC3339)
}

// BuildOverview assembles the dashboard overview: the network composite
// index, the agent status cards and the top regional insights.
func BuildOverview(snap Snapshot) domain.Overview {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	inventorySummary := SummarizeInventory(snap.Inventory)
	inventoryIndex := BuildInventoryIndex(snap.Inventory)
	analytics := AggregateOrders(snap.Orders, contexts, inventoryIndex, snap.Now)
	stockStats := BuildRegionalStockStats(snap.Inventory, contexts)

	insights := BuildRegionalInsights(analytics, stockStats)
	if len(insights) > overviewInsightCap {
		insights = insights[:overviewInsightCap]
	}
	recommendations := GenerateRecommendations(stockStats)
	predictions := GeneratePredictions(analytics, insights)

	index, _, _ := NetworkIndex(analytics, inventorySummary)
	riskLevel := domain.RiskLevel(index)

	topRegion := domain.RegionRef{City: "National", State: "Network", Country: defaultCountry}
	if len(insights) > 0 {
		topRegion = domain.RegionRef{City: insights[0].Region, State: insights[0].State, Country: defaultCountry}
	}

	anomalies := 0
	for _, insight := range insights {
		if insight.LowStockRatio > lowStockAlertRatio {
			anomalies++
		}
	}

	return domain.Overview{
		BioAuraIndex: domain.BioAuraIndex{
			Index:     index,
			RiskLevel: riskLevel,
			RiskColor: domain.RiskColor(riskLevel),
			Region:    topRegion,
			Indicators: domain.Indicators{
				Respiratory:       analytics.CategoryDemand[categoryRespiratory] > 0,
				Fever:             analytics.CategoryDemand[categoryInfectious] > 0 || analytics.CategoryDemand[categoryViralFever] > 0,
				AnomalyCount:      anomalies,
				TrendingMedicines: trendingMedicines(analytics),
			},
			Recommendations: recommendations,
			Timestamp:       snap.timestamp(),
		},
		Agents: []domain.AgentStatus{
			{Name: "Inventory Agent", Status: "active", LastUpdate: "Just now", DataPoints: inventorySummary.TotalSKUs},
			{Name: "Orders Agent", Status: "active", LastUpdate: "Just now", DataPoints: analytics.TotalOrders},
			{Name: "Supply Agent", Status: "active", LastUpdate: "Just now", DataPoints: inventorySummary.LowStockSKUs},
			{Name: "Network Agent", Status: "active", LastUpdate: "Just now", DataPoints: len(contexts.Pharmacies)},
			{Name: "Insights Agent", Status: "active", LastUpdate: "Just now", DataPoints: len(insights)},
		},
		RegionalInsights: insights,
		Predictions:      predictions,
	}
}

// BuildHealthIndex assembles the health-index view: the category-averaged
// index, the historical series and the regional comparison. A non-empty
// region echoes back as the anchoring region instead of the top comparison
// entry.
func BuildHealthIndex(snap Snapshot, region string) domain.HealthIndex {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	inventoryIndex := BuildInventoryIndex(snap.Inventory)
	analytics := AggregateOrders(snap.Orders, contexts, inventoryIndex, snap.Now)

	breakdown := BuildCategoryBreakdown(analytics)
	historical := BuildHistoricalSeries(analytics.History)
	comparison := BuildRegionalComparison(analytics)

	index := 0
	if len(breakdown) > 0 {
		sum := 0
		for _, category := range breakdown {
			sum += category.Score
		}
		index = int(math.Round(float64(sum) / float64(len(breakdown))))
	}
	riskLevel := domain.RiskLevel(index)

	ref := domain.RegionRef{City: "Network", State: "Pan-India", Country: defaultCountry}
	switch {
	case region != "":
		ref = domain.RegionRef{City: region, State: region, Country: defaultCountry}
	case len(comparison) > 0:
		ref = domain.RegionRef{City: comparison[0].Region, State: comparison[0].State, Country: defaultCountry}
	}

	totalDemand := analytics.TotalItems
	if totalDemand < 1 {
		totalDemand = 1
	}
	respiratory := float64(analytics.CategoryDemand[categoryRespiratory])/float64(totalDemand) > indicatorShare
	fever := float64(analytics.CategoryDemand[categoryInfectious]+analytics.CategoryDemand[categoryViralFever])/float64(totalDemand) > indicatorShare

	anomalies := 0
	for _, entry := range comparison {
		if domain.RiskLevel(entry.Index) == domain.RiskHigh {
			anomalies++
		}
	}

	recommendations := make([]domain.Recommendation, 0, healthRecommendCap)
	for _, category := range breakdown {
		if category.Impact == "low" || len(recommendations) == healthRecommendCap {
			continue
		}
		severity := "medium"
		if category.Impact == "high" {
			severity = "high"
		}
		recommendations = append(recommendations, domain.Recommendation{
			Type:     "alert",
			Severity: severity,
			Message:  fmt.Sprintf("Demand spike detected in %s therapeutics", category.Category),
			Actions: []string{
				fmt.Sprintf("Allocate surge stock for %s", category.Category),
				"Notify partner pharmacies",
				"Monitor fulfillment SLAs",
			},
		})
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Type:     "info",
			Severity: "low",
			Message:  "Network operating within nominal parameters",
			Actions:  []string{"Continue monitoring", "Share bi-weekly report"},
		})
	}

	return domain.HealthIndex{
		Index:     index,
		RiskLevel: riskLevel,
		RiskColor: domain.RiskColor(riskLevel),
		Region:    ref,
		Indicators: domain.Indicators{
			Respiratory:       respiratory,
			Fever:             fever,
			AnomalyCount:      anomalies,
			TrendingMedicines: trendingMedicines(analytics),
		},
		Recommendations:    recommendations,
		HistoricalData:     historical,
		RegionalComparison: comparison,
		CategoryBreakdown:  breakdown,
		Timestamp:          snap.timestamp(),
	}
}

// BuildDemandPatterns assembles the per-medicine demand listing, backfilling
// zero-history medicines from the high-stock inventory slice.
func BuildDemandPatterns(snap Snapshot, filter MedicineFilter, limit int) domain.DemandPatterns {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	inventoryIndex := BuildInventoryIndex(snap.Inventory)
	analytics := AggregateOrders(snap.Orders, contexts, inventoryIndex, snap.Now)

	fallback := make([]FallbackMedicine, 0, len(snap.TopInventory))
	for _, item := range snap.TopInventory {
		if item.Stock <= 0 {
			continue
		}
		entry := FallbackMedicine{
			Name:        item.Name,
			Generic:     item.Generic,
			Category:    item.Category,
			Dosage:      item.Dosage,
			Form:        item.Form,
			TotalDemand: item.Stock,
		}
		if pharmacy, ok := contexts.Lookup(item.PharmacyID); ok {
			entry.Region = &domain.RegionDemand{Region: pharmacy.City, State: pharmacy.State, Demand: item.Stock}
		}
		fallback = append(fallback, entry)
	}

	return domain.DemandPatterns{
		Medicines: BuildMedicineListing(analytics, fallback, filter, limit),
	}
}

// BuildPharmacyNetwork assembles the per-pharmacy directory with inventory
// and sales summaries. State and region filters match case-insensitively.
func BuildPharmacyNetwork(snap Snapshot, state, region string, limit int) domain.PharmacyNetwork {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	inventoryByPharmacy := SummarizePharmacyInventory(snap.Inventory)
	inventoryIndex := BuildInventoryIndex(snap.Inventory)
	analytics := AggregateOrders(snap.Orders, contexts, inventoryIndex, snap.Now)

	data := make([]domain.PharmacyNetworkEntry, 0, len(contexts.Pharmacies))
	for _, pharmacy := range contexts.Pharmacies {
		inventory := inventoryByPharmacy[pharmacy.ID]
		if inventory.Items == nil {
			inventory.Items = []domain.LowStockItem{}
		}

		sales := domain.PharmacySalesSummary{Period: fmt.Sprintf("%d days", snap.Days)}
		lastActivity := snap.Now
		if stat, ok := analytics.PerPharmacy[pharmacy.ID]; ok {
			sales.TotalOrders = len(stat.OrderIDs)
			sales.TotalItemsSold = stat.TotalItemsSold
			sales.TotalRevenue = stat.TotalRevenue
			if !stat.LastOrderAt.IsZero() {
				lastActivity = stat.LastOrderAt
			}
		}

		status := "no-data"
		if inventory.TotalItems > 0 || sales.TotalOrders > 0 {
			status = "connected"
		}

		data = append(data, domain.PharmacyNetworkEntry{
			PharmacyID:   pharmacy.ID,
			BusinessName: pharmacy.BusinessName,
			Type:         pharmacy.Type,
			Location: domain.PharmacyLocation{
				City:        pharmacy.City,
				State:       pharmacy.State,
				Address:     pharmacy.Address,
				Coordinates: pharmacy.Coordinates,
			},
			Contact: domain.PharmacyContact{
				Email: pharmacy.Email,
				Phone: pharmacy.Phone,
			},
			Inventory:   inventory,
			Sales:       sales,
			Status:      status,
			LastUpdated: lastActivity.UTC().Format(time.RFC3339),
		})
	}

	if state != "" {
		data = filterNetwork(data, func(entry domain.PharmacyNetworkEntry) bool {
			return strings.EqualFold(entry.Location.State, state)
		})
	}
	if region != "" {
		data = filterNetwork(data, func(entry domain.PharmacyNetworkEntry) bool {
			return strings.EqualFold(entry.Location.City, region)
		})
	}
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}

	return domain.PharmacyNetwork{Data: data}
}

// BuildRegionalSales assembles per-region sales with a cross-region daily
// summary. The summary reflects the filtered region set, so narrowing to one
// region narrows the daily totals with it.
func BuildRegionalSales(snap Snapshot, region string) domain.RegionalSales {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	inventoryIndex := BuildInventoryIndex(snap.Inventory)
	analytics := AggregateOrders(snap.Orders, contexts, inventoryIndex, snap.Now)

	regions := make([]domain.RegionalSalesEntry, 0, len(analytics.RegionOrder))
	for _, stat := range analytics.Regions() {
		regions = append(regions, domain.RegionalSalesEntry{
			Region:      stat.Region,
			State:       stat.State,
			TotalOrders: len(stat.OrderIDs),
			TotalItems:  stat.TotalItems,
			Categories:  stat.CategoryCounts(),
			DailySales:  sortedDailyCounts(stat.DailySales),
		})
	}

	if region != "" && region != "all" {
		filtered := regions[:0]
		for _, entry := range regions {
			if strings.EqualFold(entry.Region, region) || strings.EqualFold(entry.State, region) {
				filtered = append(filtered, entry)
			}
		}
		regions = filtered
	}

	summaryTotals := make(map[string]int)
	for _, entry := range regions {
		for _, day := range entry.DailySales {
			summaryTotals[day.Date] += day.Count
		}
	}
	dates := make([]string, 0, len(summaryTotals))
	for date := range summaryTotals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	regionCount := len(regions)
	if regionCount < 1 {
		regionCount = 1
	}
	dailySummary := make([]domain.DailySummaryEntry, 0, len(dates))
	for _, date := range dates {
		dailySummary = append(dailySummary, domain.DailySummaryEntry{
			Date:       date,
			TotalItems: summaryTotals[date],
			Orders:     int(math.Round(float64(summaryTotals[date]) / float64(regionCount))),
		})
	}

	return domain.RegionalSales{Regions: regions, DailySummary: dailySummary}
}

// BuildRegionalStocks assembles the per-region inventory picture. The
// category filter narrows each region's category list without dropping the
// region itself.
func BuildRegionalStocks(snap Snapshot, region, category string) domain.RegionalStocks {
	contexts := ResolveContexts(snap.Identities, snap.Profiles)
	regions := BuildRegionalStockStats(snap.Inventory, contexts)

	if region != "" && region != "all" {
		filtered := regions[:0]
		for _, entry := range regions {
			if strings.EqualFold(entry.Region, region) || strings.EqualFold(entry.State, region) {
				filtered = append(filtered, entry)
			}
		}
		regions = filtered
	}

	if category != "" && category != "all" {
		for i, entry := range regions {
			kept := make([]domain.CategoryStockStat, 0, 1)
			for _, cat := range entry.Categories {
				if cat.Name == category {
					kept = append(kept, cat)
				}
			}
			regions[i].Categories = kept
		}
	}

	return domain.RegionalStocks{Regions: regions}
}

func trendingMedicines(analytics *OrderAnalytics) int {
	count := len(analytics.PerMedicine)
	if count > trendingMedicinesCap {
		count = trendingMedicinesCap
	}
	return count
}

func filterNetwork(entries []domain.PharmacyNetworkEntry, keep func(domain.PharmacyNetworkEntry) bool) []domain.PharmacyNetworkEntry {
	filtered := entries[:0]
	for _, entry := range entries {
		if keep(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func sortedDailyCounts(daily map[string]int) []domain.DailyCount {
	counts := make([]domain.DailyCount, 0, len(daily))
	for date, count := range daily {
		counts = append(counts, domain.DailyCount{Date: date, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })
	return counts
}
