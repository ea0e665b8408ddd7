package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

// BuildHistoricalSeries normalizes the day-bucketed order history into a
// 0-100 index series ordered by date. The busiest day reads 100; the
// denominator is floored at one for an empty history.
func BuildHistoricalSeries(history map[string]*DayStat) []domain.IndexPoint {
	dates := make([]string, 0, len(history))
	maxVolume := 1
	for date, day := range history {
		dates = append(dates, date)
		if day.TotalItems > maxVolume {
			maxVolume = day.TotalItems
		}
	}
	sort.Strings(dates)

	series := make([]domain.IndexPoint, 0, len(dates))
	for _, date := range dates {
		value := int(math.Round(float64(history[date].TotalItems) / float64(maxVolume) * 100))
		if value > 100 {
			value = 100
		}
		series = append(series, domain.IndexPoint{Date: date, Index: value})
	}
	return series
}

// BuildRegionalComparison normalizes each region's window total against the
// busiest region, keeping first-seen region order.
func BuildRegionalComparison(analytics *OrderAnalytics) []domain.RegionComparison {
	maxValue := 1
	for _, region := range analytics.PerRegion {
		if region.TotalItems > maxValue {
			maxValue = region.TotalItems
		}
	}

	comparison := make([]domain.RegionComparison, 0, len(analytics.RegionOrder))
	for _, key := range analytics.RegionOrder {
		region := analytics.PerRegion[key]
		value := int(math.Round(float64(region.TotalItems) / float64(maxValue) * 100))
		if value > 100 {
			value = 100
		}
		comparison = append(comparison, domain.RegionComparison{
			Region: region.Region,
			State:  region.State,
			Index:  value,
			Trend:  ClassifyTrend(region.DailySales),
		})
	}
	return comparison
}

// BuildCategoryBreakdown scores each category's share of total demand.
// Impact bands: high at 25% and above, medium at 12%, low below that.
func BuildCategoryBreakdown(analytics *OrderAnalytics) []domain.CategoryScore {
	total := 0
	for _, demand := range analytics.CategoryDemand {
		total += demand
	}
	if total < 1 {
		total = 1
	}

	breakdown := make([]domain.CategoryScore, 0, len(analytics.CategoryOrder))
	for _, category := range analytics.CategoryOrder {
		score := int(math.Round(float64(analytics.CategoryDemand[category]) / float64(total) * 100))
		impact := "low"
		switch {
		case score >= 25:
			impact = "high"
		case score >= 12:
			impact = "medium"
		}
		breakdown = append(breakdown, domain.CategoryScore{
			Category: category,
			Score:    score,
			Impact:   impact,
		})
	}
	return breakdown
}

// FallbackMedicine is an inventory-derived stand-in for a medicine with no
// order history, using stock on hand as its demand proxy.
type FallbackMedicine struct {
	Name        string
	Generic     string
	Category    string
	Dosage      string
	Form        string
	TotalDemand int
	Region      *domain.RegionDemand
}

// MedicineFilter narrows the demand-patterns listing. Region matches either
// the region (city) or state of any contributing region.
type MedicineFilter struct {
	Category string
	Region   string
}

// medicineKey is the case-insensitive dedup key that keeps order-derived and
// fallback rows for the same medicine from double-counting.
func medicineKey(name, generic, dosage string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(generic) + "|" + dosage
}

// BuildMedicineListing merges order-derived demand with the inventory
// fallback, deduplicates by name|generic|dosage, applies filters, sorts by
// total demand descending and truncates to the limit.
func BuildMedicineListing(analytics *OrderAnalytics, fallback []FallbackMedicine, filter MedicineFilter, limit int) []domain.MedicineDemand {
	medicines := make([]domain.MedicineDemand, 0, len(analytics.MedicineOrder)+len(fallback))
	seen := make(map[string]struct{})

	for _, id := range analytics.MedicineOrder {
		stat := analytics.PerMedicine[id]

		daily := make([]domain.DailyCount, 0, len(stat.DailyDemand))
		for date, count := range stat.DailyDemand {
			daily = append(daily, domain.DailyCount{Date: date, Count: count})
		}
		sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

		medicines = append(medicines, domain.MedicineDemand{
			Name:        stat.Name,
			Generic:     stat.Generic,
			Category:    stat.Category,
			Dosage:      stat.Dosage,
			Form:        stat.Form,
			TotalDemand: stat.TotalDemand,
			Regions:     stat.RegionDemands(),
			DailyDemand: daily,
		})
		seen[medicineKey(stat.Name, stat.Generic, stat.Dosage)] = struct{}{}
	}

	for _, item := range fallback {
		if item.Name == "" {
			continue
		}
		key := medicineKey(item.Name, item.Generic, item.Dosage)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		regions := []domain.RegionDemand{}
		if item.Region != nil {
			regions = append(regions, *item.Region)
		}
		medicines = append(medicines, domain.MedicineDemand{
			Name:        item.Name,
			Generic:     item.Generic,
			Category:    domain.NormalizeCategory(item.Category),
			Dosage:      item.Dosage,
			Form:        item.Form,
			TotalDemand: item.TotalDemand,
			Regions:     regions,
			DailyDemand: []domain.DailyCount{},
		})
	}

	if filter.Category != "" {
		filtered := medicines[:0]
		for _, medicine := range medicines {
			if medicine.Category == filter.Category {
				filtered = append(filtered, medicine)
			}
		}
		medicines = filtered
	}

	if filter.Region != "" {
		filtered := medicines[:0]
		for _, medicine := range medicines {
			for _, region := range medicine.Regions {
				if region.Region == filter.Region || region.State == filter.Region {
					filtered = append(filtered, medicine)
					break
				}
			}
		}
		medicines = filtered
	}

	sort.SliceStable(medicines, func(i, j int) bool {
		return medicines[i].TotalDemand > medicines[j].TotalDemand
	})

	if limit > 0 && len(medicines) > limit {
		medicines = medicines[:limit]
	}
	return medicines
}
