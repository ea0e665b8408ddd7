package engine

import (
	"github.com/bioaura/platform/backend-go/internal/domain"
)

// lowStockSampleCap bounds the per-category low-stock sample list so the
// output stays small regardless of dataset size. Samples keep first-seen
// order for compatibility with downstream consumers.
const lowStockSampleCap = 5

// InventorySummary totals a raw inventory snapshot across the whole network.
type InventorySummary struct {
	TotalSKUs    int
	LowStockSKUs int
	TotalUnits   int
}

// LowStockRatio is the network-wide share of low-stock SKUs with an empty
// snapshot reading zero instead of dividing by zero.
func (s InventorySummary) LowStockRatio() float64 {
	total := s.TotalSKUs
	if total < 1 {
		total = 1
	}
	return float64(s.LowStockSKUs) / float64(total)
}

// SummarizeInventory reduces inventory rows to network totals.
func SummarizeInventory(items []domain.InventoryRecord) InventorySummary {
	var summary InventorySummary
	for _, item := range items {
		summary.TotalSKUs++
		summary.TotalUnits += item.Stock
		if item.LowStock() {
			summary.LowStockSKUs++
		}
	}
	return summary
}

// BuildInventoryIndex indexes inventory records by id for line-item lookups.
func BuildInventoryIndex(items []domain.InventoryRecord) map[string]domain.InventoryRecord {
	index := make(map[string]domain.InventoryRecord, len(items))
	for _, item := range items {
		if item.ID != "" {
			index[item.ID] = item
		}
	}
	return index
}

type regionStockAccum struct {
	stat          domain.RegionalStockStat
	pharmacySeen  map[string]struct{}
	categorySeen  map[string]int // category name -> index into stat.Categories
	categoryOrder []string
}

// BuildRegionalStockStats folds inventory records into per-region stock
// summaries keyed by city|state. Records whose pharmacy reference does not
// resolve are dropped; regions with no contributing items never appear.
func BuildRegionalStockStats(items []domain.InventoryRecord, contexts ContextIndex) []domain.RegionalStockStat {
	accums := make(map[string]*regionStockAccum)
	order := make([]string, 0)

	for _, item := range items {
		pharmacy, ok := contexts.Lookup(item.PharmacyID)
		if !ok {
			continue
		}

		key := pharmacy.RegionKey()
		accum, exists := accums[key]
		if !exists {
			accum = &regionStockAccum{
				stat: domain.RegionalStockStat{
					Region: pharmacy.City,
					State:  pharmacy.State,
				},
				pharmacySeen: make(map[string]struct{}),
				categorySeen: make(map[string]int),
			}
			accums[key] = accum
			order = append(order, key)
		}

		accum.stat.TotalItems += item.Stock
		low := item.LowStock()
		if low {
			accum.stat.LowStockItems++
		}
		if _, seen := accum.pharmacySeen[pharmacy.BusinessName]; !seen {
			accum.pharmacySeen[pharmacy.BusinessName] = struct{}{}
			accum.stat.Pharmacies = append(accum.stat.Pharmacies, pharmacy.BusinessName)
		}

		categoryName := domain.NormalizeCategory(item.Category)
		idx, seen := accum.categorySeen[categoryName]
		if !seen {
			idx = len(accum.stat.Categories)
			accum.categorySeen[categoryName] = idx
			accum.stat.Categories = append(accum.stat.Categories, domain.CategoryStockStat{Name: categoryName})
		}
		category := &accum.stat.Categories[idx]
		category.TotalStock += item.Stock
		if low {
			category.LowStockCount++
			if len(category.Items) < lowStockSampleCap {
				category.Items = append(category.Items, domain.LowStockItem{
					Name:      item.Name,
					Stock:     item.Stock,
					Threshold: item.Threshold,
					Generic:   item.Generic,
					Dosage:    item.Dosage,
					Form:      item.Form,
				})
			}
		}
	}

	stats := make([]domain.RegionalStockStat, 0, len(order))
	for _, key := range order {
		stats = append(stats, accums[key].stat)
	}
	return stats
}

// SummarizePharmacyInventory groups inventory by pharmacy for the network
// view: total units, low-stock count and at most five low-stock samples.
func SummarizePharmacyInventory(items []domain.InventoryRecord) map[string]domain.PharmacyInventorySummary {
	summaries := make(map[string]domain.PharmacyInventorySummary)
	for _, item := range items {
		if item.PharmacyID == "" {
			continue
		}
		summary := summaries[item.PharmacyID]
		summary.TotalItems += item.Stock
		if item.LowStock() {
			summary.LowStockItems++
			if len(summary.Items) < lowStockSampleCap {
				summary.Items = append(summary.Items, domain.LowStockItem{
					Name:      item.Name,
					Stock:     item.Stock,
					Threshold: item.Threshold,
					Generic:   item.Generic,
					Dosage:    item.Dosage,
					Form:      item.Form,
					Category:  item.Category,
				})
			}
		}
		summaries[item.PharmacyID] = summary
	}
	return summaries
}
