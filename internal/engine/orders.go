package engine

import (
	"time"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

// PharmacySales accumulates one pharmacy's order activity in the window.
type PharmacySales struct {
	PharmacyID     string
	TotalItemsSold int
	TotalRevenue   float64
	OrderIDs       map[string]struct{}
	LastOrderAt    time.Time
}

// RegionSales accumulates one region's order activity in the window.
type RegionSales struct {
	Region     string
	State      string
	TotalItems int
	OrderIDs   map[string]struct{}
	Categories map[string]int
	DailySales map[string]int
	Pharmacies map[string]struct{}

	categoryOrder []string
}

// CategoryCounts returns the region's per-category quantities in first-seen
// order.
func (r *RegionSales) CategoryCounts() []domain.CategoryCount {
	counts := make([]domain.CategoryCount, 0, len(r.categoryOrder))
	for _, name := range r.categoryOrder {
		counts = append(counts, domain.CategoryCount{Name: name, Count: r.Categories[name]})
	}
	return counts
}

// MedicineStat accumulates demand for one catalog medicine.
type MedicineStat struct {
	ID          string
	Name        string
	Generic     string
	Category    string
	Dosage      string
	Form        string
	TotalDemand int
	Regions     map[string]domain.RegionDemand // keyed by region key
	DailyDemand map[string]int

	regionOrder []string
}

// RegionDemands returns the medicine's per-region demand in first-seen order.
func (m *MedicineStat) RegionDemands() []domain.RegionDemand {
	demands := make([]domain.RegionDemand, 0, len(m.regionOrder))
	for _, key := range m.regionOrder {
		demands = append(demands, m.Regions[key])
	}
	return demands
}

// DayStat is one day bucket of the order history.
type DayStat struct {
	OrderIDs   map[string]struct{}
	TotalItems int
}

// OrderAnalytics bundles the five co-indexed aggregates produced by one pass
// over the order window, plus the two scalar totals. The insertion-order
// slices keep derived listings deterministic.
type OrderAnalytics struct {
	TotalOrders int
	TotalItems  int

	PerPharmacy    map[string]*PharmacySales
	PerRegion      map[string]*RegionSales
	PerMedicine    map[string]*MedicineStat
	History        map[string]*DayStat
	CategoryDemand map[string]int

	RegionOrder   []string
	MedicineOrder []string
	CategoryOrder []string
}

// Regions returns the per-region aggregates in first-seen order.
func (a *OrderAnalytics) Regions() []*RegionSales {
	regions := make([]*RegionSales, 0, len(a.RegionOrder))
	for _, key := range a.RegionOrder {
		regions = append(regions, a.PerRegion[key])
	}
	return regions
}

// AggregateOrders performs the single pass over every line item of every
// order in the window. Malformed lines (non-positive quantity, unresolvable
// pharmacy) are skipped without failing the order; the distinct-order count
// only reflects orders that contributed at least one resolvable line.
func AggregateOrders(orders []domain.Order, contexts ContextIndex, inventory map[string]domain.InventoryRecord, now time.Time) *OrderAnalytics {
	analytics := &OrderAnalytics{
		PerPharmacy:    make(map[string]*PharmacySales),
		PerRegion:      make(map[string]*RegionSales),
		PerMedicine:    make(map[string]*MedicineStat),
		History:        make(map[string]*DayStat),
		CategoryDemand: make(map[string]int),
	}
	orderIDs := make(map[string]struct{})

	for _, order := range orders {
		orderDate := order.EffectiveDate(now)
		dayKey := domain.DayKey(orderDate)

		for _, item := range order.Items {
			packSize := item.PackSize
			if packSize <= 0 {
				packSize = 1
			}
			quantity := item.Quantity * packSize
			if quantity <= 0 {
				continue
			}

			medicine, hasMedicine := inventory[item.MedicineID]

			// The line's own pharmacy reference wins; the referenced
			// inventory record covers lines that omit one.
			pharmacyID := item.PharmacyID
			if pharmacyID == "" && hasMedicine {
				pharmacyID = medicine.PharmacyID
			}
			if pharmacyID == "" {
				continue
			}
			pharmacy, ok := contexts.Lookup(pharmacyID)
			if !ok {
				continue
			}

			if order.ID != "" {
				orderIDs[order.ID] = struct{}{}
			}
			analytics.TotalItems += quantity

			sales := analytics.PerPharmacy[pharmacyID]
			if sales == nil {
				sales = &PharmacySales{
					PharmacyID: pharmacyID,
					OrderIDs:   make(map[string]struct{}),
				}
				analytics.PerPharmacy[pharmacyID] = sales
			}
			sales.TotalItemsSold += quantity
			revenue := item.TotalPrice
			if revenue == 0 {
				revenue = item.UnitPrice * float64(quantity)
			}
			sales.TotalRevenue += revenue
			if order.ID != "" {
				sales.OrderIDs[order.ID] = struct{}{}
			}
			if orderDate.After(sales.LastOrderAt) {
				sales.LastOrderAt = orderDate
			}

			categoryName := "General"
			if hasMedicine {
				categoryName = domain.NormalizeCategory(medicine.Category)
			}

			regionKey := pharmacy.RegionKey()
			region := analytics.PerRegion[regionKey]
			if region == nil {
				region = &RegionSales{
					Region:     pharmacy.City,
					State:      pharmacy.State,
					OrderIDs:   make(map[string]struct{}),
					Categories: make(map[string]int),
					DailySales: make(map[string]int),
					Pharmacies: make(map[string]struct{}),
				}
				analytics.PerRegion[regionKey] = region
				analytics.RegionOrder = append(analytics.RegionOrder, regionKey)
			}
			region.TotalItems += quantity
			region.Pharmacies[pharmacy.BusinessName] = struct{}{}
			if order.ID != "" {
				region.OrderIDs[order.ID] = struct{}{}
			}
			region.DailySales[dayKey] += quantity
			if _, seen := region.Categories[categoryName]; !seen {
				region.categoryOrder = append(region.categoryOrder, categoryName)
			}
			region.Categories[categoryName] += quantity

			if item.MedicineID != "" && hasMedicine {
				stat := analytics.PerMedicine[item.MedicineID]
				if stat == nil {
					stat = &MedicineStat{
						ID:          item.MedicineID,
						Name:        firstNonEmpty(medicine.Name, item.MedicineName, "Medicine"),
						Generic:     medicine.Generic,
						Category:    categoryName,
						Dosage:      medicine.Dosage,
						Form:        medicine.Form,
						Regions:     make(map[string]domain.RegionDemand),
						DailyDemand: make(map[string]int),
					}
					analytics.PerMedicine[item.MedicineID] = stat
					analytics.MedicineOrder = append(analytics.MedicineOrder, item.MedicineID)
				}
				stat.TotalDemand += quantity
				demand, seen := stat.Regions[regionKey]
				if !seen {
					demand = domain.RegionDemand{Region: pharmacy.City, State: pharmacy.State}
					stat.regionOrder = append(stat.regionOrder, regionKey)
				}
				demand.Demand += quantity
				stat.Regions[regionKey] = demand
				stat.DailyDemand[dayKey] += quantity
			}

			if _, seen := analytics.CategoryDemand[categoryName]; !seen {
				analytics.CategoryOrder = append(analytics.CategoryOrder, categoryName)
			}
			analytics.CategoryDemand[categoryName] += quantity

			day := analytics.History[dayKey]
			if day == nil {
				day = &DayStat{OrderIDs: make(map[string]struct{})}
				analytics.History[dayKey] = day
			}
			if order.ID != "" {
				day.OrderIDs[order.ID] = struct{}{}
			}
			day.TotalItems += quantity
		}
	}

	analytics.TotalOrders = len(orderIDs)
	return analytics
}
