// backend-go/internal/domain/views.go
package domain

// RegionalInsight is the per-region scoring output: composite index, trend
// classification and the low-stock pressure behind it.
type RegionalInsight struct {
	Region        string  `json:"region"`
	State         string  `json:"state"`
	Index         int     `json:"index"`
	Trend         string  `json:"trend"`
	Alerts        int     `json:"alerts"`
	LowStockRatio float64 `json:"lowStockRatio"`
}

// Prediction is a short-horizon heuristic demand forecast for one category.
type Prediction struct {
	Type            string   `json:"type"`
	Probability     int      `json:"probability"`
	Timeframe       string   `json:"timeframe"`
	AffectedRegions []string `json:"affectedRegions"`
	Recommendation  string   `json:"recommendation"`
}

// Recommendation is one operational follow-up derived from stock pressure.
type Recommendation struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Actions  []string `json:"actions"`
}

// RegionRef names the region a view is anchored to.
type RegionRef struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Indicators carries the boolean/count signals shown next to an index.
type Indicators struct {
	Respiratory       bool `json:"respiratory"`
	Fever             bool `json:"fever"`
	AnomalyCount      int  `json:"anomalyCount"`
	TrendingMedicines int  `json:"trendingMedicines"`
}

// BioAuraIndex is the network-wide composite score block.
type BioAuraIndex struct {
	Index           int              `json:"index"`
	RiskLevel       string           `json:"riskLevel"`
	RiskColor       string           `json:"riskColor"`
	Region          RegionRef        `json:"region"`
	Indicators      Indicators       `json:"indicators"`
	Recommendations []Recommendation `json:"recommendations"`
	Timestamp       string           `json:"timestamp"`
}

// AgentStatus is one data-source status card on the overview.
type AgentStatus struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	LastUpdate string `json:"lastUpdate"`
	DataPoints int    `json:"dataPoints"`
}

// Overview is the dashboard overview payload.
type Overview struct {
	BioAuraIndex     BioAuraIndex      `json:"bioAuraIndex"`
	Agents           []AgentStatus     `json:"agents"`
	RegionalInsights []RegionalInsight `json:"regionalInsights"`
	Predictions      []Prediction      `json:"predictions"`
}

// IndexPoint is one day of the normalized historical index series.
type IndexPoint struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
}

// RegionComparison is one bar of the regional comparison chart.
type RegionComparison struct {
	Region string `json:"region"`
	State  string `json:"state"`
	Index  int    `json:"index"`
	Trend  string `json:"trend"`
}

// CategoryScore is one category's share of total demand.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Impact   string `json:"impact"`
}

// HealthIndex is the health-index view payload.
type HealthIndex struct {
	Index              int                `json:"index"`
	RiskLevel          string             `json:"riskLevel"`
	RiskColor          string             `json:"riskColor"`
	Region             RegionRef          `json:"region"`
	Indicators         Indicators         `json:"indicators"`
	Recommendations    []Recommendation   `json:"recommendations"`
	HistoricalData     []IndexPoint       `json:"historicalData"`
	RegionalComparison []RegionComparison `json:"regionalComparison"`
	CategoryBreakdown  []CategoryScore    `json:"categoryBreakdown"`
	Timestamp          string             `json:"timestamp"`
}

// RegionDemand is one region's share of a medicine's demand.
type RegionDemand struct {
	Region string `json:"region"`
	State  string `json:"state"`
	Demand int    `json:"demand"`
}

// DailyCount is a (date, count) pair for day-bucketed series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MedicineDemand is one row of the demand-patterns listing.
type MedicineDemand struct {
	Name        string         `json:"name"`
	Generic     string         `json:"generic"`
	Category    string         `json:"category"`
	Dosage      string         `json:"dosage"`
	Form        string         `json:"form"`
	TotalDemand int            `json:"totalDemand"`
	Regions     []RegionDemand `json:"regions"`
	DailyDemand []DailyCount   `json:"dailyDemand"`
}

// DemandPatterns is the demand-patterns view payload.
type DemandPatterns struct {
	Medicines []MedicineDemand `json:"medicines"`
}

// LowStockItem is one sampled low-stock inventory entry.
type LowStockItem struct {
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
	Generic   string `json:"generic"`
	Dosage    string `json:"dosage"`
	Form      string `json:"form"`
	Category  string `json:"category,omitempty"`
}

// CategoryStockStat is the per-category slice of a regional stock stat.
// Items holds at most five low-stock samples in first-seen order.
type CategoryStockStat struct {
	Name          string         `json:"name"`
	TotalStock    int            `json:"totalStock"`
	LowStockCount int            `json:"lowStockCount"`
	Items         []LowStockItem `json:"items"`
}

// RegionalStockStat aggregates the inventory picture of one region.
type RegionalStockStat struct {
	Region        string              `json:"region"`
	State         string              `json:"state"`
	TotalItems    int                 `json:"totalItems"`
	LowStockItems int                 `json:"lowStockItems"`
	Pharmacies    []string            `json:"pharmacies"`
	Categories    []CategoryStockStat `json:"categories"`
}

// LowStockRatio is the share of low-stock items, guarded against an empty
// region so scores never divide by zero.
func (s RegionalStockStat) LowStockRatio() float64 {
	total := s.TotalItems
	if total < 1 {
		total = 1
	}
	return float64(s.LowStockItems) / float64(total)
}

// PharmacyLocation is the location block of a network entry.
type PharmacyLocation struct {
	City        string       `json:"city"`
	State       string       `json:"state"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates"`
}

// PharmacyContact is the contact block of a network entry.
type PharmacyContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PharmacyInventorySummary totals one pharmacy's stock position.
type PharmacyInventorySummary struct {
	TotalItems    int            `json:"totalItems"`
	LowStockItems int            `json:"lowStockItems"`
	Items         []LowStockItem `json:"items"`
}

// PharmacySalesSummary totals one pharmacy's order activity in the window.
type PharmacySalesSummary struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalItemsSold int     `json:"totalItemsSold"`
	Period         string  `json:"period"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// PharmacyNetworkEntry is one pharmacy row of the network view.
type PharmacyNetworkEntry struct {
	PharmacyID   string                   `json:"pharmacyId"`
	BusinessName string                   `json:"businessName"`
	Type         string                   `json:"type"`
	Location     PharmacyLocation         `json:"location"`
	Contact      PharmacyContact          `json:"contact"`
	Inventory    PharmacyInventorySummary `json:"inventory"`
	Sales        PharmacySalesSummary     `json:"sales"`
	Status       string                   `json:"status"`
	LastUpdated  string                   `json:"lastUpdated"`
}

// PharmacyNetwork is the pharmacy-network view payload.
type PharmacyNetwork struct {
	Data []PharmacyNetworkEntry `json:"data"`
}

// CategoryCount is a (category, quantity) pair.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RegionalSalesEntry is one region row of the regional-sales view.
type RegionalSalesEntry struct {
	Region      string          `json:"region"`
	State       string          `json:"state"`
	TotalOrders int             `json:"totalOrders"`
	TotalItems  int             `json:"totalItems"`
	Categories  []CategoryCount `json:"categories"`
	DailySales  []DailyCount    `json:"dailySales"`
}

// DailySummaryEntry is one day of the cross-region sales summary.
type DailySummaryEntry struct {
	Date       string `json:"date"`
	TotalItems int    `json:"totalItems"`
	Orders     int    `json:"orders"`
}

// RegionalSales is the regional-sales view payload.
type RegionalSales struct {
	Regions      []RegionalSalesEntry `json:"regions"`
	DailySummary []DailySummaryEntry  `json:"dailySummary"`
}

// RegionalStocks is the regional-stocks view payload.
type RegionalStocks struct {
	Regions []RegionalStockStat `json:"regions"`
}
