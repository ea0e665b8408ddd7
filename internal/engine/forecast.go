package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bioaura/platform/backend-go/internal/domain"
)

const (
	probabilityCap = 90

	// Surge factor applied to a category's demand share when estimating
	// shortage probability.
	surgeFactor = 1.2

	recommendationRegionCap   = 3
	recommendationPharmacyCap = 2

	// lowStockAlertRatio is the pressure threshold above which a region
	// earns a replenishment warning.
	lowStockAlertRatio = 0.35
)

// GeneratePredictions derives short-horizon predictions for the two most
// demanded categories. Probability is the category's demand share scaled by
// the surge factor and capped; with no demand at all the share denominator is
// floored at one and both predictions read zero.
func GeneratePredictions(analytics *OrderAnalytics, insights []domain.RegionalInsight) []domain.Prediction {
	totalDemand := 0
	for _, demand := range analytics.CategoryDemand {
		totalDemand += demand
	}
	if totalDemand < 1 {
		totalDemand = 1
	}

	categories := append([]string(nil), analytics.CategoryOrder...)
	sort.SliceStable(categories, func(i, j int) bool {
		return analytics.CategoryDemand[categories[i]] > analytics.CategoryDemand[categories[j]]
	})
	if len(categories) > 2 {
		categories = categories[:2]
	}

	affected := make([]string, 0, 3)
	for _, insight := range insights {
		if len(affected) == 3 {
			break
		}
		affected = append(affected, insight.Region)
	}

	predictions := make([]domain.Prediction, 0, len(categories))
	for i, category := range categories {
		share := float64(analytics.CategoryDemand[category]) / float64(totalDemand)
		probability := int(math.Round(share * 100 * surgeFactor))
		if probability > probabilityCap {
			probability = probabilityCap
		}

		timeframe := "3-5 days"
		if i == 1 {
			timeframe = "7-10 days"
		}

		lower := strings.ToLower(category)
		predictions = append(predictions, domain.Prediction{
			Type:            lower,
			Probability:     probability,
			Timeframe:       timeframe,
			AffectedRegions: affected,
			Recommendation:  fmt.Sprintf("Increase %s stock buffers in highlighted regions", lower),
		})
	}
	return predictions
}

// GenerateRecommendations selects up to three regions under low-stock
// pressure and turns each into a replenishment warning. With no region above
// the threshold it emits exactly one all-clear entry.
func GenerateRecommendations(stockStats []domain.RegionalStockStat) []domain.Recommendation {
	alerts := make([]domain.RegionalStockStat, 0, recommendationRegionCap)
	for _, stat := range stockStats {
		if stat.LowStockRatio() > lowStockAlertRatio {
			alerts = append(alerts, stat)
			if len(alerts) == recommendationRegionCap {
				break
			}
		}
	}

	if len(alerts) == 0 {
		return []domain.Recommendation{{
			Type:     "info",
			Severity: "low",
			Message:  "All monitored regions within safe stock thresholds",
			Actions:  []string{"Continue routine monitoring", "Share weekly status updates"},
		}}
	}

	recommendations := make([]domain.Recommendation, 0, len(alerts))
	for _, region := range alerts {
		pharmacies := region.Pharmacies
		if len(pharmacies) > recommendationPharmacyCap {
			pharmacies = pharmacies[:recommendationPharmacyCap]
		}
		contact := strings.Join(pharmacies, ", ")
		if contact == "" {
			contact = "local pharmacies"
		}

		recommendations = append(recommendations, domain.Recommendation{
			Type:     "warning",
			Severity: "medium",
			Message:  fmt.Sprintf("Low stock pressure detected in %s, %s", region.Region, region.State),
			Actions: []string{
				"Coordinate with " + contact,
				"Trigger replenishment workflow",
				"Notify field operations team",
			},
		})
	}
	return recommendations
}
