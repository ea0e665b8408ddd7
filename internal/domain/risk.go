package domain

// Risk classifications for the composite BioAura index.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Trend classifications for regional demand.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// RiskLevel maps a 0-100 composite index to its risk classification.
func RiskLevel(index int) string {
	switch {
	case index >= 70:
		return RiskLow
	case index >= 45:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskColor maps a risk level to its dashboard color.
func RiskColor(level string) string {
	switch level {
	case RiskLow:
		return "green"
	case RiskMedium:
		return "yellow"
	default:
		return "red"
	}
}
