package model

import "strings"

// Normalized risk levels used for display. Upstream data is inconsistent
// ("Med" vs "Medium"); normalization happens at the presentation boundary
// only and is never written back.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

// NormalizeRisk maps an upstream risk_level string to one of the display
// constants. Matching is case-insensitive.
func NormalizeRisk(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return RiskLow
	case "med", "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	case "":
		return RiskUnknown
	default:
		return RiskUnknown
	}
}

// IsHighRisk reports whether the raw upstream value lowercases to "high".
func IsHighRisk(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "high")
}
