package enum

import "strings"

// RankMetric selects the figure employees are ranked by
type RankMetric string

const (
	RankByRevenue    RankMetric = "revenue"
	RankByCommission RankMetric = "commission"
	RankByBills      RankMetric = "bills"
)

// ParseRankMetric defaults to revenue for an empty string
func ParseRankMetric(s string) (RankMetric, bool) {
	switch m := RankMetric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return RankByRevenue, true
	case RankByRevenue, RankByCommission, RankByBills:
		return m, true
	}
	return "", false
}
