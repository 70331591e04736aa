package model

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// RevenuePoint is one chart point: Label feeds the axis tick, DateLabel
// the tooltip, DateValue is the bucket start as an ISO date.
type RevenuePoint struct {
	Label     string  `json:"label"`
	DateLabel string  `json:"dateLabel"`
	DateValue string  `json:"dateValue"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
}

type RevenueTrend struct {
	Granularity Granularity    `json:"granularity"`
	Data        []RevenuePoint `json:"data"`
}
