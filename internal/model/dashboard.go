package model

type AlertSeverity string

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityDanger  AlertSeverity = "danger"
	SeveritySuccess AlertSeverity = "success"
	SeverityInfo    AlertSeverity = "info"
)

// AlertSegment is one fragment of an alert title. Titles are sequences
// of segments rather than flat strings so the rendering target can
// style the emphasized parts without parsing markup.
type AlertSegment struct {
	Text      string `json:"text"`
	Emphasis  bool   `json:"emphasis,omitempty"`
	ClassName string `json:"className,omitempty"`
}

// Alert is ephemeral: recomputed from the current snapshot on every
// request, never persisted.
type Alert struct {
	ID       string         `json:"id"`
	Severity AlertSeverity  `json:"severity"`
	Title    []AlertSegment `json:"title"`
	Detail   string         `json:"detail"`
}

type ContractsSummary struct {
	TotalContracts   int     `json:"totalContracts"`
	TotalAmount      float64 `json:"totalAmount"`
	OngoingContracts int     `json:"ongoingContracts"`
}

type ContractStatusBreakdown struct {
	Finalized int `json:"finalized"`
	Ongoing   int `json:"ongoing"`
	Expired   int `json:"expired"`
}

type InvoiceSummary struct {
	TotalInvoices   int     `json:"totalInvoices"`
	TotalAmount     float64 `json:"totalAmount"`
	OverdueInvoices int     `json:"overdueInvoices"`
}

type UserStatusMetric struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type UserStatusSummary struct {
	TotalUsers int                `json:"totalUsers"`
	Metrics    []UserStatusMetric `json:"metrics"`
}

type DashboardSummary struct {
	Alerts         []Alert                 `json:"alerts"`
	Contracts      ContractsSummary        `json:"contracts"`
	ContractStatus ContractStatusBreakdown `json:"contractStatus"`
	Invoices       InvoiceSummary          `json:"invoices"`
	UserStatus     UserStatusSummary       `json:"userStatus"`
}
