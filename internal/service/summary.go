package service

import (
	"time"

	"github.com/nurpe/trialops/internal/model"
)

const (
	activeWindowDays  = 7
	offlineWindowDays = 30
)

func summarizeContracts(contracts []model.Contract) model.ContractsSummary {
	summary := model.ContractsSummary{TotalContracts: len(contracts)}
	for _, contract := range contracts {
		summary.TotalAmount += numberOrZero(contract.ContractValue)
		if contract.Status == string(model.ContractStatusOngoing) {
			summary.OngoingContracts++
		}
	}
	return summary
}

// breakdownContractStatus counts each of the three known statuses; rows
// carrying anything else fall into no bucket.
func breakdownContractStatus(contracts []model.Contract) model.ContractStatusBreakdown {
	var breakdown model.ContractStatusBreakdown
	for _, contract := range contracts {
		switch model.ContractStatus(contract.Status) {
		case model.ContractStatusFinalized:
			breakdown.Finalized++
		case model.ContractStatusOngoing:
			breakdown.Ongoing++
		case model.ContractStatusExpired:
			breakdown.Expired++
		}
	}
	return breakdown
}

// summarizeInvoices treats every invoice without a payment date as
// overdue, regardless of age. The 7-day window applies to the overdue
// alert only.
func summarizeInvoices(invoices []model.Invoice) model.InvoiceSummary {
	summary := model.InvoiceSummary{TotalInvoices: len(invoices)}
	for _, invoice := range invoices {
		summary.TotalAmount += numberOrZero(invoice.Cost)
		if !present(invoice.PaymentDate) {
			summary.OverdueInvoices++
		}
	}
	return summary
}

// summarizeUserStatus rolls invoices up to one last-active timestamp
// per uploader (max created_at) and classifies each uploader by
// recency. Invoices whose created_at cannot be parsed are ignored.
func summarizeUserStatus(invoices []model.Invoice, now time.Time) model.UserStatusSummary {
	lastActive := make(map[string]time.Time)
	for _, invoice := range invoices {
		createdAt, ok := parseDate(invoice.CreatedAt)
		if !ok {
			continue
		}
		if existing, seen := lastActive[invoice.UploadedByEmail]; !seen || existing.Before(createdAt) {
			lastActive[invoice.UploadedByEmail] = createdAt
		}
	}

	var active, offline, inactive int
	for _, last := range lastActive {
		diff := diffDays(now, last)
		switch {
		case diff <= activeWindowDays:
			active++
		case diff <= offlineWindowDays:
			offline++
		default:
			inactive++
		}
	}

	return model.UserStatusSummary{
		TotalUsers: active + offline + inactive,
		Metrics: []model.UserStatusMetric{
			{Label: "Active", Value: active, Color: "bg-brand-green"},
			{Label: "Offline", Value: offline, Color: "bg-[#86D38F]"},
			{Label: "Inactive", Value: inactive, Color: "bg-slate-300"},
		},
	}
}
