package service

import (
	"fmt"
	"math"
	"time"

	"github.com/nurpe/trialops/internal/model"
)

const (
	expiryWindowDays    = 7
	overdueWindowDays   = 7
	lowBalanceThreshold = 0.1
	maxAlerts           = 20
)

// deriveAlerts scans the snapshot against a single now and returns the
// capped alert list: contract alerts first (in contract order, each
// contract's alerts in rule order), then invoice alerts.
func deriveAlerts(contracts []model.Contract, invoices []model.Invoice, now time.Time) []model.Alert {
	alerts := contractAlerts(contracts, now)
	alerts = append(alerts, invoiceAlerts(invoices, now)...)
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

func contractAlerts(contracts []model.Contract, now time.Time) []model.Alert {
	var alerts []model.Alert
	for _, contract := range contracts {
		if endDate, ok := parseDate(contract.EndDate); ok {
			diff := diffDays(endDate, now)
			if diff >= 0 && diff <= expiryWindowDays {
				alerts = append(alerts, model.Alert{
					ID:       fmt.Sprintf("%s-expiring", contract.ID),
					Severity: model.SeverityWarning,
					Title: []model.AlertSegment{
						{Text: "Contract "},
						{Text: "#" + contract.StudyNumber, Emphasis: true},
						{Text: " expiring in "},
						{Text: fmt.Sprintf("%d days", diff), Emphasis: true, ClassName: "text-amber-600"},
					},
					Detail: fmt.Sprintf("(%s) - Review", contract.Department),
				})
			}
		}

		// A zero contract value forces the ratio to 1 so the rule
		// cannot fire; that is a division guard, not a data signal.
		value := numberOrZero(contract.ContractValue)
		ratio := 1.0
		if value != 0 {
			ratio = numberOrZero(contract.Balance) / value
		}
		if ratio <= lowBalanceThreshold {
			alerts = append(alerts, model.Alert{
				ID:       fmt.Sprintf("%s-low-balance", contract.ID),
				Severity: model.SeverityInfo,
				Title: []model.AlertSegment{
					{Text: "Contract "},
					{Text: "#" + contract.StudyNumber, Emphasis: true},
					{Text: " balance below "},
					{Text: fmt.Sprintf("%d%%", int(math.Round(ratio*100))), Emphasis: true, ClassName: "text-indigo-500"},
				},
				Detail: fmt.Sprintf("(%s) - Review", contract.Department),
			})
		}

		// Deliberately one-sided: a future-dated created_at yields a
		// negative diff and still satisfies the window.
		if createdAt, ok := parseDate(contract.CreatedAt); ok && diffDays(now, createdAt) <= expiryWindowDays {
			alerts = append(alerts, model.Alert{
				ID:       fmt.Sprintf("%s-new", contract.ID),
				Severity: model.SeveritySuccess,
				Title: []model.AlertSegment{
					{Text: "New Contract "},
					{Text: "#" + contract.StudyNumber, Emphasis: true},
					{Text: " added"},
				},
				Detail: fmt.Sprintf("(%s)", contract.Department),
			})
		}
	}
	return alerts
}

func invoiceAlerts(invoices []model.Invoice, now time.Time) []model.Alert {
	var alerts []model.Alert
	for _, invoice := range invoices {
		if present(invoice.PaymentDate) {
			continue
		}
		createdAt, ok := parseDate(invoice.CreatedAt)
		if !ok || diffDays(now, createdAt) <= overdueWindowDays {
			continue
		}
		alerts = append(alerts, model.Alert{
			ID:       fmt.Sprintf("%s-overdue", invoice.ID),
			Severity: model.SeverityDanger,
			Title: []model.AlertSegment{
				{Text: "Invoice "},
				{Text: "#" + invoice.InvoiceNumber, Emphasis: true},
				{Text: " overdue by "},
				{Text: fmt.Sprintf("%d days", overdueWindowDays), Emphasis: true, ClassName: "text-red-500"},
			},
			Detail: fmt.Sprintf("(%s) - Action", invoice.Department),
		})
	}
	return alerts
}
