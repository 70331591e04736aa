package service

import (
	"time"

	"github.com/nurpe/trialops/internal/model"
)

// contractDate picks the representative date for bucket assignment:
// start_date first, created_at as the fallback.
func contractDate(contract model.Contract) (time.Time, bool) {
	if date, ok := parseDate(contract.StartDate); ok {
		return date, true
	}
	return parseDate(contract.CreatedAt)
}

// invoiceDate mirrors contractDate: payment_date, then created_at.
func invoiceDate(invoice model.Invoice) (time.Time, bool) {
	if date, ok := parseDate(invoice.PaymentDate); ok {
		return date, true
	}
	return parseDate(invoice.CreatedAt)
}

// assignBucket returns the index of the first bucket whose [start, end)
// window contains the date, or -1 when the row falls outside every
// bucket and contributes nothing.
func assignBucket(date time.Time, buckets []bucket) int {
	for i, b := range buckets {
		if !date.Before(b.start) && date.Before(b.end) {
			return i
		}
	}
	return -1
}

func sumContractsByBucket(contracts []model.Contract, buckets []bucket) []float64 {
	totals := make([]float64, len(buckets))
	for _, contract := range contracts {
		date, ok := contractDate(contract)
		if !ok {
			continue
		}
		if i := assignBucket(date, buckets); i >= 0 {
			totals[i] += numberOrZero(contract.ContractValue)
		}
	}
	return totals
}

func sumInvoicesByBucket(invoices []model.Invoice, buckets []bucket) []float64 {
	totals := make([]float64, len(buckets))
	for _, invoice := range invoices {
		date, ok := invoiceDate(invoice)
		if !ok {
			continue
		}
		if i := assignBucket(date, buckets); i >= 0 {
			totals[i] += numberOrZero(invoice.Cost)
		}
	}
	return totals
}
