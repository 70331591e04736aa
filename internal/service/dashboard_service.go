package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/trialops/internal/model"
)

// ContractSource and InvoiceSource are the read-only projections the
// dashboard consumes from the row store.
type ContractSource interface {
	ListContracts(ctx context.Context) ([]model.Contract, error)
}

type InvoiceSource interface {
	ListInvoices(ctx context.Context) ([]model.Invoice, error)
}

// PDFGenerator renders the printable summary report.
type PDFGenerator interface {
	SummaryReport(summary model.DashboardSummary, generatedAt time.Time) ([]byte, error)
}

type DashboardService struct {
	contracts ContractSource
	invoices  InvoiceSource
	pdf       PDFGenerator

	// now is captured once per request and threaded through every
	// sub-computation; tests swap it for a fixed instant.
	now func() time.Time
}

func NewDashboardService(contracts ContractSource, invoices InvoiceSource, pdf PDFGenerator) *DashboardService {
	return &DashboardService{
		contracts: contracts,
		invoices:  invoices,
		pdf:       pdf,
		now:       time.Now,
	}
}

type TrendQuery struct {
	Granularity model.Granularity
	RangeStart  *time.Time
	RangeEnd    *time.Time
}

type ReportResult struct {
	FileName string
	Content  []byte
}

// fetchSnapshot loads both sources concurrently. Either failure aborts
// the whole request; no partial summary is ever produced.
func (s *DashboardService) fetchSnapshot(ctx context.Context) ([]model.Contract, []model.Invoice, error) {
	var contracts []model.Contract
	var invoices []model.Invoice

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.contracts.ListContracts(ctx)
		if err != nil {
			return fmt.Errorf("%w: contracts: %v", ErrSourceUnavailable, err)
		}
		contracts = rows
		return nil
	})
	group.Go(func() error {
		rows, err := s.invoices.ListInvoices(ctx)
		if err != nil {
			return fmt.Errorf("%w: invoices: %v", ErrSourceUnavailable, err)
		}
		invoices = rows
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return contracts, invoices, nil
}

func (s *DashboardService) GetSummary(ctx context.Context) (*model.DashboardSummary, error) {
	contracts, invoices, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &model.DashboardSummary{
		Alerts:         deriveAlerts(contracts, invoices, now),
		Contracts:      summarizeContracts(contracts),
		ContractStatus: breakdownContractStatus(contracts),
		Invoices:       summarizeInvoices(invoices),
		UserStatus:     summarizeUserStatus(invoices, now),
	}, nil
}

func (s *DashboardService) GetRevenueTrend(ctx context.Context, query TrendQuery) (*model.RevenueTrend, error) {
	buckets := buildBuckets(query.Granularity, s.now(), query.RangeStart, query.RangeEnd)

	contracts, invoices, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	revenue := sumContractsByBucket(contracts, buckets)
	cost := sumInvoicesByBucket(invoices, buckets)

	points := make([]model.RevenuePoint, len(buckets))
	for i, b := range buckets {
		points[i] = model.RevenuePoint{
			Label:     b.label,
			DateLabel: b.dateLabel,
			DateValue: b.start.Format("2006-01-02"),
			Revenue:   revenue[i],
			Cost:      cost[i],
		}
	}

	return &model.RevenueTrend{Granularity: query.Granularity, Data: points}, nil
}

// SummaryReport renders the current summary as a PDF attachment.
func (s *DashboardService) SummaryReport(ctx context.Context) (*ReportResult, error) {
	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	content, err := s.pdf.SummaryReport(*summary, generatedAt)
	if err != nil {
		return nil, err
	}

	return &ReportResult{
		FileName: fmt.Sprintf("dashboard-summary-%s.pdf", generatedAt.Format("20060102")),
		Content:  content,
	}, nil
}

// ParseGranularity maps the query-string value onto a granularity; an
// empty value defaults to monthly like the chart does.
func ParseGranularity(raw string) (model.Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monthly":
		return model.GranularityMonthly, nil
	case "daily":
		return model.GranularityDaily, nil
	case "weekly":
		return model.GranularityWeekly, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, raw)
	}
}
