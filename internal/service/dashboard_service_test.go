package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nurpe/trialops/internal/model"
)

type stubContractSource struct {
	rows []model.Contract
	err  error
}

func (s stubContractSource) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.rows, s.err
}

type stubInvoiceSource struct {
	rows []model.Invoice
	err  error
}

func (s stubInvoiceSource) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.rows, s.err
}

type stubPDF struct{}

func (stubPDF) SummaryReport(summary model.DashboardSummary, generatedAt time.Time) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newTestDashboardService(contracts []model.Contract, invoices []model.Invoice) *DashboardService {
	svc := NewDashboardService(stubContractSource{rows: contracts}, stubInvoiceSource{rows: invoices}, stubPDF{})
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestGetSummaryComposesAllSections(t *testing.T) {
	contracts := []model.Contract{
		testContract(func(c *model.Contract) {
			c.ContractValue = floatPtr(100000)
			c.Balance = floatPtr(5000)
			c.Status = "Ongoing"
			c.EndDate = isoPtr(testNow.Add(72 * time.Hour))
			c.CreatedAt = isoPtr(testNow.AddDate(0, 0, -30))
		}),
	}
	invoices := []model.Invoice{
		testInvoice(func(i *model.Invoice) {
			i.Cost = floatPtr(500)
			i.PaymentDate = nil
			i.CreatedAt = isoPtr(testNow.AddDate(0, 0, -10))
		}),
	}

	svc := newTestDashboardService(contracts, invoices)
	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Alerts, 3) // expiring + low-balance + overdue
	require.Equal(t, 1, summary.Contracts.TotalContracts)
	require.InDelta(t, 100000, summary.Contracts.TotalAmount, 0.001)
	require.Equal(t, 1, summary.ContractStatus.Ongoing)
	require.Equal(t, 1, summary.Invoices.OverdueInvoices)
	require.Equal(t, 1, summary.UserStatus.TotalUsers)
}

func TestGetSummaryFailsFastOnContractError(t *testing.T) {
	svc := NewDashboardService(
		stubContractSource{err: errors.New("contracts table unreachable")},
		stubInvoiceSource{},
		stubPDF{},
	)
	svc.now = func() time.Time { return testNow }

	_, err := svc.GetSummary(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSourceUnavailable)
	// The store's message is surfaced unchanged.
	require.Contains(t, err.Error(), "contracts table unreachable")
}

func TestGetSummaryFailsFastOnInvoiceError(t *testing.T) {
	svc := NewDashboardService(
		stubContractSource{},
		stubInvoiceSource{err: errors.New("invoices timeout")},
		stubPDF{},
	)
	svc.now = func() time.Time { return testNow }

	_, err := svc.GetSummary(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.Contains(t, err.Error(), "invoices timeout")
}

func TestGetRevenueTrendDefaultWindow(t *testing.T) {
	svc := newTestDashboardService(nil, nil)

	trend, err := svc.GetRevenueTrend(context.Background(), TrendQuery{Granularity: model.GranularityMonthly})
	require.NoError(t, err)
	require.Equal(t, model.GranularityMonthly, trend.Granularity)
	require.Len(t, trend.Data, 12)
	for _, point := range trend.Data {
		require.Zero(t, point.Revenue)
		require.Zero(t, point.Cost)
	}
	// Bucket starts serialize as ISO dates.
	require.Equal(t, "2023-07-01", trend.Data[0].DateValue)
	require.Equal(t, "2024-06-01", trend.Data[11].DateValue)
}

func TestGetRevenueTrendAssignsRowsToBuckets(t *testing.T) {
	contracts := []model.Contract{
		// start_date drives assignment.
		testContract(func(c *model.Contract) {
			c.ContractValue = floatPtr(10000)
			c.StartDate = isoPtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		}),
		// No start_date: created_at is the fallback.
		testContract(func(c *model.Contract) {
			c.ContractValue = floatPtr(2500)
			c.StartDate = nil
			c.CreatedAt = isoPtr(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))
		}),
		// Outside every bucket: contributes nothing.
		testContract(func(c *model.Contract) {
			c.ContractValue = floatPtr(99999)
			c.StartDate = isoPtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
	}
	invoices := []model.Invoice{
		testInvoice(func(i *model.Invoice) {
			i.Cost = floatPtr(300)
			i.PaymentDate = isoPtr(time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))
		}),
	}

	svc := newTestDashboardService(contracts, invoices)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	trend, err := svc.GetRevenueTrend(context.Background(), TrendQuery{
		Granularity: model.GranularityMonthly,
		RangeStart:  &start,
		RangeEnd:    &end,
	})
	require.NoError(t, err)
	require.Len(t, trend.Data, 3)

	require.InDelta(t, 10000, trend.Data[0].Revenue, 0.001)
	require.InDelta(t, 300, trend.Data[0].Cost, 0.001)
	require.InDelta(t, 2500, trend.Data[1].Revenue, 0.001)
	require.Zero(t, trend.Data[2].Revenue)
}

func TestGetRevenueTrendRoundTrip(t *testing.T) {
	// Summing bucket revenue over a full-coverage range equals the sum
	// of contract values whose representative date falls in range.
	values := []float64{1000, 2000, 4000, 8000}
	dates := []time.Time{
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	contracts := make([]model.Contract, len(values))
	for i := range values {
		value, date := values[i], dates[i]
		contracts[i] = testContract(func(c *model.Contract) {
			c.ContractValue = floatPtr(value)
			c.StartDate = isoPtr(date)
		})
	}

	svc := newTestDashboardService(contracts, nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	trend, err := svc.GetRevenueTrend(context.Background(), TrendQuery{
		Granularity: model.GranularityMonthly,
		RangeStart:  &start,
		RangeEnd:    &end,
	})
	require.NoError(t, err)

	var total float64
	for _, point := range trend.Data {
		total += point.Revenue
	}
	require.InDelta(t, 15000, total, 0.001)
}

func TestGetRevenueTrendEmptyRange(t *testing.T) {
	svc := newTestDashboardService(nil, nil)
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	trend, err := svc.GetRevenueTrend(context.Background(), TrendQuery{
		Granularity: model.GranularityDaily,
		RangeStart:  &start,
		RangeEnd:    &end,
	})
	require.NoError(t, err)
	require.Empty(t, trend.Data)
}

func TestSummaryReport(t *testing.T) {
	svc := newTestDashboardService(nil, nil)

	result, err := svc.SummaryReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, "dashboard-summary-20240615.pdf", result.FileName)
	require.NotEmpty(t, result.Content)
}

func TestParseGranularity(t *testing.T) {
	granularity, err := ParseGranularity("")
	require.NoError(t, err)
	require.Equal(t, model.GranularityMonthly, granularity)

	granularity, err = ParseGranularity("Daily")
	require.NoError(t, err)
	require.Equal(t, model.GranularityDaily, granularity)

	granularity, err = ParseGranularity(" weekly ")
	require.NoError(t, err)
	require.Equal(t, model.GranularityWeekly, granularity)

	_, err = ParseGranularity("hourly")
	require.ErrorIs(t, err, ErrInvalidInput)
}
