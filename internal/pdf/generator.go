package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/trialops/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// SummaryReport renders the dashboard summary as a printable one-pager:
// headline totals, status and user breakdowns, then the alert list.
func (g *Generator) SummaryReport(summary model.DashboardSummary, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Clinical Trials Operations - Dashboard Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("Jan 02, 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.keyValueBlock(pdf, "Contracts", [][2]string{
		{"Total contracts", fmt.Sprintf("%d", summary.Contracts.TotalContracts)},
		{"Total value", formatCurrencyCompact(summary.Contracts.TotalAmount)},
		{"Ongoing", fmt.Sprintf("%d", summary.Contracts.OngoingContracts)},
		{"Finalized / Ongoing / Expired", fmt.Sprintf("%d / %d / %d",
			summary.ContractStatus.Finalized,
			summary.ContractStatus.Ongoing,
			summary.ContractStatus.Expired)},
	})

	g.keyValueBlock(pdf, "Invoices", [][2]string{
		{"Total invoices", fmt.Sprintf("%d", summary.Invoices.TotalInvoices)},
		{"Total cost", formatCurrencyCompact(summary.Invoices.TotalAmount)},
		{"Awaiting payment", fmt.Sprintf("%d", summary.Invoices.OverdueInvoices)},
	})

	userRows := make([][2]string, 0, len(summary.UserStatus.Metrics)+1)
	userRows = append(userRows, [2]string{"Total uploaders", fmt.Sprintf("%d", summary.UserStatus.TotalUsers)})
	for _, metric := range summary.UserStatus.Metrics {
		userRows = append(userRows, [2]string{metric.Label, fmt.Sprintf("%d", metric.Value)})
	}
	g.keyValueBlock(pdf, "Uploader Activity", userRows)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Alerts (%d)", len(summary.Alerts)), "", 1, "L", false, 0, "")

	if len(summary.Alerts) == 0 {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, "No active alerts.", "", 1, "L", false, 0, "")
	} else {
		g.alertTable(pdf, summary.Alerts)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) keyValueBlock(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for _, row := range rows {
		pdf.CellFormat(70, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func (g *Generator) alertTable(pdf *gofpdf.Fpdf, alerts []model.Alert) {
	colWidths := []float64{22, 108, 50}

	pdf.SetFont(g.fontName, "B", 9)
	headers := []string{"Severity", "Alert", "Detail"}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(g.fontName, "", 9)
	for _, alert := range alerts {
		pdf.CellFormat(colWidths[0], 6, string(alert.Severity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, flattenTitle(alert.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, alert.Detail, "1", 1, "L", false, 0, "")
	}
}

// flattenTitle joins the title segments; print has no use for the
// emphasis flags, but the segment order is preserved verbatim.
func flattenTitle(segments []model.AlertSegment) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(segment.Text)
	}
	return b.String()
}

// formatCurrencyCompact abbreviates large amounts the way the summary
// cards do: $950, $12.5K, $1.2M.
func formatCurrencyCompact(value float64) string {
	abs := math.Abs(value)
	divisor := 1.0
	suffix := ""
	switch {
	case abs >= 1_000_000:
		divisor = 1_000_000
		suffix = "M"
	case abs >= 1_000:
		divisor = 1_000
		suffix = "K"
	}

	scaled := value / divisor
	if scaled == math.Trunc(scaled) {
		return fmt.Sprintf("$%.0f%s", scaled, suffix)
	}
	formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", scaled), ".0")
	return "$" + formatted + suffix
}
