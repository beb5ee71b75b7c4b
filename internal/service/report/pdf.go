package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/util"
)

// Brand green used for the report headings and table header.
var brandColor = [3]int{56, 134, 89}

// PDFRenderer produces the downloadable cost-profit analysis sheet.
type PDFRenderer struct {
	logger  *applogger.Logger
	metrics repository.Metrics
	now     func() time.Time
}

func NewPDFRenderer(logger *applogger.Logger, metrics repository.Metrics) *PDFRenderer {
	return &PDFRenderer{logger: logger, metrics: metrics, now: time.Now}
}

// Render builds the one-page analysis document: input parameters as a
// table, a profitability section and a recommendation list that depends
// on whether the numbers show a profit or a loss.
func (r *PDFRenderer) Render(_ context.Context, username string, req models.ReportRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.CellFormat(0, 14, "Cost-Profit Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 5, "Generated on: "+util.FormatDate(r.now()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "User: "+username, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	r.writeTable(pdf, req)
	pdf.Ln(8)
	r.writeAnalysis(pdf, req)
	pdf.Ln(5)
	r.writeRecommendations(pdf, req.NetProfit >= 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.metrics.RecordError("report_render")
		return nil, fmt.Errorf("render report: %w", err)
	}
	r.metrics.RecordReportRendered()
	r.logger.Debug("report rendered",
		applogger.String("user", username),
		applogger.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *PDFRenderer) writeTable(pdf *gofpdf.Fpdf, req models.ReportRequest) {
	const (
		colParam   = 65.0
		colValue   = 50.0
		colDetails = 65.0
		rowH       = 8.0
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(colParam, rowH, "Parameter", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colValue, rowH, "Value", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colDetails, rowH, "Details", "1", 1, "L", true, 0, "")

	rows := [][3]string{
		{"Market Price (per kg)", "Rs. " + money(req.MarketPrice), "Current market rate"},
		{"Harvest Amount", money(req.HarvestAmount) + " kg", "Total harvest quantity"},
		{"Total Revenue", "Rs. " + money(req.TotalRevenue), money(req.MarketPrice) + " x " + money(req.HarvestAmount)},
		{"Total Cost", "Rs. " + money(req.TotalCost), "Initial + Subsequent costs"},
		{"Net Profit/Loss", "Rs. " + money(req.NetProfit), money(req.TotalRevenue) + " - " + money(req.TotalCost)},
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		pdf.CellFormat(colParam, rowH, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(colValue, rowH, row[1], "1", 0, "L", true, 0, "")
		pdf.CellFormat(colDetails, rowH, row[2], "1", 1, "L", true, 0, "")
	}
}

func (r *PDFRenderer) writeAnalysis(pdf *gofpdf.Fpdf, req models.ReportRequest) {
	r.heading(pdf, "Detailed Analysis:")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	if req.NetProfit >= 0 {
		pdf.CellFormat(0, 5, "Status: Profitable Business", "", 1, "L", false, 0, "")
		margin := 0.0
		if req.TotalRevenue > 0 {
			margin = req.NetProfit / req.TotalRevenue * 100
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("Profit Margin: %.2f%%", margin), "", 1, "L", false, 0, "")
		roi := "Return on Investment: N/A"
		if req.TotalCost > 0 {
			roi = fmt.Sprintf("Return on Investment: %.2f%%", req.NetProfit/req.TotalCost*100)
		}
		pdf.CellFormat(0, 5, roi, "", 1, "L", false, 0, "")
		return
	}

	pdf.CellFormat(0, 5, "Status: Loss Incurred", "", 1, "L", false, 0, "")
	lossPct := 0.0
	if req.TotalRevenue > 0 {
		lossPct = -req.NetProfit / req.TotalRevenue * 100
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Loss Percentage: %.2f%%", lossPct), "", 1, "L", false, 0, "")
}

func (r *PDFRenderer) writeRecommendations(pdf *gofpdf.Fpdf, profitable bool) {
	r.heading(pdf, "Recommendations:")

	lines := []string{
		"- Review and optimize cost structure",
		"- Consider alternative crops or markets",
		"- Analyze cost reduction opportunities",
	}
	if profitable {
		lines = []string{
			"- Continue with current farming practices",
			"- Consider scaling up production if market conditions remain favorable",
			"- Monitor market prices for optimal selling timing",
		}
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range lines {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
}

func (r *PDFRenderer) heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
}

func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	// Insert thousands separators into the integer part.
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out) + frac
	}
	return string(out) + frac
}
