package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// currencySymbol prefixes every monetary value in the PDF.
const currencySymbol = "$"

// PDFOptions controls optional parts of the PDF report.
type PDFOptions struct {
	IncludeCharts bool
	PieChart      []byte
	TrendChart    []byte
}

// formatMoney renders cents with the fixed currency symbol and two decimals.
func formatMoney(cents int64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, float64(cents)/100)
}

// dateRangeText describes the active date range. Four variants depending on
// which bounds are present.
func dateRangeText(start, end *time.Time) string {
	switch {
	case start != nil && end != nil:
		return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	case start != nil:
		return fmt.Sprintf("From %s", start.Format("2006-01-02"))
	case end != nil:
		return fmt.Sprintf("Until %s", end.Format("2006-01-02"))
	default:
		return "All transactions"
	}
}

// WritePDF builds the PDF report in the pdf/ directory and returns the
// generated filename. An empty transaction set yields ErrNoData: there is
// no document to produce.
func (s *Store) WritePDF(user *models.User, report *services.Report, opts PDFOptions) (string, error) {
	if report == nil || len(report.Transactions) == 0 {
		return "", apperrors.ErrNoData
	}

	filename := fmt.Sprintf("%sexpenses_%s.pdf", OwnerPrefix(user.ID), time.Now().Format(timestampLayout))
	path := filepath.Join(s.pdfDir, filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, fmt.Sprintf("Financial Report for %s", user.Username), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Date range
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, dateRangeText(report.StartDate, report.EndDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Summary table: income, expense, balance with the balance colored by sign
	balance := report.Balance()
	pdf.SetFont("Helvetica", "", 11)
	summaryRow := func(label, value string, colored bool) {
		pdf.CellFormat(50, 7, label, "1", 0, "L", false, 0, "")
		if colored {
			if balance >= 0 {
				pdf.SetTextColor(0, 128, 0)
			} else {
				pdf.SetTextColor(200, 0, 0)
			}
		}
		pdf.CellFormat(40, 7, value, "1", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	summaryRow("Total Income", formatMoney(report.TotalIncome), false)
	summaryRow("Total Expense", formatMoney(report.TotalExpenses), false)
	summaryRow("Balance", formatMoney(balance), true)
	pdf.Ln(8)

	// Optional embedded charts
	if opts.IncludeCharts {
		imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		if len(opts.PieChart) > 0 {
			pdf.RegisterImageOptionsReader("pie", imgOpts, bytes.NewReader(opts.PieChart))
			pdf.ImageOptions("pie", 30, pdf.GetY(), 130, 0, true, imgOpts, 0, "")
			pdf.Ln(4)
		}
		if len(opts.TrendChart) > 0 {
			pdf.RegisterImageOptionsReader("trend", imgOpts, bytes.NewReader(opts.TrendChart))
			pdf.ImageOptions("trend", 25, pdf.GetY(), 150, 0, true, imgOpts, 0, "")
			pdf.Ln(4)
		}
	}

	// Transaction table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	headers := []struct {
		label string
		width float64
	}{
		{"Date", 25},
		{"Description", 70},
		{"Category", 40},
		{"Amount", 30},
		{"Type", 25},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range report.Transactions {
		categoryName := "Uncategorized"
		if e.Category != nil {
			categoryName = e.Category.Name
		}

		pdf.CellFormat(25, 6, e.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, e.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, categoryName, "1", 0, "L", false, 0, "")
		if e.IsIncome {
			pdf.SetTextColor(0, 128, 0)
		}
		pdf.CellFormat(30, 6, formatMoney(e.Amount), "1", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(25, 6, directionLabel(e.IsIncome), "1", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return filename, nil
}
