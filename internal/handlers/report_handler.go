package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/charts"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

const recentExportLimit = 10

// ReportHandler serves the reports page, report generation with optional
// CSV/PDF export, file downloads, and the full-data export.
type ReportHandler struct {
	users       services.UserServicer
	reports     services.ReportServicer
	expenses    services.ExpenseServicer
	categories  services.CategoryServicer
	analytics   services.AnalyticsServicer
	store       *export.Store
	trendMonths int
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(
	users services.UserServicer,
	reports services.ReportServicer,
	expenses services.ExpenseServicer,
	categories services.CategoryServicer,
	analytics services.AnalyticsServicer,
	store *export.Store,
	trendMonths int,
) *ReportHandler {
	return &ReportHandler{
		users:       users,
		reports:     reports,
		expenses:    expenses,
		categories:  categories,
		analytics:   analytics,
		store:       store,
		trendMonths: trendMonths,
	}
}

// ReportForm is the report generation form.
type ReportForm struct {
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Categories    []uint `form:"categories"`
	IncludeCharts bool   `form:"include_charts"`
	ExportFormat  string `form:"export_format" binding:"omitempty,export_format"`
}

func (f *ReportForm) toFilter() services.ExpenseFilter {
	var filter services.ExpenseFilter
	if d, err := time.Parse(dateLayout, f.StartDate); err == nil {
		filter.StartDate = &d
	}
	if d, err := time.Parse(dateLayout, f.EndDate); err == nil {
		filter.EndDate = &d
	}
	filter.CategoryIDs = f.Categories
	return filter
}

// ShowReports renders the reports page with the user's recent exports.
func (h *ReportHandler) ShowReports(c *gin.Context) {
	h.renderReports(c, nil)
}

func (h *ReportHandler) renderReports(c *gin.Context, report *services.Report) {
	userID := middleware.UserID(c)

	categories, err := h.categories.GetUserCategories(userID)
	if err != nil {
		c.Error(err)
		return
	}

	recentExports, err := h.store.ListRecent(userID, recentExportLimit)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "reports.html", gin.H{
		"Title":         "Reports",
		"Categories":    categories,
		"RecentExports": recentExports,
		"Report":        report,
	})
}

// Generate builds the report, optionally exports it, and re-renders the
// reports page with the result. A CSV or PDF export redirects straight to
// the download endpoint.
func (h *ReportHandler) Generate(c *gin.Context) {
	userID := middleware.UserID(c)

	var form ReportForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the report options and try again.")
		redirect(c, "/reports")
		return
	}

	report, err := h.reports.BuildReport(userID, form.toFilter())
	if err != nil {
		flashError(c, err)
		redirect(c, "/reports")
		return
	}

	switch form.ExportFormat {
	case "csv":
		filename, err := h.store.WriteCSV(userID, report.Transactions)
		if err != nil {
			flashError(c, err)
			redirect(c, "/reports")
			return
		}
		redirect(c, "/download/csv/"+filename)
		return

	case "pdf":
		user, err := h.users.GetUserByID(userID)
		if err != nil {
			flashError(c, err)
			redirect(c, "/reports")
			return
		}

		opts := export.PDFOptions{IncludeCharts: form.IncludeCharts}
		if form.IncludeCharts {
			opts.PieChart, opts.TrendChart = h.renderChartImages(userID)
		}

		filename, err := h.store.WritePDF(user, report, opts)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoData) {
				middleware.AddFlash(c, "info", apperrors.ErrNoData.Message)
			} else {
				flashError(c, err)
			}
			redirect(c, "/reports")
			return
		}
		redirect(c, "/download/pdf/"+filename)
		return
	}

	h.renderReports(c, report)
}

// renderChartImages renders the pie and trend charts as PNGs for embedding
// in the PDF. A chart that cannot be rendered is simply omitted.
func (h *ReportHandler) renderChartImages(userID uint) (pie, trend []byte) {
	if totals, err := h.analytics.CategoryTotals(userID); err == nil && totals != nil {
		var buf bytes.Buffer
		if err := charts.RenderCategoryPie(totals, &buf); err == nil {
			pie = buf.Bytes()
		}
	}
	if points, err := h.analytics.MonthlyTrend(userID, h.trendMonths); err == nil && points != nil {
		var buf bytes.Buffer
		if err := charts.RenderMonthlyTrend(points, &buf); err == nil {
			trend = buf.Bytes()
		}
	}
	return pie, trend
}

// Download serves an exported file. Ownership is checked before the
// filesystem is touched, so a denied request learns nothing.
func (h *ReportHandler) Download(c *gin.Context) {
	userID := middleware.UserID(c)

	fileType := c.Param("file_type")
	filename := c.Param("filename")

	path, err := h.store.Resolve(userID, fileType, filename)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccessDenied):
			middleware.AddFlash(c, "danger", "Access denied.")
		case errors.Is(err, apperrors.ErrInvalidExport):
			middleware.AddFlash(c, "danger", "Invalid file type.")
		default:
			middleware.AddFlash(c, "danger", "File not found.")
		}
		redirect(c, "/reports")
		return
	}

	c.FileAttachment(path, filename)
}

// ExportAll writes every transaction the user has to a CSV and redirects to
// its download.
func (h *ReportHandler) ExportAll(c *gin.Context) {
	userID := middleware.UserID(c)

	expenses, err := h.expenses.GetAllExpenses(userID, services.ExpenseFilter{})
	if err != nil {
		flashError(c, err)
		redirect(c, "/profile")
		return
	}

	filename, err := h.store.WriteCSV(userID, expenses)
	if err != nil {
		flashError(c, err)
		redirect(c, "/profile")
		return
	}

	middleware.AddFlash(c, "success", "All data exported successfully!")
	redirect(c, "/download/csv/"+filename)
}
