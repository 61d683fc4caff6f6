package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/charts"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

const recentTransactionLimit = 5

// DashboardHandler serves the dashboard with the financial summary, recent
// transactions, the quick-add form, and the embedded chart data.
type DashboardHandler struct {
	users       services.UserServicer
	expenses    services.ExpenseServicer
	categories  services.CategoryServicer
	analytics   services.AnalyticsServicer
	trendMonths int
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	users services.UserServicer,
	expenses services.ExpenseServicer,
	categories services.CategoryServicer,
	analytics services.AnalyticsServicer,
	trendMonths int,
) *DashboardHandler {
	return &DashboardHandler{
		users:       users,
		expenses:    expenses,
		categories:  categories,
		analytics:   analytics,
		trendMonths: trendMonths,
	}
}

// Dashboard renders the dashboard page.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	summary, err := h.expenses.GetSummary(userID)
	if err != nil {
		c.Error(err)
		return
	}

	recent, err := h.expenses.GetRecentExpenses(userID, recentTransactionLimit)
	if err != nil {
		c.Error(err)
		return
	}

	categories, err := h.categories.GetUserCategories(userID)
	if err != nil {
		c.Error(err)
		return
	}

	totals, err := h.analytics.CategoryTotals(userID)
	if err != nil {
		c.Error(err)
		return
	}
	trend, err := h.analytics.MonthlyTrend(userID, h.trendMonths)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":              "Dashboard",
		"User":               user,
		"TotalIncome":        summary.TotalIncome,
		"TotalExpenses":      summary.TotalExpenses,
		"Balance":            summary.TotalIncome - summary.TotalExpenses,
		"RecentTransactions": recent,
		"Categories":         categories,
		"ExpenseChartData":   chartJSON(charts.CategoryPieData(totals)),
		"TrendChartData":     chartJSON(charts.MonthlyTrendData(trend)),
	})
}
