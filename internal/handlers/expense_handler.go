package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ExpenseHandler serves the transaction list page and the CRUD endpoints
// behind its forms and edit modal.
type ExpenseHandler struct {
	expenses   services.ExpenseServicer
	categories services.CategoryServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer, categories services.CategoryServicer) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, categories: categories}
}

// ExpenseForm is the add/edit transaction form. Description is optional
// free text; the category must be one of the user's own.
type ExpenseForm struct {
	Amount             float64 `form:"amount" binding:"required,gt=0"`
	Description        string  `form:"description" binding:"max=200"`
	Date               string  `form:"date" binding:"required"`
	IsIncome           bool    `form:"is_income"`
	IsRecurring        bool    `form:"is_recurring"`
	RecurringFrequency string  `form:"recurring_frequency" binding:"omitempty,frequency"`
	CategoryID         uint    `form:"category" binding:"required"`
}

// QuickAddForm is the dashboard quick-add form. The date defaults to today.
type QuickAddForm struct {
	Amount      float64 `form:"amount" binding:"required,gt=0"`
	Description string  `form:"description" binding:"max=200"`
	IsIncome    bool    `form:"is_income"`
	CategoryID  uint    `form:"category" binding:"required"`
}

// FilterForm is the list page filter, bound from the query string.
// Category 0 means all categories.
type FilterForm struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  uint   `form:"category"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
}

const dateLayout = "2006-01-02"

func (f *ExpenseForm) toFields() (services.ExpenseFields, error) {
	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return services.ExpenseFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date")
	}

	fields := services.ExpenseFields{
		Amount:      amountToCents(f.Amount),
		Description: f.Description,
		Date:        date,
		IsIncome:    f.IsIncome,
		IsRecurring: f.IsRecurring,
	}
	if f.CategoryID != 0 {
		id := f.CategoryID
		fields.CategoryID = &id
	}
	if f.IsRecurring && f.RecurringFrequency != "" {
		freq := models.RecurringFrequency(f.RecurringFrequency)
		fields.RecurringFrequency = &freq
	}
	return fields, nil
}

func (f *FilterForm) toFilter() services.ExpenseFilter {
	var filter services.ExpenseFilter
	if d, err := time.Parse(dateLayout, f.StartDate); err == nil {
		filter.StartDate = &d
	}
	if d, err := time.Parse(dateLayout, f.EndDate); err == nil {
		filter.EndDate = &d
	}
	if f.Category != 0 {
		id := f.Category
		filter.CategoryID = &id
	}
	return filter
}

// List renders the transaction list with filters and pagination.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	var filterForm FilterForm
	if err := c.ShouldBindQuery(&filterForm); err != nil {
		filterForm = FilterForm{}
	}

	page := pagination.PageRequest{Page: filterForm.Page}
	page.Defaults()

	result, err := h.expenses.GetUserExpenses(userID, page, filterForm.toFilter())
	if err != nil {
		c.Error(err)
		return
	}

	categories, err := h.categories.GetUserCategories(userID)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "expenses.html", gin.H{
		"Title":        "Transactions",
		"Transactions": result,
		"Categories":   categories,
		"Filter":       filterForm,
	})
}

// Create adds a transaction from the list page form.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the transaction details and try again.")
		redirect(c, "/expenses")
		return
	}

	fields, err := form.toFields()
	if err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	if _, err := h.expenses.CreateExpense(userID, fields); err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	middleware.AddFlash(c, "success", "Transaction added successfully!")
	redirect(c, "/expenses")
}

// Get returns a single transaction as JSON for the edit modal.
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  expense.ID,
		"amount":              centsToAmount(expense.Amount),
		"description":         expense.Description,
		"date":                expense.Date.Format(dateLayout),
		"category_id":         expense.CategoryID,
		"is_income":           expense.IsIncome,
		"is_recurring":        expense.IsRecurring,
		"recurring_frequency": expense.RecurringFrequency,
	})
}

// Edit updates a transaction from the edit modal form.
func (h *ExpenseHandler) Edit(c *gin.Context) {
	userID := middleware.UserID(c)

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the transaction details and try again.")
		redirect(c, "/expenses")
		return
	}

	fields, err := form.toFields()
	if err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	if _, err := h.expenses.UpdateExpense(userID, expenseID, fields); err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	middleware.AddFlash(c, "success", "Transaction updated!")
	redirect(c, "/expenses")
}

// Delete removes a transaction.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	if err := h.expenses.DeleteExpense(userID, expenseID); err != nil {
		flashError(c, err)
		redirect(c, "/expenses")
		return
	}

	middleware.AddFlash(c, "success", "Transaction deleted successfully!")
	redirect(c, "/expenses")
}

// QuickAdd adds a transaction from the dashboard with today's date.
func (h *ExpenseHandler) QuickAdd(c *gin.Context) {
	userID := middleware.UserID(c)

	var form QuickAddForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the transaction details and try again.")
		redirect(c, "/dashboard")
		return
	}

	fields := services.ExpenseFields{
		Amount:      amountToCents(form.Amount),
		Description: form.Description,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		IsIncome:    form.IsIncome,
	}
	if form.CategoryID != 0 {
		id := form.CategoryID
		fields.CategoryID = &id
	}

	if _, err := h.expenses.CreateExpense(userID, fields); err != nil {
		flashError(c, err)
		redirect(c, "/dashboard")
		return
	}

	middleware.AddFlash(c, "success", "Transaction added successfully!")
	redirect(c, "/dashboard")
}
