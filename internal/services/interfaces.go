package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID uint, username, email string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	DeleteAccount(userID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	CopyTemplatesToUser(tx *gorm.DB, userID uint) error
}

// ExpenseFields holds the mutable fields of an expense for create and update.
type ExpenseFields struct {
	Amount             int64
	Description        string
	Date               time.Time
	IsIncome           bool
	IsRecurring        bool
	RecurringFrequency *models.RecurringFrequency
	CategoryID         *uint
}

// ExpenseFilter holds optional filter parameters for listing expenses.
// A nil or zero CategoryID means all categories.
type ExpenseFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryID  *uint
	CategoryIDs []uint
}

// Summary holds a user's all-time income and expense totals in cents.
type Summary struct {
	TotalIncome   int64
	TotalExpenses int64
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, fields ExpenseFields) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetAllExpenses(userID uint, filter ExpenseFilter) ([]models.Expense, error)
	GetRecentExpenses(userID uint, limit int) ([]models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, fields ExpenseFields) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetSummary(userID uint) (*Summary, error)
}

// CategoryTotal is the spend total for one category bucket. Color is empty
// when the bucket has no defined color (e.g. the "Uncategorized" bucket).
type CategoryTotal struct {
	Name  string
	Total int64
	Color string
}

// TrendPoint is one month in the income/expense trend. A month appears only
// when it has at least one transaction; the series for the missing side is
// zero-filled during grouping.
type TrendPoint struct {
	Month   string
	Income  int64
	Expense int64
}

// AnalyticsServicer defines the contract for user-scoped aggregations.
// Results are recomputed on each call; nothing is cached.
type AnalyticsServicer interface {
	CategoryTotals(userID uint) ([]CategoryTotal, error)
	MonthlyTrend(userID uint, months int) ([]TrendPoint, error)
}

// Report is a filtered transaction set with its totals, ready to render
// or hand to the export layer.
type Report struct {
	StartDate     *time.Time
	EndDate       *time.Time
	TotalIncome   int64
	TotalExpenses int64
	Transactions  []models.Expense
}

// Balance returns income minus expenses for the report window.
func (r *Report) Balance() int64 { return r.TotalIncome - r.TotalExpenses }

// ReportServicer defines the contract for assembling filtered reports.
type ReportServicer interface {
	BuildReport(userID uint, filter ExpenseFilter) (*Report, error)
}

// PasswordResetServicer issues and verifies signed password-reset tokens.
// The helper is complete and tested but intentionally not wired to a route.
type PasswordResetServicer interface {
	IssueToken(user *models.User) (string, error)
	VerifyToken(token string) (uint, error)
}
