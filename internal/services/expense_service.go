package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categoryService CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categoryService: categoryService}
}

// validateFields checks the invariants shared by create and update:
// a non-negative amount, a date, a frequency only when recurring, and a
// category that belongs to the requesting user.
func (s *expenseService) validateFields(userID uint, fields ExpenseFields) error {
	if fields.Amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if fields.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	if fields.IsRecurring {
		if fields.RecurringFrequency == nil || !fields.RecurringFrequency.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring frequency is required for recurring transactions")
		}
	} else if fields.RecurringFrequency != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring frequency is only allowed for recurring transactions")
	}

	// A category referenced by ID must belong to the same user. This closes
	// the cross-user linkage hole that direct ID manipulation would open.
	if fields.CategoryID != nil && *fields.CategoryID != 0 {
		if _, err := s.categoryService.GetCategoryByID(userID, *fields.CategoryID); err != nil {
			return err
		}
	}

	return nil
}

// CreateExpense persists a new expense scoped to the given user.
func (s *expenseService) CreateExpense(userID uint, fields ExpenseFields) (*models.Expense, error) {
	if err := s.validateFields(userID, fields); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Amount:             fields.Amount,
		Description:        fields.Description,
		Date:               fields.Date,
		IsIncome:           fields.IsIncome,
		IsRecurring:        fields.IsRecurring,
		RecurringFrequency: fields.RecurringFrequency,
		UserID:             userID,
		CategoryID:         fields.CategoryID,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.CategoryID != nil && *f.CategoryID != 0 {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	return q
}

// GetUserExpenses retrieves a paginated, filtered window over the user's
// expenses, newest first.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllExpenses retrieves the full filtered set, newest first. Used by the
// report and export paths, which do not paginate.
func (s *expenseService) GetAllExpenses(userID uint, filter ExpenseFilter) ([]models.Expense, error) {
	q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	q = applyExpenseFilters(q, filter)

	var expenses []models.Expense
	if err := q.Preload("Category").Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetRecentExpenses retrieves the user's most recent transactions.
func (s *expenseService) GetRecentExpenses(userID uint, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Preload("Category").
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user. Expenses
// owned by other users resolve to not-found.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense overwrites the mutable fields of an expense after the
// ownership check.
func (s *expenseService) UpdateExpense(userID, expenseID uint, fields ExpenseFields) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.validateFields(userID, fields); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"amount":              fields.Amount,
		"description":         fields.Description,
		"date":                fields.Date,
		"is_income":           fields.IsIncome,
		"is_recurring":        fields.IsRecurring,
		"recurring_frequency": fields.RecurringFrequency,
		"category_id":         fields.CategoryID,
	}

	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// DeleteExpense hard-deletes an expense after the ownership check.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSummary computes the user's all-time income and expense totals.
func (s *expenseService) GetSummary(userID uint) (*Summary, error) {
	var summary Summary

	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND is_income = ?", userID, true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalIncome).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Expense{}).
		Where("user_id = ? AND is_income = ?", userID, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalExpenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &summary, nil
}
