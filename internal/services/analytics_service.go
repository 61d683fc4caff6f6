package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// UncategorizedLabel is the bucket name for expenses with no category.
const UncategorizedLabel = "Uncategorized"

// analyticsService computes user-scoped aggregations over expenses.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// CategoryTotals sums outgoing expense amounts grouped by category name.
// Expenses without a category fall into the Uncategorized bucket, which has
// no color of its own. Buckets are ordered by total descending so the
// largest slice always comes first.
func (s *analyticsService) CategoryTotals(userID uint) ([]CategoryTotal, error) {
	var expenses []models.Expense
	if err := s.db.Preload("Category").
		Where("user_id = ? AND is_income = ?", userID, false).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(expenses) == 0 {
		return nil, nil
	}

	totals := make(map[string]int64)
	colors := make(map[string]string)
	for _, e := range expenses {
		name := UncategorizedLabel
		if e.Category != nil {
			name = e.Category.Name
			colors[name] = e.Category.Color
		}
		totals[name] += e.Amount
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{Name: name, Total: total, Color: colors[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// MonthlyTrend sums amounts grouped by year-month and direction over the
// trailing window. A month shows up only when it has at least one
// transaction; the missing side of a present month is zero-filled. Points
// are ordered chronologically ascending.
func (s *analyticsService) MonthlyTrend(userID uint, months int) ([]TrendPoint, error) {
	if months <= 0 {
		months = 6
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -30*months)

	var expenses []models.Expense
	if err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(expenses) == 0 {
		return nil, nil
	}

	byMonth := make(map[string]*TrendPoint)
	for _, e := range expenses {
		month := e.Date.Format("2006-01")
		point, ok := byMonth[month]
		if !ok {
			point = &TrendPoint{Month: month}
			byMonth[month] = point
		}
		if e.IsIncome {
			point.Income += e.Amount
		} else {
			point.Expense += e.Amount
		}
	}

	result := make([]TrendPoint, 0, len(byMonth))
	for _, point := range byMonth {
		result = append(result, *point)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result, nil
}
