package services

// reportService assembles filtered reports from the expense service.
type reportService struct {
	expenseService ExpenseServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(expenseService ExpenseServicer) ReportServicer {
	return &reportService{expenseService: expenseService}
}

// BuildReport fetches the filtered transaction set and computes its totals.
// An empty set is not an error; the caller decides whether that means an
// informational message or a skipped export.
func (s *reportService) BuildReport(userID uint, filter ExpenseFilter) (*Report, error) {
	transactions, err := s.expenseService.GetAllExpenses(userID, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		StartDate:    filter.StartDate,
		EndDate:      filter.EndDate,
		Transactions: transactions,
	}

	for _, t := range transactions {
		if t.IsIncome {
			report.TotalIncome += t.Amount
		} else {
			report.TotalExpenses += t.Amount
		}
	}

	return report, nil
}
