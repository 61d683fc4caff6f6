package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// csvHeader is the fixed column order of every CSV export.
var csvHeader = []string{"Date", "Category", "Amount", "Type"}

// WriteCSV serializes the expenses to a CSV file in the csv/ directory and
// returns the generated filename. One row per expense; an empty set still
// produces a valid file with just the header.
func (s *Store) WriteCSV(userID uint, expenses []models.Expense) (string, error) {
	filename := fmt.Sprintf("%sreport_%s.csv", OwnerPrefix(userID), time.Now().Format(timestampLayout))
	path := filepath.Join(s.csvDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, e := range expenses {
		categoryName := "N/A"
		if e.Category != nil {
			categoryName = e.Category.Name
		}
		row := []string{
			e.Date.Format("2006-01-02"),
			categoryName,
			fmt.Sprintf("%.2f", float64(e.Amount)/100),
			directionLabel(e.IsIncome),
		}
		if err := w.Write(row); err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return filename, nil
}

func directionLabel(isIncome bool) string {
	if isIncome {
		return "Income"
	}
	return "Expense"
}
