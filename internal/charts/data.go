package charts

import (
	"fintrack/internal/services"
)

// Dataset mirrors a Chart.js dataset object.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

// Data is a JSON-serializable chart descriptor consumed by Chart.js on the
// client.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// CategoryPieData builds the pie descriptor for per-category spend totals.
// Returns nil when there is nothing to render.
func CategoryPieData(totals []services.CategoryTotal) *Data {
	if len(totals) == 0 {
		return nil
	}

	labels := make([]string, len(totals))
	values := make([]float64, len(totals))
	colors := make([]string, len(totals))
	for i, ct := range totals {
		labels[i] = ct.Name
		values[i] = centsToUnits(ct.Total)
		colors[i] = colorFor(ct.Name, ct.Color)
	}

	return &Data{
		Labels: labels,
		Datasets: []Dataset{
			{Data: values, BackgroundColor: colors},
		},
	}
}

// MonthlyTrendData builds the two-series line descriptor for the monthly
// income/expense trend. Returns nil when there is nothing to render.
func MonthlyTrendData(points []services.TrendPoint) *Data {
	if len(points) == 0 {
		return nil
	}

	labels := make([]string, len(points))
	income := make([]float64, len(points))
	expense := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Month
		income[i] = centsToUnits(p.Income)
		expense[i] = centsToUnits(p.Expense)
	}

	return &Data{
		Labels: labels,
		Datasets: []Dataset{
			{
				Label:           "Income",
				Data:            income,
				BorderColor:     "rgba(75, 192, 192, 1)",
				BackgroundColor: "rgba(75, 192, 192, 0.2)",
				Fill:            true,
			},
			{
				Label:           "Expense",
				Data:            expense,
				BorderColor:     "rgba(255, 99, 132, 1)",
				BackgroundColor: "rgba(255, 99, 132, 0.2)",
				Fill:            true,
			},
		},
	}
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}
