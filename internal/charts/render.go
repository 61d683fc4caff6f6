package charts

import (
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

func hexColor(value string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(value, "#"))
}

// RenderCategoryPie renders the per-category spend distribution as a PNG.
// Returns ErrNoData when the set is empty so callers can skip the chart
// instead of failing.
func RenderCategoryPie(totals []services.CategoryTotal, w io.Writer) error {
	if len(totals) == 0 {
		return apperrors.ErrNoData
	}

	values := make([]chart.Value, len(totals))
	for i, ct := range totals {
		values[i] = chart.Value{
			Value: centsToUnits(ct.Total),
			Label: ct.Name,
			Style: chart.Style{FillColor: hexColor(colorFor(ct.Name, ct.Color))},
		}
	}

	pie := chart.PieChart{
		Title:  "Expense Distribution by Category",
		Width:  640,
		Height: 512,
		Values: values,
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RenderMonthlyTrend renders the income vs expense trend as a PNG line
// chart. Returns ErrNoData when the set is empty.
func RenderMonthlyTrend(points []services.TrendPoint, w io.Writer) error {
	if len(points) == 0 {
		return apperrors.ErrNoData
	}

	xs := make([]float64, len(points))
	income := make([]float64, len(points))
	expense := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		income[i] = centsToUnits(p.Income)
		expense[i] = centsToUnits(p.Expense)
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Month}
	}

	// go-chart cannot scale an axis from a single x value; widen the domain
	// so a single-month trend still renders.
	if len(points) == 1 {
		xs = append(xs, 1)
		income = append(income, income[0])
		expense = append(expense, expense[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: points[0].Month})
	}

	graph := chart.Chart{
		Title:  "Monthly Income vs Expenses",
		Width:  768,
		Height: 384,
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xs,
				YValues: income,
				Style:   chart.Style{StrokeColor: drawing.ColorGreen},
			},
			chart.ContinuousSeries{
				Name:    "Expense",
				XValues: xs,
				YValues: expense,
				Style:   chart.Style{StrokeColor: drawing.ColorRed},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
