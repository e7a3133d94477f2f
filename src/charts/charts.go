// Package charts renders the dashboard charts as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"finance-tracker-server/src/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// Palette is cycled through for pie slices in category order.
var Palette = []string{
	"8884d8", "82ca9d", "ffc658", "ff7c7c",
	"8dd1e1", "d084d0", "ffb347", "87ceeb",
}

const (
	purchaseColor = "8884d8"
	currentColor  = "82ca9d"
)

// FormatAmount renders v in the given ISO currency, e.g. "$1,234.50".
// Unknown codes fall back to the bare number and code.
func FormatAmount(v float64, currency string) string {
	currency = strings.ToUpper(currency)
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%.2f %s", v, currency)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(v).Mul(factor).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

func expenseLabel(c models.CategoryTotal, currency string) string {
	return fmt.Sprintf("%s %s (%s%%)", c.Category, FormatAmount(c.Amount.InexactFloat64(), currency), c.Percent.StringFixed(1))
}

// RenderExpenses draws one pie slice per category.
func RenderExpenses(categories []models.CategoryTotal, currency string) ([]byte, error) {
	values := make([]chart.Value, 0, len(categories))
	for i, c := range categories {
		amount := c.Amount.InexactFloat64()
		if amount <= 0 {
			continue
		}
		color := drawing.ColorFromHex(Palette[i%len(Palette)])
		values = append(values, chart.Value{
			Value: amount,
			Label: expenseLabel(c, currency),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderHoldings draws a purchase value bar and a current value bar for
// each holding, side by side.
func RenderHoldings(points []models.HoldingPoint, currency string) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(points)*2)
	max := 0.0
	for _, p := range points {
		purchase := p.PurchaseValue.InexactFloat64()
		current := p.CurrentValue.InexactFloat64()
		if purchase > max {
			max = purchase
		}
		if current > max {
			max = current
		}
		bars = append(bars,
			chart.Value{
				Value: purchase,
				Label: p.Symbol + " cost",
				Style: chart.Style{FillColor: drawing.ColorFromHex(purchaseColor), StrokeColor: drawing.ColorFromHex(purchaseColor)},
			},
			chart.Value{
				Value: current,
				Label: p.Symbol + " now",
				Style: chart.Style{FillColor: drawing.ColorFromHex(currentColor), StrokeColor: drawing.ColorFromHex(currentColor)},
			},
		)
	}

	// go-chart rejects a zero-height range, which all-zero values produce.
	top := max * 1.1
	if top == 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:    "Purchase vs Current Value",
		Width:    900,
		Height:   450,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatAmount(f, currency)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
