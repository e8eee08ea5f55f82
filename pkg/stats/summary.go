// Package stats recomputes every derived figure the views display
// from the in-memory collections. Everything here is pure and
// idempotent so it can be re-run after each local mutation without
// another round trip.
package stats

import (
	"fmt"
	"time"

	"github.com/matt-steen/zenith/pkg/model"
)

const warnFraction = 0.8

// MonthlyTrend is one month's income/expense pair.
type MonthlyTrend struct {
	Month    string
	Income   float64
	Expenses float64
}

// Summary is the budget view's derived figures.
type Summary struct {
	TotalIncome       float64
	TotalExpenses     float64
	Balance           float64
	CategoryBreakdown map[string]float64
	MonthlyTrends     []MonthlyTrend
}

// CalculateSummary derives the budget summary from the full visible
// transaction set. The category breakdown covers expenses only.
func CalculateSummary(transactions []model.Transaction, now time.Time) Summary {
	s := Summary{CategoryBreakdown: map[string]float64{}}

	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			s.TotalIncome += t.Amount
		case model.TypeExpense:
			s.TotalExpenses += t.Amount
			s.CategoryBreakdown[t.Category] += t.Amount
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpenses

	s.MonthlyTrends = []MonthlyTrend{{
		Month:    now.Format("Jan 2006"),
		Income:   s.TotalIncome,
		Expenses: s.TotalExpenses,
	}}

	return s
}

// IncomeBreakdown sums income amounts per category.
func IncomeBreakdown(transactions []model.Transaction) map[string]float64 {
	out := map[string]float64{}

	for _, t := range transactions {
		if t.Type == model.TypeIncome {
			out[t.Category] += t.Amount
		}
	}

	return out
}

// TransactionsOn filters the transactions booked on one calendar day.
func TransactionsOn(transactions []model.Transaction, date string) []model.Transaction {
	out := []model.Transaction{}

	for _, t := range transactions {
		if t.Date == date {
			out = append(out, t)
		}
	}

	return out
}

// FillSpent copies each budget row's category total out of the
// summary into Spent and returns the updated rows.
func FillSpent(budgets []model.Budget, s Summary) []model.Budget {
	out := make([]model.Budget, len(budgets))

	for i, b := range budgets {
		b.Spent = s.CategoryBreakdown[b.Category]
		out[i] = b
	}

	return out
}

// BudgetAlerts recomputes the alert list from scratch: per budget row
// with a positive limit, a warning past 80% of the limit and an
// exceeded message past the limit itself. The previous list is always
// superseded, never appended to.
func BudgetAlerts(budgets []model.Budget, s Summary) []string {
	alerts := []string{}

	for _, b := range budgets {
		spent := s.CategoryBreakdown[b.Category]
		if b.Limit <= 0 {
			continue
		}

		switch {
		case spent > b.Limit:
			alerts = append(alerts, fmt.Sprintf(
				"Budget exceeded for %s: $%.2f / $%.2f", b.Category, spent, b.Limit))
		case spent > b.Limit*warnFraction:
			alerts = append(alerts, fmt.Sprintf(
				"Budget warning for %s: $%.2f / $%.2f (80%% used)", b.Category, spent, b.Limit))
		}
	}

	return alerts
}

// ChartData is the {labels, datasets} shape handed to whatever draws
// the breakdown; the client treats the renderer as an opaque sink.
type ChartData struct {
	Labels []string
	Data   []float64
}

// BreakdownChart flattens the expense breakdown into chart input,
// skipping zero and negative buckets.
func BreakdownChart(s Summary) ChartData {
	cd := ChartData{Labels: []string{}, Data: []float64{}}

	for _, category := range sortedKeys(s.CategoryBreakdown) {
		amount := s.CategoryBreakdown[category]
		if amount <= 0 {
			continue
		}

		cd.Labels = append(cd.Labels, category)
		cd.Data = append(cd.Data, amount)
	}

	return cd
}
