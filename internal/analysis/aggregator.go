// Package analysis computes summary statistics over categorized transactions.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

// DefaultTopN is the size of the top spending ranking when none is configured.
const DefaultTopN = 5

// Totals are the global figures over every record.
type Totals struct {
	Spending decimal.Decimal // sum of expense magnitudes
	Income   decimal.Decimal // sum of positive amounts
	Net      decimal.Decimal // Income - Spending
	Count    int
}

// CategorySummary aggregates the expenses of one category. Amounts are
// positive magnitudes.
type CategorySummary struct {
	Category          models.Category
	Total             decimal.Decimal
	Count             int
	Average           decimal.Decimal
	SampleDescription string // first description seen for the category
}

// CategoryAmount pairs a category with a monetary figure.
type CategoryAmount struct {
	Category models.Category
	Amount   decimal.Decimal
}

// CategoryCount pairs a category with a record count.
type CategoryCount struct {
	Category models.Category
	Count    int
}

// Report is the full analysis result. Expense-only slices are empty, never
// nil, when there are no expenses.
type Report struct {
	Totals        Totals
	Summary       []CategorySummary // by Total, descending
	TopCategories []CategoryAmount  // first TopN of Summary
	Averages      []CategoryAmount  // by average amount, descending
	Frequencies   []CategoryCount   // by count, descending
}

// Options tune the analysis.
type Options struct {
	TopN int // values below 1 mean DefaultTopN
}

// Aggregator turns categorized records into a Report. It keeps no state
// between calls.
type Aggregator struct {
	opts   Options
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(opts Options, logger logging.Logger) *Aggregator {
	if opts.TopN < 1 {
		opts.TopN = DefaultTopN
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Aggregator{opts: opts, logger: logger}
}

// Analyze computes the report for records.
//
// Sorted outputs break ties by the order in which categories were first
// encountered in records.
func (a *Aggregator) Analyze(records []models.CategorizedTransaction) Report {
	grouped := groupExpenses(records)
	report := Report{
		Totals:      ComputeTotals(records),
		Summary:     byTotal(grouped),
		Averages:    averages(grouped),
		Frequencies: frequencies(grouped),
	}

	top := min(a.opts.TopN, len(report.Summary))
	report.TopCategories = make([]CategoryAmount, 0, top)
	for _, s := range report.Summary[:top] {
		report.TopCategories = append(report.TopCategories, CategoryAmount{Category: s.Category, Amount: s.Total})
	}

	a.logger.Debug("Analysis complete",
		logging.Field{Key: logging.FieldCount, Value: report.Totals.Count},
		logging.Field{Key: "expense_categories", Value: len(report.Summary)},
		logging.Field{Key: "spending", Value: report.Totals.Spending.StringFixed(2)},
		logging.Field{Key: "income", Value: report.Totals.Income.StringFixed(2)},
	)
	return report
}

// ComputeTotals sums spending and income over all records.
func ComputeTotals(records []models.CategorizedTransaction) Totals {
	totals := Totals{
		Spending: decimal.Zero,
		Income:   decimal.Zero,
		Count:    len(records),
	}
	for _, r := range records {
		switch {
		case r.Amount.IsNegative():
			totals.Spending = totals.Spending.Add(r.Amount.Neg())
		case r.Amount.IsPositive():
			totals.Income = totals.Income.Add(r.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Spending)
	return totals
}

// groupExpenses returns one summary per expense category in first-encounter order.
func groupExpenses(records []models.CategorizedTransaction) []CategorySummary {
	grouped := make([]CategorySummary, 0)
	index := make(map[models.Category]int)

	for _, r := range records {
		if !r.IsExpense() {
			continue
		}
		i, ok := index[r.Category]
		if !ok {
			i = len(grouped)
			index[r.Category] = i
			grouped = append(grouped, CategorySummary{
				Category:          r.Category,
				Total:             decimal.Zero,
				SampleDescription: r.Description.String(),
			})
		}
		grouped[i].Total = grouped[i].Total.Add(r.Amount.Neg())
		grouped[i].Count++
	}

	// every group holds at least one record, so the division is defined
	for i := range grouped {
		grouped[i].Average = grouped[i].Total.Div(decimal.NewFromInt(int64(grouped[i].Count)))
	}
	return grouped
}

func byTotal(grouped []CategorySummary) []CategorySummary {
	out := make([]CategorySummary, len(grouped))
	copy(out, grouped)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

func averages(grouped []CategorySummary) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(grouped))
	for _, s := range grouped {
		out = append(out, CategoryAmount{Category: s.Category, Amount: s.Average})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

func frequencies(grouped []CategorySummary) []CategoryCount {
	out := make([]CategoryCount, 0, len(grouped))
	for _, s := range grouped {
		out = append(out, CategoryCount{Category: s.Category, Count: s.Count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
