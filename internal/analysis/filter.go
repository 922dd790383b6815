package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/expense-categorizer/internal/models"
)

// Direction restricts records by the sign of their amount.
type Direction int

const (
	DirectionAll Direction = iota
	DirectionIncomeOnly
	DirectionExpensesOnly
)

// ParseDirection accepts "all", "income" or "expenses".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return DirectionAll, nil
	case "income", "income-only":
		return DirectionIncomeOnly, nil
	case "expenses", "expense", "expenses-only":
		return DirectionExpensesOnly, nil
	default:
		return DirectionAll, fmt.Errorf("unknown direction %q (want all, income or expenses)", s)
	}
}

// Filter selects a subset of records. Zero-valued fields do not filter.
// Category labels compare case-insensitively. From and To are inclusive
// calendar days.
type Filter struct {
	Categories []models.Category
	From       time.Time
	To         time.Time
	Direction  Direction
}

// Apply returns the matching records in their original order.
func (f Filter) Apply(records []models.CategorizedTransaction) []models.CategorizedTransaction {
	var allowed map[string]bool
	if len(f.Categories) > 0 {
		allowed = make(map[string]bool, len(f.Categories))
		for _, c := range f.Categories {
			allowed[categoryKey(c)] = true
		}
	}

	out := make([]models.CategorizedTransaction, 0, len(records))
	for _, r := range records {
		if allowed != nil && !allowed[categoryKey(r.Category)] {
			continue
		}
		if !f.From.IsZero() && dayOf(r.Date).Before(dayOf(f.From)) {
			continue
		}
		if !f.To.IsZero() && dayOf(r.Date).After(dayOf(f.To)) {
			continue
		}
		switch f.Direction {
		case DirectionIncomeOnly:
			if !r.IsIncome() {
				continue
			}
		case DirectionExpensesOnly:
			if !r.IsExpense() {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func categoryKey(c models.Category) string {
	return strings.ToLower(strings.TrimSpace(c.String()))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateSpan returns the earliest and latest record dates. ok is false for an
// empty input.
func DateSpan(records []models.CategorizedTransaction) (from, to time.Time, ok bool) {
	for i, r := range records {
		if i == 0 || r.Date.Before(from) {
			from = r.Date
		}
		if i == 0 || r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, len(records) > 0
}

// Categories returns the distinct categories of records, sorted by name.
func Categories(records []models.CategorizedTransaction) []models.Category {
	seen := make(map[models.Category]bool)
	var out []models.Category
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
