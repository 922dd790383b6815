package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/expense-categorizer/internal/logging"
)

func TestDescription_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		desc     Description
		wantKind DescriptionKind
		wantText string
		wantOK   bool
	}{
		{"text", TextDescription("Uber Ride"), DescriptionText, "Uber Ride", true},
		{"empty text", TextDescription(""), DescriptionText, "", false},
		{"absent", AbsentDescription(), DescriptionAbsent, "", false},
		{"zero value is absent", Description{}, DescriptionAbsent, "", false},
		{"number", OtherDescription(12345), DescriptionOther, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.desc.Kind())
			text, ok := tt.desc.Text()
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	assert.Equal(t, "12345", OtherDescription(12345).String())
}

func TestTransaction_Direction(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	expense := NewTransaction(date, "Starbucks Coffee", decimal.RequireFromString("-5.50"))
	income := NewTransaction(date, "Salary Deposit", decimal.RequireFromString("3000.00"))
	zero := NewTransaction(date, "Adjustment", decimal.Zero)

	assert.True(t, expense.IsExpense())
	assert.False(t, expense.IsIncome())
	assert.True(t, income.IsIncome())
	assert.False(t, zero.IsExpense())
	assert.False(t, zero.IsIncome())
}

func TestTransaction_WithCategoryLeavesSourceUntouched(t *testing.T) {
	tx := NewTransaction(time.Time{}, "Uber Ride", decimal.RequireFromString("-12.30"))
	ct := tx.WithCategory(CategoryTransportation)

	assert.Equal(t, CategoryTransportation, ct.Category)
	assert.Equal(t, tx, ct.Transaction)
}

func TestCategory_Style(t *testing.T) {
	assert.Equal(t, "🍔", CategoryFoodDining.Style().Emoji)
	assert.Equal(t, "#BB8FCE", CategoryBanking.Style().Color)
	assert.Equal(t, CategoryOthers.Style(), Category("Pets").Style())
}

func TestCategory_IsKnown(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsKnown(), c.String())
	}
	assert.False(t, Category("Pets").IsKnown())
	assert.Equal(t, CategoryOthers, AllCategories()[len(AllCategories())-1])
}

func TestCategorizationStats(t *testing.T) {
	var stats CategorizationStats
	stats.Record(MatchRule)
	stats.Record(MatchRule)
	stats.Record(MatchIncomeFallback)
	stats.Record(MatchNone)

	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 75.0, stats.SuccessRate(), 0.001)

	var merged CategorizationStats
	merged.Merge(stats)
	merged.Merge(stats)
	assert.Equal(t, 8, merged.Total)
	assert.Equal(t, 2, merged.Uncategorized)

	logger := logging.NewMockLogger()
	stats.LogSummary(logger)
	assert.True(t, logger.HasEntry("INFO", "Categorization summary"))

	assert.Equal(t, 0.0, CategorizationStats{}.SuccessRate())
}
