package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-categorizer/internal/analysis"
	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/common"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/store"
)

const sampleCSV = "Date,Description,Amount\n" +
	"2024-01-15,Starbucks Coffee,-5.50\n" +
	"2024-01-16,Salary Deposit,3000.00\n" +
	"2024-01-17,Uber Ride,-12.30\n"

func TestPipeline_SampleData(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := container.NewContainer(config.Default(), container.WithLogger(logger))
	require.NoError(t, err)

	transactions, err := c.GetCSVHandler().ReadTransactions(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)

	categorized, err := c.GetCategorizer().CategorizeAll(context.Background(), transactions)
	require.NoError(t, err)

	categories := make([]models.Category, 0, len(categorized))
	for _, r := range categorized {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []models.Category{models.CategoryFoodDining, models.CategoryIncome, models.CategoryTransportation}, categories)

	result := c.GetAggregator().Analyze(categorized)
	assert.Equal(t, "17.80", result.Totals.Spending.StringFixed(2))
	assert.Equal(t, "3000.00", result.Totals.Income.StringFixed(2))
	assert.Equal(t, "2982.20", result.Totals.Net.StringFixed(2))
	assert.Equal(t, 3, result.Totals.Count)

	out, err := c.GetReportGenerator().Generate(result, report.FormatJSON)
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Transportation", doc.TopCategories[0].Category)
	assert.Equal(t, "Food & Dining", doc.TopCategories[1].Category)

	assert.True(t, logger.HasEntry("INFO", "Categorization summary"))
}

func TestPipeline_ExportThenReimport(t *testing.T) {
	handler := common.NewCSVHandler(';', nil)
	cat := categorizer.NewDefault(nil)

	transactions, err := common.NewCSVHandler(',', nil).ReadTransactions(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)
	categorized, err := cat.CategorizeAll(context.Background(), transactions)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, handler.WriteCategorizedFile(path, categorized))

	// The export keeps the input columns, so it can be analyzed again.
	again, err := handler.ReadTransactionsFile(path)
	require.NoError(t, err)
	recategorized, err := cat.CategorizeAll(context.Background(), again)
	require.NoError(t, err)

	agg := analysis.NewAggregator(analysis.Options{}, nil)
	assert.Equal(t, agg.Analyze(categorized), agg.Analyze(recategorized))
}

func TestPipeline_CustomRuleTable(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte(`
categories:
  - name: Coffee
    keywords: [coffee, espresso]
  - name: Rides
    keywords: [uber, lyft]
income_indicators: []
`), 0600))

	cfg := config.Default()
	cfg.Categorization.RulesFile = rulesFile
	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	transactions, err := c.GetCSVHandler().ReadTransactions(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)
	categorized, err := c.GetCategorizer().CategorizeAll(context.Background(), transactions)
	require.NoError(t, err)

	assert.Equal(t, models.Category("Coffee"), categorized[0].Category)
	// income fallback disabled, so the deposit falls through
	assert.Equal(t, models.CategoryOthers, categorized[1].Category)
	assert.Equal(t, models.Category("Rides"), categorized[2].Category)

	saved := store.NewRuleStore(filepath.Join(dir, "copy.yaml"), nil)
	require.NoError(t, saved.SaveRules(c.GetCategorizer().Rules()))
	reloaded, err := saved.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, reloaded.IncomeIndicators())
}
