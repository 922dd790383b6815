package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-categorizer/internal/models"
)

func descriptions(records []models.CategorizedTransaction) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Description.String())
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps all", Filter{}, []string{"Starbucks Coffee", "Salary Deposit", "Uber Ride"}},
		{"by category", Filter{Categories: []models.Category{models.CategoryIncome, models.CategoryTransportation}}, []string{"Salary Deposit", "Uber Ride"}},
		{"category ignores case", Filter{Categories: []models.Category{"food & dining", "TRANSPORTATION"}}, []string{"Starbucks Coffee", "Uber Ride"}},
		{"income only", Filter{Direction: DirectionIncomeOnly}, []string{"Salary Deposit"}},
		{"expenses only", Filter{Direction: DirectionExpensesOnly}, []string{"Starbucks Coffee", "Uber Ride"}},
		{"from is inclusive", Filter{From: baseDate.AddDate(0, 0, 1)}, []string{"Salary Deposit", "Uber Ride"}},
		{"to is inclusive and ignores time of day", Filter{To: baseDate.AddDate(0, 0, 1).Add(3 * time.Hour)}, []string{"Starbucks Coffee", "Salary Deposit"}},
		{"combined", Filter{From: baseDate, To: baseDate.AddDate(0, 0, 1), Direction: DirectionExpensesOnly}, []string{"Starbucks Coffee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, descriptions(tt.filter.Apply(records)))
		})
	}
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"":         DirectionAll,
		"ALL":      DirectionAll,
		"income":   DirectionIncomeOnly,
		"expenses": DirectionExpensesOnly,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestDateSpan(t *testing.T) {
	_, _, ok := DateSpan(nil)
	assert.False(t, ok)

	from, to, ok := DateSpan(sampleRecords())
	require.True(t, ok)
	assert.Equal(t, baseDate, from)
	assert.Equal(t, baseDate.AddDate(0, 0, 2), to)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []models.Category{
		models.CategoryFoodDining, models.CategoryIncome, models.CategoryTransportation,
	}, Categories(sampleRecords()))
}
