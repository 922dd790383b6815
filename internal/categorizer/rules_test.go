package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-categorizer/internal/models"
)

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	var got []models.Category
	for _, rule := range rules.Rules() {
		got = append(got, rule.Category)
	}
	// every label except the catch-all, in priority order
	assert.Equal(t, models.AllCategories()[:len(models.AllCategories())-1], got)
	assert.Equal(t, DefaultIncomeIndicators, rules.IncomeIndicators())
}

func TestDefaultRules_KeywordsAreLowercase(t *testing.T) {
	for _, rule := range DefaultRules().Rules() {
		for _, keyword := range rule.Keywords {
			assert.Equal(t, keyword, toLowerTrim(keyword), "rule %s", rule.Category)
		}
	}
}

func TestNewRuleSet_Normalizes(t *testing.T) {
	rules := NewRuleSet([]Rule{
		{Category: " Pets ", Keywords: []string{"PetCo", "", "  "}},
	}, []string{" Refund "})

	got := rules.Rules()
	require.Len(t, got, 1)
	assert.Equal(t, models.Category("Pets"), got[0].Category)
	assert.Equal(t, []string{"petco"}, got[0].Keywords)
	assert.Equal(t, []string{"refund"}, rules.IncomeIndicators())
	assert.Equal(t, 2, rules.KeywordCount())
}

func TestRuleSet_IsImmutable(t *testing.T) {
	source := []Rule{{Category: "Pets", Keywords: []string{"petco"}}}
	rules := NewRuleSet(source, nil)

	source[0].Keywords[0] = "changed"
	copied := rules.Rules()
	copied[0].Keywords[0] = "changed too"

	assert.Equal(t, "petco", rules.Rules()[0].Keywords[0])
}

func TestRuleSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr string
	}{
		{"valid", []Rule{{Category: "A", Keywords: []string{"a"}}}, ""},
		{"empty label", []Rule{{Category: "", Keywords: []string{"a"}}}, "empty category label"},
		{"no keywords", []Rule{{Category: "A", Keywords: []string{" "}}}, "no keywords"},
		{"duplicate", []Rule{
			{Category: "A", Keywords: []string{"a"}},
			{Category: "A", Keywords: []string{"b"}},
		}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRuleSet(tt.rules, nil).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func toLowerTrim(s string) string {
	return normalizeKeywords([]string{s})[0]
}
