package categorizer

import (
	"strings"

	"fjacquet/expense-categorizer/internal/models"
)

// MatchStrategy is one pass of the categorizer. Strategies receive the
// already lowercased description.
type MatchStrategy interface {
	// Match returns the category, the keyword that selected it, and whether
	// the strategy matched at all.
	Match(normalized string) (models.Category, string, bool)

	// Name identifies the strategy in log entries.
	Name() string
}

// KeywordStrategy walks the ordered rule table and stops at the first rule
// owning a keyword that is a substring of the description.
type KeywordStrategy struct {
	rules []Rule
}

// NewKeywordStrategy builds the rule table pass.
func NewKeywordStrategy(rules RuleSet) *KeywordStrategy {
	return &KeywordStrategy{rules: rules.Rules()}
}

func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

func (s *KeywordStrategy) Match(normalized string) (models.Category, string, bool) {
	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Category, keyword, true
			}
		}
	}
	return "", "", false
}

// IncomeIndicatorStrategy labels descriptions carrying an income phrase.
type IncomeIndicatorStrategy struct {
	indicators []string
}

// NewIncomeIndicatorStrategy builds the fallback pass.
func NewIncomeIndicatorStrategy(rules RuleSet) *IncomeIndicatorStrategy {
	return &IncomeIndicatorStrategy{indicators: rules.IncomeIndicators()}
}

func (s *IncomeIndicatorStrategy) Name() string {
	return "IncomeIndicator"
}

func (s *IncomeIndicatorStrategy) Match(normalized string) (models.Category, string, bool) {
	for _, indicator := range s.indicators {
		if strings.Contains(normalized, indicator) {
			return models.CategoryIncome, indicator, true
		}
	}
	return "", "", false
}
