// Package categorizer assigns a category label to a transaction description
// by keyword matching against an ordered rule table.
package categorizer

import (
	"strings"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

// Categorizer is safe for concurrent use; it holds no mutable state.
type Categorizer struct {
	rules   RuleSet
	keyword *KeywordStrategy
	income  *IncomeIndicatorStrategy
	workers int
	logger  logging.Logger
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithWorkers bounds the number of goroutines CategorizeAll may use.
// Values below 1 mean sequential processing.
func WithWorkers(n int) Option {
	return func(c *Categorizer) {
		c.workers = n
	}
}

// New creates a Categorizer over rules. A nil logger discards all output.
func New(rules RuleSet, logger logging.Logger, opts ...Option) *Categorizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Categorizer{
		rules:   rules,
		keyword: NewKeywordStrategy(rules),
		income:  NewIncomeIndicatorStrategy(rules),
		workers: 1,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault creates a Categorizer over the built-in rule table.
func NewDefault(logger logging.Logger, opts ...Option) *Categorizer {
	return New(DefaultRules(), logger, opts...)
}

// Rules returns the rule table in use.
func (c *Categorizer) Rules() RuleSet {
	return c.rules
}

// Categorize returns the category for desc. Absent, non-text and empty
// descriptions are labelled Others without further processing.
func (c *Categorizer) Categorize(desc models.Description) models.Category {
	category, _ := c.categorize(desc)
	return category
}

// CategorizeString is Categorize for a plain text description.
func (c *Categorizer) CategorizeString(description string) models.Category {
	return c.Categorize(models.TextDescription(description))
}

func (c *Categorizer) categorize(desc models.Description) (models.Category, models.MatchOutcome) {
	text, ok := desc.Text()
	if !ok {
		return models.CategoryOthers, models.MatchNone
	}
	normalized := strings.ToLower(text)

	if category, keyword, found := c.keyword.Match(normalized); found {
		c.logMatch(c.keyword.Name(), text, keyword, category)
		return category, models.MatchRule
	}
	if category, keyword, found := c.income.Match(normalized); found {
		c.logMatch(c.income.Name(), text, keyword, category)
		return category, models.MatchIncomeFallback
	}
	return models.CategoryOthers, models.MatchNone
}

func (c *Categorizer) logMatch(strategy, description, keyword string, category models.Category) {
	c.logger.Debug("Description categorized",
		logging.Field{Key: "strategy", Value: strategy},
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
		logging.Field{Key: logging.FieldCategory, Value: category.String()},
	)
}
