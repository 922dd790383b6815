package categorizer

import (
	"fjacquet/expense-categorizer/internal/logging"
)

// RuleSource supplies a rule table, typically read from a YAML file.
type RuleSource interface {
	LoadRules() (RuleSet, error)
}

// NewFromSource builds a Categorizer from source. When the source fails or
// yields an invalid table, the built-in rules are used and a warning is logged.
func NewFromSource(source RuleSource, logger logging.Logger, opts ...Option) *Categorizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	rules, err := source.LoadRules()
	if err == nil {
		err = rules.Validate()
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to load rule table, using built-in rules")
		return New(DefaultRules(), logger, opts...)
	}
	if rules.Len() == 0 {
		logger.Warn("Rule table is empty, using built-in rules")
		return New(DefaultRules(), logger, opts...)
	}

	logger.Debug("Loaded rule table",
		logging.Field{Key: logging.FieldCount, Value: rules.Len()},
		logging.Field{Key: "keywords", Value: rules.KeywordCount()},
	)
	return New(rules, logger, opts...)
}
