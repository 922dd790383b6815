package models

import (
	"fjacquet/expense-categorizer/internal/logging"
)

// CategorizationStats counts how a batch of descriptions was resolved.
type CategorizationStats struct {
	Total          int // descriptions processed
	RuleMatched    int // resolved by the category rule table
	IncomeFallback int // resolved by the income indicator pass
	Uncategorized  int // fell through to Others
}

// Record adds one categorization outcome.
func (cs *CategorizationStats) Record(outcome MatchOutcome) {
	cs.Total++
	switch outcome {
	case MatchRule:
		cs.RuleMatched++
	case MatchIncomeFallback:
		cs.IncomeFallback++
	default:
		cs.Uncategorized++
	}
}

// Merge adds the counters of other to cs.
func (cs *CategorizationStats) Merge(other CategorizationStats) {
	cs.Total += other.Total
	cs.RuleMatched += other.RuleMatched
	cs.IncomeFallback += other.IncomeFallback
	cs.Uncategorized += other.Uncategorized
}

// SuccessRate is the percentage of descriptions that did not fall through to Others.
func (cs CategorizationStats) SuccessRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.RuleMatched+cs.IncomeFallback) / float64(cs.Total) * 100.0
}

// LogSummary writes the counters as a single info entry.
func (cs CategorizationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: "total_transactions", Value: cs.Total},
		logging.Field{Key: "rule_matched", Value: cs.RuleMatched},
		logging.Field{Key: "income_fallback", Value: cs.IncomeFallback},
		logging.Field{Key: "uncategorized", Value: cs.Uncategorized},
		logging.Field{Key: "success_rate", Value: cs.SuccessRate()},
	)
}

// MatchOutcome tells which pass of the categorizer produced a label.
type MatchOutcome int

const (
	MatchNone MatchOutcome = iota
	MatchRule
	MatchIncomeFallback
)
