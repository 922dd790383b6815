// Package container provides dependency injection for the expense-categorizer
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/expense-categorizer/internal/analysis"
	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/common"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.RuleStore
	categorizer *categorizer.Categorizer
	aggregator  *analysis.Aggregator
	csv         *common.CSVHandler
	reports     *report.Generator
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger logging.Logger
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewContainer creates and wires all application dependencies.
//
// The rule table comes from cfg.Categorization.RulesFile when set and
// readable, otherwise from the built-in rules.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	ruleStore := store.NewRuleStore(cfg.Categorization.RulesFile, logger)

	var cat *categorizer.Categorizer
	if cfg.Categorization.RulesFile != "" {
		cat = categorizer.NewFromSource(ruleStore, logger, categorizer.WithWorkers(cfg.Categorization.Workers))
	} else {
		cat = categorizer.NewDefault(logger, categorizer.WithWorkers(cfg.Categorization.Workers))
	}

	c := &Container{
		logger:      logger,
		config:      cfg,
		store:       ruleStore,
		categorizer: cat,
		aggregator:  analysis.NewAggregator(analysis.Options{TopN: cfg.Analysis.TopN}, logger),
		csv:         common.NewCSVHandler(cfg.DelimiterRune(), logger),
		reports:     report.NewGenerator(logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldCount, Value: cat.Rules().Len()},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Categorization.Workers})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the rule store.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetAggregator returns the analysis aggregator.
func (c *Container) GetAggregator() *analysis.Aggregator {
	return c.aggregator
}

// GetCSVHandler returns the CSV reader/writer.
func (c *Container) GetCSVHandler() *common.CSVHandler {
	return c.csv
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}
