// Package store reads and writes rule tables as YAML files.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

// DefaultRulesFile is looked up when no explicit path is configured.
const DefaultRulesFile = "rules.yaml"

// CategoryConfig is one rule as it appears in the YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig is the YAML document layout. The order of Categories is the
// matching priority. An empty IncomeIndicators list disables the fallback.
type RulesConfig struct {
	Categories       []CategoryConfig `yaml:"categories"`
	IncomeIndicators []string         `yaml:"income_indicators"`
}

// RuleStore loads and saves rule tables.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for rulesFile. An empty name means DefaultRulesFile.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if rulesFile == "" {
		rulesFile = DefaultRulesFile
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RuleStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for filename as given, then under ./config and
// finally under ~/.config/expense-categorizer.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "expense-categorizer", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", fmt.Errorf("rules file %s: %w", filename, os.ErrNotExist)
}

// LoadRules reads the rule table. A missing income_indicators key keeps the
// built-in indicators; an explicit empty list disables the fallback pass.
func (s *RuleStore) LoadRules() (categorizer.RuleSet, error) {
	path, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		return categorizer.RuleSet{}, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return categorizer.RuleSet{}, fmt.Errorf("error reading rules file: %w", err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return categorizer.RuleSet{}, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	s.logger.Debug("Loaded rules file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: rules.Len()},
	)
	return rules, nil
}

// ParseRules decodes a YAML rule document.
func ParseRules(data []byte) (categorizer.RuleSet, error) {
	var raw struct {
		Categories       []CategoryConfig `yaml:"categories"`
		IncomeIndicators *[]string        `yaml:"income_indicators"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return categorizer.RuleSet{}, err
	}
	if len(raw.Categories) == 0 {
		return categorizer.RuleSet{}, errors.New("no categories defined")
	}

	rules := make([]categorizer.Rule, 0, len(raw.Categories))
	for _, c := range raw.Categories {
		rules = append(rules, categorizer.Rule{
			Category: models.Category(c.Name),
			Keywords: c.Keywords,
		})
	}

	indicators := categorizer.DefaultIncomeIndicators
	if raw.IncomeIndicators != nil {
		indicators = *raw.IncomeIndicators
	}

	rs := categorizer.NewRuleSet(rules, indicators)
	if err := rs.Validate(); err != nil {
		return categorizer.RuleSet{}, err
	}
	return rs, nil
}

// MarshalRules encodes rules in the layout LoadRules reads.
func MarshalRules(rules categorizer.RuleSet) ([]byte, error) {
	doc := RulesConfig{IncomeIndicators: append([]string{}, rules.IncomeIndicators()...)}
	for _, rule := range rules.Rules() {
		doc.Categories = append(doc.Categories, CategoryConfig{
			Name:     rule.Category.String(),
			Keywords: rule.Keywords,
		})
	}
	return yaml.Marshal(doc)
}

// SaveRules writes rules to the store's file, creating parent directories.
func (s *RuleStore) SaveRules(rules categorizer.RuleSet) error {
	data, err := MarshalRules(rules)
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.RulesFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.RulesFile, data, 0600); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.Info("Saved rules file",
		logging.Field{Key: logging.FieldFile, Value: s.RulesFile},
		logging.Field{Key: logging.FieldCount, Value: rules.Len()},
	)
	return nil
}
