// Package rules inspects and exports the keyword rule table
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/store"
)

var (
	initOutput string
	initForce  bool
)

// Cmd groups the rule table subcommands.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect, export and validate the keyword rule table",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active rule table in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return List(cmd.OutOrStdout(), c.GetCategorizer().Rules())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in rule table to a YAML file for editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		path := initOutput
		if path == "" {
			path = c.GetStore().RulesFile
		}
		if err := Init(path, initForce, c.GetLogger()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a YAML rule table is well formed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Validate(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Destination file (default: the configured rules file or rules.yaml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	Cmd.AddCommand(listCmd, initCmd, validateCmd)
}

// List prints rules as an aligned table followed by the income indicators.
func List(out io.Writer, rules categorizer.RuleSet) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCATEGORY\tKEYWORDS")
	for i, rule := range rules.Rules() {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\n", i+1, rule.Category.Style().Emoji, rule.Category, strings.Join(rule.Keywords, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	indicators := rules.IncomeIndicators()
	if len(indicators) == 0 {
		_, err := fmt.Fprintln(out, "\nIncome fallback: disabled")
		return err
	}
	_, err := fmt.Fprintf(out, "\nIncome fallback: %s\n", strings.Join(indicators, ", "))
	return err
}

// Init saves the built-in rule table to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool, logger logging.Logger) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error checking %s: %w", path, err)
		}
	}
	return store.NewRuleStore(path, logger).SaveRules(categorizer.DefaultRules())
}

// Validate parses the rule file at path and prints a one-line summary.
func Validate(out io.Writer, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied rules file
	if err != nil {
		return fmt.Errorf("error reading rules file: %w", err)
	}
	rules, err := store.ParseRules(data)
	if err != nil {
		return fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	_, err = fmt.Fprintf(out, "%s: %d categories, %d keywords\n", path, rules.Len(), rules.KeywordCount())
	return err
}
