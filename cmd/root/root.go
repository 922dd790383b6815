// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/container"
)

// GlobalFlags holds the persistent flags shared by all commands. Each one,
// when set, overrides the matching configuration key.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	RulesFile  string
	Delimiter  string
	Workers    int
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-categorizer",
		Short: "Categorize bank transactions by keyword and summarize spending.",
		Long: `expense-categorizer assigns each transaction of a CSV export to a spending
category using an ordered keyword rule table, then reports totals, a
per-category summary, top categories, averages and frequencies.`,
		SilenceUsage:      true,
		PersistentPreRunE: initContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Flags are the parsed persistent flags.
	Flags = GlobalFlags{}

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		pf := Cmd.PersistentFlags()
		pf.StringVar(&Flags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.expense-categorizer, .expense-categorizer or .)")
		pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
		pf.StringVar(&Flags.RulesFile, "rules", "", "YAML rule table replacing the built-in rules")
		pf.StringVar(&Flags.Delimiter, "delimiter", "", "CSV delimiter for input and export")
		pf.IntVar(&Flags.Workers, "workers", 0, "Parallel categorization workers for large files")
	})
}

func initContainer(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cmd, cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

// ApplyFlags copies explicitly set persistent flags over cfg.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("log-level") {
		cfg.Log.Level = Flags.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = Flags.LogFormat
	}
	if changed("rules") {
		cfg.Categorization.RulesFile = Flags.RulesFile
	}
	if changed("delimiter") {
		cfg.CSV.Delimiter = Flags.Delimiter
	}
	if changed("workers") {
		cfg.Categorization.Workers = Flags.Workers
	}
}

// GetContainer returns the container built by the root command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}
