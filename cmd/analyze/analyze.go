// Package analyze categorizes a transaction file and reports on it
package analyze

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/internal/analysis"
	"fjacquet/expense-categorizer/internal/common"
	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/dateutils"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/validation"
)

// Options are the analyze command flags.
type Options struct {
	Input      string
	Output     string
	Export     bool
	Format     string
	TopN       int
	Categories []string
	From       string
	To         string
	Direction  string
}

var opts Options

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Categorize a transaction CSV and report spending by category",
	Long: `Read a CSV file with Date, Description and Amount columns, categorize every
transaction and print totals, a category summary, the top spending categories,
average transaction size and transaction frequency per category.`,
	Example: `  expense-categorizer analyze -i transactions.csv
  expense-categorizer analyze -i transactions.csv --format json --top 3
  expense-categorizer analyze -i transactions.csv --from 2024-01-01 --to 2024-01-31 --export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		o := opts
		if !cmd.Flags().Changed("format") {
			o.Format = c.GetConfig().Report.Format
		}
		return Run(cmd.Context(), cmd.OutOrStdout(), c, o)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write categorized transactions to this CSV file")
	Cmd.Flags().BoolVar(&opts.Export, "export", false, "Write categorized transactions to a timestamped CSV file")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", report.FormatText, "Report format ("+strings.Join(report.Formats, ", ")+")")
	Cmd.Flags().IntVar(&opts.TopN, "top", 0, "Number of top spending categories (default from config)")
	Cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "Only include these categories")
	Cmd.Flags().StringVar(&opts.From, "from", "", "Only include transactions on or after this date")
	Cmd.Flags().StringVar(&opts.To, "to", "", "Only include transactions on or before this date")
	Cmd.Flags().StringVar(&opts.Direction, "direction", "all", "Only include income or expenses (all, income, expenses)")
	_ = Cmd.MarkFlagRequired("input")
}

// BuildFilter turns the filter flags into an analysis.Filter.
func BuildFilter(o Options) (analysis.Filter, error) {
	var f analysis.Filter

	for _, name := range o.Categories {
		name = strings.TrimSpace(name)
		if name != "" {
			f.Categories = append(f.Categories, models.Category(name))
		}
	}

	if o.From != "" {
		from, _, err := dateutils.ParseDate(o.From)
		if err != nil {
			return f, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = from
	}
	if o.To != "" {
		to, _, err := dateutils.ParseDate(o.To)
		if err != nil {
			return f, fmt.Errorf("invalid --to date: %w", err)
		}
		f.To = to
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, fmt.Errorf("--to date %s is before --from date %s", o.To, o.From)
	}

	direction, err := analysis.ParseDirection(o.Direction)
	if err != nil {
		return f, err
	}
	f.Direction = direction
	return f, nil
}

// Run reads o.Input and categorizes it. When an export is requested every
// categorized record is written in input order. The filters then select the
// records the report written to out covers.
func Run(ctx context.Context, out io.Writer, c *container.Container, o Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger().WithField(logging.FieldOperation, "analyze")

	format := o.Format
	if format == "" {
		format = report.FormatText
	}
	if err := validation.IsValidOutputFormat(format, report.Formats); err != nil {
		return err
	}
	if err := validation.IsValidInputFile(o.Input); err != nil {
		return err
	}

	filter, err := BuildFilter(o)
	if err != nil {
		return err
	}

	transactions, err := c.GetCSVHandler().ReadTransactionsFile(o.Input)
	if err != nil {
		return err
	}

	start := time.Now()
	categorized, err := c.GetCategorizer().CategorizeAll(ctx, transactions)
	if err != nil {
		return fmt.Errorf("categorization failed: %w", err)
	}
	logger.Info("Categorized transactions",
		logging.Field{Key: logging.FieldInputFile, Value: o.Input},
		logging.Field{Key: logging.FieldCount, Value: len(categorized)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})

	selected := filter.Apply(categorized)
	if len(filter.Categories) > 0 && len(selected) == 0 && len(categorized) > 0 {
		logger.Warn("No transaction matches the category filter",
			logging.Field{Key: logging.FieldCategory, Value: filter.Categories},
			logging.Field{Key: "available", Value: analysis.Categories(categorized)})
	}

	// the export carries every categorized row in input order; filters only shape the report
	if exportPath := o.exportPath(time.Now()); exportPath != "" {
		if err := c.GetCSVHandler().WriteCategorizedFile(exportPath, categorized); err != nil {
			return err
		}
	}

	aggregator := c.GetAggregator()
	if o.TopN > 0 {
		aggregator = analysis.NewAggregator(analysis.Options{TopN: o.TopN}, c.GetLogger())
	}
	result := aggregator.Analyze(selected)

	rendered, err := c.GetReportGenerator().Generate(result, format)
	if err != nil {
		return err
	}

	if strings.EqualFold(format, report.FormatText) {
		if from, to, ok := analysis.DateSpan(selected); ok {
			fmt.Fprintf(out, "Period: %s to %s\n\n", dateutils.ToISODate(from), dateutils.ToISODate(to))
		}
	}
	_, err = out.Write(rendered)
	return err
}

func (o Options) exportPath(now time.Time) string {
	if o.Output != "" {
		return o.Output
	}
	if o.Export {
		return common.DefaultExportName(now)
	}
	return ""
}
