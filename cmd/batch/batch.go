// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/internal/batch"
	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/validation"
)

var (
	inputDir  string
	outputDir string
	format    string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Consolidate and categorize every CSV file of a directory",
	Long: `Read every CSV file in the input directory, merge the transactions
chronologically, categorize them and write a single categorized CSV named after
the covered date range to the output directory. A report of the merged set is
printed. Files that fail to parse are skipped.`,
	Example: `  expense-categorizer batch -i exports/ -o categorized/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		f := format
		if !cmd.Flags().Changed("format") {
			f = c.GetConfig().Report.Format
		}
		_, err = Run(cmd.Context(), cmd.OutOrStdout(), c, inputDir, outputDir, f)
		return err
	},
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory containing CSV exports")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the consolidated categorized CSV")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Report format (text, json, yaml)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

// Run consolidates inputDir into outputDir and writes the report to out. It
// returns the path of the consolidated file, or "" when no transactions were
// found.
func Run(ctx context.Context, out io.Writer, c *container.Container, inputDir, outputDir, format string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger().WithField(logging.FieldOperation, "batch")

	if err := validation.IsValidOutputFormat(format, report.Formats); err != nil {
		return "", err
	}
	if err := validation.IsValidInputDir(inputDir); err != nil {
		return "", err
	}

	found, err := batch.FindFiles(inputDir, ".csv")
	if err != nil {
		return "", err
	}
	files := make([]string, 0, len(found))
	for _, file := range found {
		if batch.IsOutputFile(file) {
			logger.Debug("Skipping categorized export", logging.Field{Key: logging.FieldFile, Value: file})
			continue
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		logger.Warn("No CSV files found in input directory", logging.Field{Key: logging.FieldFile, Value: inputDir})
		_, err := fmt.Fprintln(out, "No CSV files found.")
		return "", err
	}

	result := batch.NewConsolidator(logger).Consolidate(files, c.GetCSVHandler().ReadTransactionsFile)
	if len(result.Transactions) == 0 {
		_, err := fmt.Fprintln(out, "No transactions found.")
		return "", err
	}

	categorized, err := c.GetCategorizer().CategorizeAll(ctx, result.Transactions)
	if err != nil {
		return "", fmt.Errorf("categorization failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, batch.OutputFilename(result.DateRange))
	if err := c.GetCSVHandler().WriteCategorizedFile(outputPath, categorized); err != nil {
		return "", err
	}

	rendered, err := c.GetReportGenerator().Generate(c.GetAggregator().Analyze(categorized), format)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(format, report.FormatText) {
		fmt.Fprintf(out, "Consolidated %d files (%d skipped, %d potential duplicates) into %s\n\n",
			len(result.SourceFiles), len(result.FailedFiles), result.Duplicates, outputPath)
	}
	if _, err := out.Write(rendered); err != nil {
		return "", err
	}
	return outputPath, nil
}
