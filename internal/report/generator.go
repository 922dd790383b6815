// Package report renders an analysis report for display or export.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fjacquet/expense-categorizer/internal/analysis"
	"fjacquet/expense-categorizer/internal/logging"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of the format argument.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Document is the serialized form of a report. Money is rendered as fixed
// two-decimal strings.
type Document struct {
	ReportID      string         `json:"reportId" yaml:"reportId"`
	GeneratedAt   time.Time      `json:"generatedAt" yaml:"generatedAt"`
	Totals        TotalsDoc      `json:"totals" yaml:"totals"`
	Summary       []SummaryRow   `json:"categorySummary" yaml:"categorySummary"`
	TopCategories []AmountRow    `json:"topCategories" yaml:"topCategories"`
	Averages      []AmountRow    `json:"averageByCategory" yaml:"averageByCategory"`
	Frequencies   []FrequencyRow `json:"transactionFrequency" yaml:"transactionFrequency"`
}

// TotalsDoc holds the global figures of a Document.
type TotalsDoc struct {
	Spending     string `json:"totalSpending" yaml:"totalSpending"`
	Income       string `json:"totalIncome" yaml:"totalIncome"`
	Net          string `json:"netAmount" yaml:"netAmount"`
	Transactions int    `json:"totalTransactions" yaml:"totalTransactions"`
}

// SummaryRow is one expense category of the summary table, with its
// display style and the first description seen for it.
type SummaryRow struct {
	Category          string `json:"category" yaml:"category"`
	Emoji             string `json:"emoji" yaml:"emoji"`
	Color             string `json:"color" yaml:"color"`
	Total             string `json:"totalAmount" yaml:"totalAmount"`
	Count             int    `json:"transactionCount" yaml:"transactionCount"`
	SampleDescription string `json:"sampleDescription" yaml:"sampleDescription"`
}

// AmountRow is a ranked category with a monetary figure, used for the top
// categories and the averages.
type AmountRow struct {
	Category string `json:"category" yaml:"category"`
	Amount   string `json:"amount" yaml:"amount"`
}

// FrequencyRow is the number of expense records of one category.
type FrequencyRow struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Generator renders reports.
type Generator struct {
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// NewDocument converts r into its serializable form.
func (g *Generator) NewDocument(r analysis.Report) Document {
	doc := Document{
		ReportID:    g.newID(),
		GeneratedAt: g.now().UTC(),
		Totals: TotalsDoc{
			Spending:     r.Totals.Spending.StringFixed(2),
			Income:       r.Totals.Income.StringFixed(2),
			Net:          r.Totals.Net.StringFixed(2),
			Transactions: r.Totals.Count,
		},
		Summary:       make([]SummaryRow, 0, len(r.Summary)),
		TopCategories: amountRows(r.TopCategories),
		Averages:      amountRows(r.Averages),
		Frequencies:   make([]FrequencyRow, 0, len(r.Frequencies)),
	}
	for _, s := range r.Summary {
		style := s.Category.Style()
		doc.Summary = append(doc.Summary, SummaryRow{
			Category:          s.Category.String(),
			Emoji:             style.Emoji,
			Color:             style.Color,
			Total:             s.Total.StringFixed(2),
			Count:             s.Count,
			SampleDescription: s.SampleDescription,
		})
	}
	for _, f := range r.Frequencies {
		doc.Frequencies = append(doc.Frequencies, FrequencyRow{Category: f.Category.String(), Count: f.Count})
	}
	return doc
}

func amountRows(in []analysis.CategoryAmount) []AmountRow {
	out := make([]AmountRow, 0, len(in))
	for _, a := range in {
		out = append(out, AmountRow{Category: a.Category.String(), Amount: a.Amount.StringFixed(2)})
	}
	return out
}

// Generate renders r in the given format.
func (g *Generator) Generate(r analysis.Report, format string) ([]byte, error) {
	doc := g.NewDocument(r)

	switch strings.ToLower(format) {
	case FormatText:
		return renderText(doc), nil
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func renderText(doc Document) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "Key figures")
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Total spending\t%s\t\n", doc.Totals.Spending)
	fmt.Fprintf(tw, "Total income\t%s\t\n", doc.Totals.Income)
	fmt.Fprintf(tw, "Net amount\t%s\t\n", doc.Totals.Net)
	fmt.Fprintf(tw, "Transactions\t%d\t\n", doc.Totals.Transactions)
	_ = tw.Flush()

	if len(doc.Summary) == 0 {
		fmt.Fprintln(&buf, "\nNo expenses to analyze.")
		return buf.Bytes()
	}

	fmt.Fprintln(&buf, "\nSpending by category")
	tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL\tCOUNT\t")
	for _, s := range doc.Summary {
		fmt.Fprintf(tw, "%s %s\t%s\t%d\t\n", s.Emoji, s.Category, s.Total, s.Count)
	}
	_ = tw.Flush()

	writeAmounts(&buf, "Top spending categories", doc.TopCategories)
	writeAmounts(&buf, "Average transaction by category", doc.Averages)

	fmt.Fprintln(&buf, "\nTransaction frequency")
	tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, f := range doc.Frequencies {
		fmt.Fprintf(tw, "%s\t%d\t\n", f.Category, f.Count)
	}
	_ = tw.Flush()

	return buf.Bytes()
}

func writeAmounts(buf *bytes.Buffer, title string, rows []AmountRow) {
	fmt.Fprintf(buf, "\n%s\n", title)
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for i, row := range rows {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t\n", i+1, row.Category, row.Amount)
	}
	_ = tw.Flush()
}
