// Package common holds the CSV input and export layer around the core.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"fjacquet/expense-categorizer/internal/dateutils"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
	"fjacquet/expense-categorizer/internal/parsererror"
)

const parserName = "csv"

// RequiredColumns are the header names an input file must carry.
var RequiredColumns = []string{"Date", "Description", "Amount"}

// TransactionRow is one input row before conversion.
type TransactionRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// CategorizedRow is one exported row.
type CategorizedRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// CSVHandler reads transaction files and writes categorized exports.
type CSVHandler struct {
	Delimiter rune
	logger    logging.Logger
}

// NewCSVHandler creates a handler; a zero delimiter means ','.
func NewCSVHandler(delimiter rune, logger logging.Logger) *CSVHandler {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CSVHandler{Delimiter: delimiter, logger: logger}
}

// ReadTransactionsFile opens filePath and reads it with ReadTransactions.
func (h *CSVHandler) ReadTransactionsFile(filePath string) ([]models.Transaction, error) {
	file, err := os.Open(filePath) // #nosec G304 -- user supplied input file
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return h.ReadTransactions(file, filePath)
}

// ReadTransactions parses CSV data with Date, Description and Amount
// columns. source names the input in errors and logs.
//
// A date that cannot be parsed rejects the whole input. A non-numeric or
// empty amount drops only that row. An empty description is kept as absent.
func (h *CSVHandler) ReadTransactions(r io.Reader, source string) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV data: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &parsererror.ValidationError{FilePath: source, Reason: "file is empty"}
	}

	if err := h.checkHeader(data, source); err != nil {
		return nil, err
	}

	var rows []TransactionRow
	if err := gocsv.UnmarshalCSV(h.newReader(data), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &parsererror.ParseError{Parser: parserName, Field: "Date", Value: row.Date, Row: i + 1, Err: err}
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil {
			h.logger.WithError(err).Warn("Dropping row with non-numeric amount",
				logging.Field{Key: logging.FieldRow, Value: i + 1},
				logging.Field{Key: "amount", Value: row.Amount},
			)
			continue
		}

		description := models.AbsentDescription()
		if row.Description != "" {
			description = models.TextDescription(row.Description)
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
		})
	}

	h.logger.Info("Read transactions",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "dropped", Value: len(rows) - len(transactions)},
	)
	return transactions, nil
}

func (h *CSVHandler) newReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = h.Delimiter
	return reader
}

func (h *CSVHandler) checkHeader(data []byte, source string) error {
	header, err := h.newReader(data).Read()
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[column] = true
	}
	var missing []string
	for _, column := range RequiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return &parsererror.MissingColumnsError{FilePath: source, Missing: missing}
	}
	return nil
}

// WriteCategorized writes records as Date, Description, Amount, Category.
// Dates are ISO formatted and amounts carry two decimals.
func (h *CSVHandler) WriteCategorized(w io.Writer, records []models.CategorizedTransaction) error {
	rows := make([]CategorizedRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, CategorizedRow{
			Date:        dateutils.ToISODate(r.Date),
			Description: r.Description.String(),
			Amount:      r.Amount.StringFixed(2),
			Category:    r.Category.String(),
		})
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = h.Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCategorizedFile writes records to csvFile, creating parent directories.
func (h *CSVHandler) WriteCategorizedFile(csvFile string, records []models.CategorizedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- user supplied output file
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := h.WriteCategorized(file, records); err != nil {
		return err
	}

	h.logger.Info("Wrote categorized transactions",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(h.Delimiter)},
	)
	return nil
}

// DefaultExportName is the export file name used when none is given.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("categorized_transactions_%s.csv", now.Format("20060102_150405"))
}
