// Package batch consolidates several transaction exports into one record set
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// ParseFunc reads the transactions of one file.
type ParseFunc func(filePath string) ([]models.Transaction, error)

// Result is the outcome of consolidating a set of files.
type Result struct {
	Transactions []models.Transaction
	SourceFiles  []string
	FailedFiles  []string
	Duplicates   int
	DateRange    DateRange
}

// Consolidator merges transaction files.
type Consolidator struct {
	logger logging.Logger
}

// NewConsolidator creates a new Consolidator instance
func NewConsolidator(logger logging.Logger) *Consolidator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Consolidator{logger: logger}
}

// FindFiles lists the files in dir with the given extension, sorted by name.
func FindFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Consolidate parses every file and merges the transactions chronologically.
// Files that fail to parse are skipped and reported in FailedFiles. Potential
// duplicates are logged but kept.
func (c *Consolidator) Consolidate(files []string, parse ParseFunc) Result {
	var result Result

	for _, file := range files {
		c.logger.Debug("Processing file", logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)})

		transactions, err := parse(file)
		if err != nil {
			c.logger.WithError(err).Error("Failed to parse file",
				logging.Field{Key: logging.FieldFile, Value: file})
			result.FailedFiles = append(result.FailedFiles, filepath.Base(file))
			continue
		}

		fileRange := DateRangeOf(transactions)
		c.logger.Debug("Parsed file",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldCount, Value: len(transactions)},
			logging.Field{Key: "date_range", Value: fileRange.String()})

		result.Transactions = append(result.Transactions, transactions...)
		result.SourceFiles = append(result.SourceFiles, filepath.Base(file))
		result.DateRange = result.DateRange.Merge(fileRange)
	}

	SortChronologically(result.Transactions)
	result.Duplicates = c.detectAndLogDuplicates(result.Transactions)

	c.logger.Info("Consolidated transactions",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "source_files", Value: strings.Join(result.SourceFiles, ", ")},
		logging.Field{Key: "failed_files", Value: len(result.FailedFiles)})

	return result
}

// SortChronologically sorts transactions by date. Records on the same day
// keep their file order.
func SortChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
}

// detectAndLogDuplicates counts records that share date, amount and
// description with an earlier record. Input must be sorted by date.
func (c *Consolidator) detectAndLogDuplicates(transactions []models.Transaction) int {
	duplicateCount := 0

	for i := 1; i < len(transactions); i++ {
		for j := i - 1; j >= 0 && transactions[j].Date.Equal(transactions[i].Date); j-- {
			if !arePotentialDuplicates(transactions[i], transactions[j]) {
				continue
			}
			duplicateCount++
			c.logger.Warn("Potential duplicate transaction",
				logging.Field{Key: "date", Value: transactions[i].Date.Format("2006-01-02")},
				logging.Field{Key: "amount", Value: transactions[i].Amount.String()},
				logging.Field{Key: logging.FieldDescription, Value: transactions[i].Description.String()})
			break
		}
	}

	if duplicateCount > 0 {
		c.logger.Warn("Found potential duplicate transactions",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
	return duplicateCount
}

func arePotentialDuplicates(tx1, tx2 models.Transaction) bool {
	if !tx1.Date.Equal(tx2.Date) || !tx1.Amount.Equal(tx2.Amount) {
		return false
	}
	d1 := strings.ToLower(strings.TrimSpace(tx1.Description.String()))
	d2 := strings.ToLower(strings.TrimSpace(tx2.Description.String()))
	return d1 == d2
}

// DateRangeOf calculates the overall date range of transactions.
func DateRangeOf(transactions []models.Transaction) DateRange {
	if len(transactions) == 0 {
		return DateRange{}
	}

	start := transactions[0].Date
	end := transactions[0].Date
	for _, tx := range transactions {
		if tx.Date.Before(start) {
			start = tx.Date
		}
		if tx.Date.After(end) {
			end = tx.Date
		}
	}
	return DateRange{Start: start, End: end}
}

// IsOutputFile reports whether path has the name of a categorized export,
// so a rerun over the same directory does not consolidate it again.
func IsOutputFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if filepath.Ext(name) != ".csv" {
		return false
	}
	return name == "categorized.csv" || strings.HasPrefix(name, "categorized_")
}

// OutputFilename names the consolidated export.
// Format: categorized_{start_date}_{end_date}.csv
func OutputFilename(dateRange DateRange) string {
	if s := dateRange.String(); s != "" {
		return fmt.Sprintf("categorized_%s.csv", s)
	}
	return "categorized.csv"
}
